package appointmentRepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voicebook/config"
	"voicebook/database"
	"voicebook/models"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
// The partial unique index on slot (see indexes.go) makes the conflict
// check and the write one atomic conditional operation server-side, so the
// uniqueness invariant holds even across process instances sharing the
// same database.
type MongoAppointmentRepo struct {
	coll    *mongo.Collection
	catalog []string
	mu      sync.Mutex
}

// NewMongoAppointmentRepo constructs the remote store variant.
func NewMongoAppointmentRepo(catalog []string) *MongoAppointmentRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAppointmentRepo{
		coll:    db.Collection("appointments"),
		catalog: catalog,
	}
}

func (repo *MongoAppointmentRepo) ListSlots() []string {
	return append([]string(nil), repo.catalog...)
}

func (repo *MongoAppointmentRepo) Book(ctx context.Context, contact, slot, name string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.StoreTimeout())
	defer cancel()

	appt := models.Appointment{
		ID:      uuid.New().String(),
		Contact: contact,
		Slot:    slot,
		Name:    name,
		Status:  models.StatusConfirmed,
	}
	if _, err := repo.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ConflictError{Slot: slot}
		}
		return nil, &StoreError{Err: fmt.Errorf("error creating appointment: %w", err)}
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ByContact(ctx context.Context, contact string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.StoreTimeout())
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"contact": contact})
	if err != nil {
		return nil, &StoreError{Err: fmt.Errorf("error fetching appointments for %s: %w", contact, err)}
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, &StoreError{Err: fmt.Errorf("error decoding appointments: %w", err)}
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.StoreTimeout())
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StoreError{Err: fmt.Errorf("error cancelling appointment %s: %w", id, err)}
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) Modify(ctx context.Context, id, newSlot string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.StoreTimeout())
	defer cancel()

	update := bson.M{"$set": bson.M{"slot": newSlot}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{ID: id}
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, &ConflictError{Slot: newSlot}
	}
	if err != nil {
		return nil, &StoreError{Err: fmt.Errorf("error modifying appointment %s: %w", id, err)}
	}
	return &appt, nil
}
