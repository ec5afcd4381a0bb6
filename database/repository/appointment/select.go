package appointmentRepo

import (
	"go.uber.org/zap"

	"voicebook/config"
	"voicebook/database"
	"voicebook/utils"
)

// New picks the store variant at startup: MongoDB when DATABASE_URL is
// configured and reachable, otherwise the local file fallback with an
// explicit warning. The scheduling engine never learns which variant it got.
func New(catalog []string) AppointmentRepository {
	logger := utils.GetLogger()

	if config.AppConfig.DatabaseURL == "" {
		logger.Warn("appointment store: DATABASE_URL not set, falling back to local file store",
			zap.String("file", config.AppConfig.FallbackDBFile))
		return newFileFallback(catalog, logger)
	}

	if err := database.InitDB(); err != nil {
		logger.Warn("appointment store: MongoDB unreachable, falling back to local file store",
			zap.Error(err),
			zap.String("file", config.AppConfig.FallbackDBFile))
		return newFileFallback(catalog, logger)
	}

	repo := NewMongoAppointmentRepo(catalog)
	// Without the partial unique index the conflict check is not atomic
	// across processes, so a missing index is fatal rather than degraded.
	if err := repo.EnsureIndexes(); err != nil {
		logger.Fatal("appointment store: failed to ensure indexes", zap.Error(err))
	}
	logger.Info("appointment store: using MongoDB",
		zap.String("database", config.AppConfig.DatabaseName))
	return repo
}

func newFileFallback(catalog []string, logger *zap.Logger) AppointmentRepository {
	repo, err := NewFileAppointmentRepo(config.AppConfig.FallbackDBFile, catalog)
	if err != nil {
		logger.Fatal("appointment store: failed to initialize file store", zap.Error(err))
	}
	return repo
}
