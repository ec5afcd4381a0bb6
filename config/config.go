package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Appointment store. When DATABASE_URL is empty or unreachable the
	// backend falls back to the local file store at FallbackDBFile.
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	DatabaseName        string `mapstructure:"DATABASE_NAME"`
	FallbackDBFile      string `mapstructure:"FALLBACK_DB_FILE"`
	StoreTimeoutSeconds int    `mapstructure:"STORE_TIMEOUT_SECONDS"`

	// Session summary snapshot served by the status endpoint.
	SummaryFile string `mapstructure:"SUMMARY_FILE"`

	// Grace period between the farewell message and session teardown,
	// long enough for playback to finish.
	FarewellGraceSeconds int `mapstructure:"FAREWELL_GRACE_SECONDS"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Slot catalog. SLOTS overrides the generated catalog entirely;
	// otherwise SLOT_DAYS days of SLOT_HOURS local hours are generated.
	Slots     []string `mapstructure:"SLOTS"`
	SlotDays  int      `mapstructure:"SLOT_DAYS"`
	SlotHours []int    `mapstructure:"SLOT_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "voicebook")
	viper.SetDefault("FALLBACK_DB_FILE", "mock_db.json")
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SUMMARY_FILE", "latest_summary.json")
	viper.SetDefault("FAREWELL_GRACE_SECONDS", 5)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SLOT_DAYS", 7)
	viper.SetDefault("SLOT_HOURS", []int{9, 10, 11, 14, 15})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// StoreTimeout bounds every appointment store call.
func (c Config) StoreTimeout() time.Duration {
	if c.StoreTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.StoreTimeoutSeconds) * time.Second
}

// FarewellGrace is the delay between the farewell and session teardown.
func (c Config) FarewellGrace() time.Duration {
	if c.FarewellGraceSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.FarewellGraceSeconds) * time.Second
}
