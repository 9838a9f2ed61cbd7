package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisBookingDB int    `mapstructure:"REDIS_BOOKING_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Marketplace backend.
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	VehicleLookup  string        `mapstructure:"VEHICLE_LOOKUP"`

	// Pre-booking deposit.
	PaymentMode         string        `mapstructure:"PAYMENT_MODE"`
	PaymentStatusSource string        `mapstructure:"PAYMENT_STATUS_SOURCE"`
	DepositAmount       float64       `mapstructure:"DEPOSIT_AMOUNT"`
	DepositCurrency     string        `mapstructure:"DEPOSIT_CURRENCY"`
	PollInterval        time.Duration `mapstructure:"PAYMENT_POLL_INTERVAL"`
	PollAttempts        int           `mapstructure:"PAYMENT_POLL_ATTEMPTS"`
	StripeKey           string        `mapstructure:"STRIPE_KEY"`

	// RabbitMQ; events are dropped when empty.
	AMQPURL string `mapstructure:"AMQP_URL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "quickmechanic")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_BOOKING_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("BACKEND_URL", "http://localhost:8001")
	viper.SetDefault("BACKEND_TIMEOUT", 10*time.Second)
	viper.SetDefault("VEHICLE_LOOKUP", "fixture")
	viper.SetDefault("PAYMENT_MODE", PaymentModeMock)
	viper.SetDefault("PAYMENT_STATUS_SOURCE", "backend")
	viper.SetDefault("DEPOSIT_AMOUNT", 50.0)
	viper.SetDefault("DEPOSIT_CURRENCY", "brl")
	viper.SetDefault("PAYMENT_POLL_INTERVAL", 2*time.Second)
	viper.SetDefault("PAYMENT_POLL_ATTEMPTS", 5)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("AMQP_URL", "")
}

// Payment collaborator switch values.
const (
	PaymentModeMock   = "mock"
	PaymentModeHosted = "hosted"
)

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
