package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "LH"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside development
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return LoadConfigFrom(getEnvironment(), ConfigPaths...)
}

// LoadConfigFrom reads configs/<env>.yaml from the given paths and applies env overrides
func LoadConfigFrom(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 0)       // seconds, 0 keeps SSE streams open
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.cors.maxAge", 600)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("ledger.store", "postgres")
	v.SetDefault("ledger.exchangeRate", "1")
	v.SetDefault("ledger.lockTimeoutMs", 5000)
	v.SetDefault("ledger.maxRetries", 3)
	v.SetDefault("ledger.historyLimit", 50)

	v.SetDefault("pricing.actions", map[string]int64{"create_referral_job": 5})

	v.SetDefault("gate.lockBackend", "database")
	v.SetDefault("gate.inFlightTtl", 30) // seconds

	v.SetDefault("payments.paypal.signatureHeader", "X-Paypal-Signature")
	v.SetDefault("payments.creem.signatureHeader", "creem-signature")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.topic", "credit-ledger.events")
	v.SetDefault("events.subscriber", "memory")
	v.SetDefault("events.queueSize", 100)
	v.SetDefault("events.subscriberBuffer", 16)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "credit_ledger")
	v.SetDefault("tracing.sampleRatio", 1.0)

	v.SetDefault("seed.signupBonus", 10)
}

// getEnvironment determines the environment from LH_ENV
func getEnvironment() string {
	env := os.Getenv("LH_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes environment variables win over file values for secrets and endpoints
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"LH_DB_HOST":          "database.host",
		"LH_DB_PORT":          "database.port",
		"LH_DB_USERNAME":      "database.username",
		"LH_DB_PASSWORD":      "database.password",
		"LH_DB_NAME":          "database.database",
		"LH_DB_SSL_MODE":      "database.sslMode",
		"LH_SERVER_HOST":      "server.host",
		"LH_SERVER_PORT":      "server.port",
		"LH_LOGGER_LEVEL":     "logger.level",
		"LH_LEDGER_STORE":     "ledger.store",
		"LH_EXCHANGE_RATE":    "ledger.exchangeRate",
		"LH_PAYPAL_SECRET":    "payments.paypal.secret",
		"LH_CREEM_SECRET":     "payments.creem.secret",
		"LH_JWT_SECRET":       "auth.jwtSecret",
		"LH_REDIS_ADDR":       "redis.addr",
		"LH_REDIS_PASSWORD":   "redis.password",
		"LH_TRACING_ENDPOINT": "tracing.endpoint",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	if maxOpenConns := getEnvInt("LH_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("LH_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if queryTimeout := getEnvInt("LH_DB_QUERY_TIMEOUT_SECONDS", 0); queryTimeout > 0 {
		v.Set("database.queryTimeout", queryTimeout)
	}
	if lockTimeout := getEnvInt("LH_LEDGER_LOCK_TIMEOUT_MS", 0); lockTimeout > 0 {
		v.Set("ledger.lockTimeoutMs", lockTimeout)
	}
	if maxRetries := getEnvInt("LH_LEDGER_MAX_RETRIES", -1); maxRetries >= 0 {
		v.Set("ledger.maxRetries", maxRetries)
	}
	if brokers := os.Getenv("LH_KAFKA_BROKERS"); brokers != "" {
		v.Set("kafka.brokers", strings.Split(brokers, ","))
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Gate.InFlightTTL = time.Duration(config.Gate.InFlightTTL) * time.Second
}
