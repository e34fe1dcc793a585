package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Ledger      LedgerConfig   `mapstructure:"ledger"`
	Pricing     PricingConfig  `mapstructure:"pricing"`
	Gate        GateConfig     `mapstructure:"gate"`
	Payments    PaymentsConfig `mapstructure:"payments"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Events      EventsConfig   `mapstructure:"events"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
	Seed        SeedConfig     `mapstructure:"seed"`
}

// IsProduction reports whether the production environment is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	CORS              CORSConfig    `mapstructure:"cors"`
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	MaxAge         int      `mapstructure:"maxAge"` // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// LedgerConfig contains credit mutation settings
type LedgerConfig struct {
	Store         string `mapstructure:"store"` // postgres or memory
	ExchangeRate  string `mapstructure:"exchangeRate"`
	LockTimeoutMs int64  `mapstructure:"lockTimeoutMs"`
	MaxRetries    int    `mapstructure:"maxRetries"`
	HistoryLimit  int    `mapstructure:"historyLimit"`
}

// PricingConfig holds the credit cost of each paid action
type PricingConfig struct {
	Actions map[string]int64 `mapstructure:"actions"`
}

// GateConfig contains paid action settings
type GateConfig struct {
	LockBackend string        `mapstructure:"lockBackend"` // database, redis or memory
	InFlightTTL time.Duration `mapstructure:"inFlightTtl"` // seconds
}

// PaymentsConfig holds the webhook secrets of every provider
type PaymentsConfig struct {
	PayPal ProviderConfig `mapstructure:"paypal"`
	Creem  ProviderConfig `mapstructure:"creem"`
}

// ProviderConfig configures one payment provider; an empty secret disables it
type ProviderConfig struct {
	Secret          string `mapstructure:"secret"`
	SignatureHeader string `mapstructure:"signatureHeader"`
}

// AuthConfig configures bearer token verification
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	Issuer    string `mapstructure:"issuer"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig configures the change feed export
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// EventsConfig configures the change feed
type EventsConfig struct {
	Subscriber       string `mapstructure:"subscriber"` // memory or redis
	QueueSize        int    `mapstructure:"queueSize"`
	SubscriberBuffer int    `mapstructure:"subscriberBuffer"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sampleRatio"`
}

// SeedConfig lists development accounts that receive a signup bonus on start
type SeedConfig struct {
	Users       []string `mapstructure:"users"`
	SignupBonus int64    `mapstructure:"signupBonus"`
}
