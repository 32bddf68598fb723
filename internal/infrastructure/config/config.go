package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/model"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// RedisConfig leaves caching disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type TelemetryConfig struct {
	OTLPEndpoint string
	OTLPInsecure bool
	SampleRatio  float64
}

// AuthConfig selects the JWT key material. PublicKeyFile wins over Secret.
type AuthConfig struct {
	Secret        string
	PublicKeyFile string
	Issuer        string
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// Enabled reports whether a server certificate is configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

type ScoringConfig struct {
	MinScoreApprove  int
	BaseInterestRate decimal.Decimal
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	GRPCReflection bool
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Redis          RedisConfig
	Log            LogConfig
	Telemetry      TelemetryConfig
	Auth           AuthConfig
	TLS            TLSConfig
	Scoring        ScoringConfig
	ServiceName    string

	// parseErrs holds settings that were present but unparsable.
	parseErrs []error
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.Auth.Secret == "" && c.Auth.PublicKeyFile == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY_FILE is required"))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS must list at least one broker"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

// Load reads the environment. Malformed scoring settings are reported by
// Validate rather than replaced with defaults.
func Load() Config {
	var parseErrs []error
	cfg := Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9091),
		HTTPPort:       getEnvInt("HTTP_PORT", 8091),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "bib"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "bib_risk"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Topic:         getEnv("KAFKA_TOPIC", "risk-events"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CACHE_TTL", 15*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", "bib-identity"),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("TLS_CERT_FILE", ""),
			KeyFile:      getEnv("TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
		},
		Scoring: ScoringConfig{
			MinScoreApprove:  parseEnvInt("MIN_SCORE_APPROVE", 650, &parseErrs),
			BaseInterestRate: parseEnvDecimal("BASE_INTEREST_RATE", decimal.RequireFromString("0.10"), &parseErrs),
		},
		ServiceName: "credit-risk-service",
	}
	cfg.parseErrs = parseErrs
	return cfg
}

// ScoringPolicy returns the evaluator policy described by the configuration.
func (c Config) ScoringPolicy() model.ScoringPolicy {
	return model.ScoringPolicy{
		MinScoreApprove:  c.Scoring.MinScoreApprove,
		BaseInterestRate: c.Scoring.BaseInterestRate,
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// parseEnvInt is getEnvInt for settings that must not silently fall back.
func parseEnvInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s %q is not an integer", key, v))
		return fallback
	}
	return i
}

func parseEnvDecimal(key string, fallback decimal.Decimal, errs *[]error) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s %q is not a decimal", key, v))
		return fallback
	}
	return d
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
