package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Business  BusinessConfig
	Kafka     KafkaConfig
	Outbox    OutboxConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Port            string
	Env             string
	LogLevel        string
	DefaultLanguage string
}

type DBConfig struct {
	URL         string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type UploadConfig struct {
	Dir                 string
	BaseURL             string
	MaxAvatarSize       int64
	MaxPrescriptionSize int64
	MaxChatFileSize     int64
}

type RateLimitConfig struct {
	RequestsPerMinute     int
	Burst                 int
	AuthRequestsPerMinute int
	AuthBurst             int
	TrustedProxyHops      int
}

type BusinessConfig struct {
	OrderExpiryHours       int
	PrescriptionExpiryDays int
	ChatMessageMaxLength   int
	Currency               string
	TaxRate                decimal.Decimal
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Enabled reports whether a broker list was configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "DawakSahl")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_LANGUAGE", "ar")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "dawaksahl")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_BASE_URL", "/uploads")
	v.SetDefault("MAX_AVATAR_SIZE", 5*1024*1024)
	v.SetDefault("MAX_PRESCRIPTION_SIZE", 10*1024*1024)
	v.SetDefault("MAX_CHAT_FILE_SIZE", 5*1024*1024)

	v.SetDefault("RATE_LIMIT_RPM", 120)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("AUTH_RATE_LIMIT_RPM", 10)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 5)
	v.SetDefault("TRUSTED_PROXY_HOPS", 1)

	v.SetDefault("ORDER_EXPIRY_HOURS", 24)
	v.SetDefault("PRESCRIPTION_EXPIRY_DAYS", 30)
	v.SetDefault("CHAT_MESSAGE_MAX_LENGTH", 1000)
	v.SetDefault("CURRENCY", "YER")
	v.SetDefault("TAX_RATE", "0")

	v.SetDefault("KAFKA_TOPIC", "dawaksahl.events")
	v.SetDefault("OUTBOX_BATCH_SIZE", 100)
	v.SetDefault("OUTBOX_MAX_RETRIES", 5)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// .env is optional: on a PaaS everything arrives through the environment
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	taxRate, err := decimal.NewFromString(v.GetString("TAX_RATE"))
	if err != nil || taxRate.IsNegative() {
		taxRate = decimal.Zero
	}

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Version:         v.GetString("APP_VERSION"),
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
		DB: DBConfig{
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("REDIS_URL"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        secret,
			AccessExpiry:  parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), 24*time.Hour),
			RefreshExpiry: parseDuration(v.GetString("JWT_REFRESH_EXPIRY"), 30*24*time.Hour),
		},
		Upload: UploadConfig{
			Dir:                 v.GetString("UPLOAD_DIR"),
			BaseURL:             strings.TrimRight(v.GetString("UPLOAD_BASE_URL"), "/"),
			MaxAvatarSize:       v.GetInt64("MAX_AVATAR_SIZE"),
			MaxPrescriptionSize: v.GetInt64("MAX_PRESCRIPTION_SIZE"),
			MaxChatFileSize:     v.GetInt64("MAX_CHAT_FILE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute:     v.GetInt("RATE_LIMIT_RPM"),
			Burst:                 v.GetInt("RATE_LIMIT_BURST"),
			AuthRequestsPerMinute: v.GetInt("AUTH_RATE_LIMIT_RPM"),
			AuthBurst:             v.GetInt("AUTH_RATE_LIMIT_BURST"),
			TrustedProxyHops:      v.GetInt("TRUSTED_PROXY_HOPS"),
		},
		Business: BusinessConfig{
			OrderExpiryHours:       v.GetInt("ORDER_EXPIRY_HOURS"),
			PrescriptionExpiryDays: v.GetInt("PRESCRIPTION_EXPIRY_DAYS"),
			ChatMessageMaxLength:   v.GetInt("CHAT_MESSAGE_MAX_LENGTH"),
			Currency:               v.GetString("CURRENCY"),
			TaxRate:                taxRate,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Outbox: OutboxConfig{
			PollInterval: parseDuration(v.GetString("OUTBOX_POLL_INTERVAL"), 2*time.Second),
			BatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
			MaxRetries:   v.GetInt("OUTBOX_MAX_RETRIES"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
