package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Billing.
	Timezone        string  `mapstructure:"TIMEZONE"`
	WaterRate       float64 `mapstructure:"WATER_RATE"`
	ElectricityRate float64 `mapstructure:"ELECTRICITY_RATE"`
	BillDueDay      int     `mapstructure:"BILL_DUE_DAY"`

	// Object storage, e.g. cloudinary://<key>:<secret>@<cloud>.
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Email channel. Disabled unless explicitly turned on.
	EmailEnabled bool   `mapstructure:"EMAIL_ENABLED"`
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// Push channel. Empty path disables FCM.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	// Seed admin account.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Cron specs for the notification jobs.
	CronReminder string `mapstructure:"CRON_REMINDER"`
	CronOverdue  string `mapstructure:"CRON_OVERDUE"`
	CronCleanup  string `mapstructure:"CRON_CLEANUP"`
}

// LoadConfig reads config.yaml (from "." or "./config") and the environment.
func LoadConfig() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("DATABASE_NAME", "rentflow")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("TIMEZONE", "Asia/Bangkok")
	v.SetDefault("WATER_RATE", 18.0)
	v.SetDefault("ELECTRICITY_RATE", 7.0)
	v.SetDefault("BILL_DUE_DAY", 5)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("EMAIL_ENABLED", false)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("FIREBASE_CREDENTIALS", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("CRON_REMINDER", "0 9 * * *")
	v.SetDefault("CRON_OVERDUE", "0 10 * * *")
	v.SetDefault("CRON_CLEANUP", "0 3 * * *")
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves the billing timezone, falling back to UTC+7.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}
