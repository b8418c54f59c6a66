package config

import (
	"fmt"
	"strings"
	"time"

	"catalogseed/internal/generator"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Supported values for APP_MODE and STORE_DRIVER.
const (
	ModeSeed  = "seed"
	ModeServe = "serve"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the full configuration surface of the seeder.
type Config struct {
	Mode       string `mapstructure:"APP_MODE" validate:"oneof=seed serve"`
	Driver     string `mapstructure:"STORE_DRIVER" validate:"oneof=mongo postgres sqlite memory"`
	MongoURI   string `mapstructure:"MONGO_URI" validate:"required_if=Driver mongo"`
	Database   string `mapstructure:"MONGO_DATABASE" validate:"required_if=Driver mongo"`
	Collection string `mapstructure:"MONGO_COLLECTION" validate:"required_if=Driver mongo"`
	DSN        string `mapstructure:"DATABASE_DSN" validate:"required_if=Driver postgres,required_if=Driver sqlite"`

	SeedCount  int      `mapstructure:"SEED_COUNT" validate:"gte=1"`
	RandomSeed uint64   `mapstructure:"SEED_RANDOM_SEED"`
	Categories []string `mapstructure:"-" validate:"min=1,dive,required"`
	Brands     []string `mapstructure:"-" validate:"min=1,dive,required"`

	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT" validate:"gte=0"`
	RabbitMQURL  string        `mapstructure:"RABBITMQ_URL"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`

	AppPort           string `mapstructure:"APP_PORT" validate:"required_if=Mode serve"`
	JWTSecret         string `mapstructure:"JWT_SECRET" validate:"required_if=Mode serve"`
	AdminUsername     string `mapstructure:"ADMIN_USERNAME" validate:"required_if=Mode serve"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH" validate:"required_if=Mode serve"`
}

// Vocabulary returns the configured category and brand sets.
func (c *Config) Vocabulary() generator.Vocabulary {
	return generator.Vocabulary{Categories: c.Categories, Brands: c.Brands}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", ModeSeed)
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "test")
	v.SetDefault("MONGO_COLLECTION", "products")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("SEED_COUNT", 100)
	v.SetDefault("SEED_RANDOM_SEED", 0)
	v.SetDefault("SEED_CATEGORIES", generator.DefaultCategories)
	v.SetDefault("SEED_BRANDS", generator.DefaultBrands)
	v.SetDefault("WRITE_TIMEOUT", "30s")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
}

// Load reads .env (when present), the optional SEED_CONFIG_FILE and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("SEED_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Mode = strings.ToLower(cfg.Mode)
	cfg.Driver = strings.ToLower(cfg.Driver)

	var err error
	if cfg.Categories, err = stringList(v.Get("SEED_CATEGORIES")); err != nil {
		return nil, fmt.Errorf("invalid SEED_CATEGORIES: %w", err)
	}
	if cfg.Brands, err = stringList(v.Get("SEED_BRANDS")); err != nil {
		return nil, fmt.Errorf("invalid SEED_BRANDS: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// stringList accepts either a list (config files, defaults) or a comma
// separated string (environment). Entries are trimmed.
func stringList(raw interface{}) ([]string, error) {
	var items []string
	if s, ok := raw.(string); ok {
		items = strings.Split(s, ",")
	} else {
		var err error
		if items, err = cast.ToStringSliceE(raw); err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}
