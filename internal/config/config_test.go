package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalogseed/internal/config"
	"catalogseed/internal/generator"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, config.ModeSeed, cfg.Mode)
	assert.Equal(t, config.DriverMongo, cfg.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "test", cfg.Database)
	assert.Equal(t, "products", cfg.Collection)
	assert.Equal(t, 100, cfg.SeedCount)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, generator.DefaultCategories, cfg.Categories)
	assert.Equal(t, generator.DefaultBrands, cfg.Brands)
}

func TestFromViper_CommaSeparatedVocabulary(t *testing.T) {
	v := newViper()
	v.Set("SEED_CATEGORIES", "Toys, Home & Garden ,")
	v.Set("SEED_BRANDS", "Acme")
	v.Set("SEED_COUNT", "5")
	v.Set("SEED_RANDOM_SEED", "42")
	v.Set("STORE_DRIVER", "MEMORY")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"Toys", "Home & Garden"}, cfg.Categories)
	assert.Equal(t, []string{"Acme"}, cfg.Brands)
	assert.Equal(t, 5, cfg.SeedCount)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, config.DriverMemory, cfg.Driver)
	assert.Equal(t, generator.Vocabulary{Categories: cfg.Categories, Brands: cfg.Brands}, cfg.Vocabulary())
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
		want  string
	}{
		{"zero count", "SEED_COUNT", 0, "SeedCount"},
		{"unknown driver", "STORE_DRIVER", "redis", "Driver"},
		{"unknown mode", "APP_MODE", "daemon", "Mode"},
		{"empty categories", "SEED_CATEGORIES", " , ", "Categories"},
		{"missing mongo uri", "MONGO_URI", "", "MongoURI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := config.FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromViper_SQLiteNeedsDSN(t *testing.T) {
	v := newViper()
	v.Set("STORE_DRIVER", "sqlite")

	_, err := config.FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")

	v.Set("DATABASE_DSN", "file::memory:")
	_, err = config.FromViper(v)
	assert.NoError(t, err)
}

func TestFromViper_ServeModeNeedsSecrets(t *testing.T) {
	v := newViper()
	v.Set("APP_MODE", "serve")

	_, err := config.FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
	assert.Contains(t, err.Error(), "AdminPasswordHash")
}

func TestLoad_EnvironmentAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "seed.yaml")
	err := os.WriteFile(file, []byte("SEED_COUNT: 7\nSEED_BRANDS:\n  - Alpha\n  - Beta & Co\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("SEED_CONFIG_FILE", file)
	t.Setenv("MONGO_DATABASE", "catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.SeedCount)
	assert.Equal(t, []string{"Alpha", "Beta & Co"}, cfg.Brands)
	assert.Equal(t, "catalog", cfg.Database)
}
