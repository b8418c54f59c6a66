package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"

	"catalogseed/internal/config"
	"catalogseed/internal/generator"
	"catalogseed/internal/repositories"
	"catalogseed/internal/services"
	"catalogseed/pkg/rabbitmq"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Str("kind", "config").Msg("failed to load configuration")
	}
	setLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		stop()
		zlog.Fatal().Err(err).Str("kind", repositories.ErrorKind(err)).Msg("seeding failed")
	}
}

// run executes the configured mode. In seed mode the only line written to out
// is the inserted count.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	opener, err := newOpener(cfg)
	if err != nil {
		return err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: rabbitmq.SeedEventsQueue})
		if err != nil {
			zlog.Warn().Err(err).Msg("seed events disabled")
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	gen := generator.New(cfg.Vocabulary(), cfg.RandomSeed)
	seedService := services.NewSeedService(cfg.Driver, opener, gen, publisher, cfg.WriteTimeout)

	switch cfg.Mode {
	case config.ModeServe:
		authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)
		return serve(ctx, NewApp(seedService, authService, cfg.SeedCount), cfg.AppPort)
	default:
		zlog.Info().
			Str("store", cfg.Driver).
			Int("count", cfg.SeedCount).
			Uint64("seed", gen.Seed()).
			Msg("seeding products")
		summary, err := seedService.Seed(ctx, cfg.SeedCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Inserted %d products.\n", summary.Inserted)
		return nil
	}
}

func newOpener(cfg *config.Config) (repositories.Opener, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return repositories.MongoOpener(cfg.MongoURI, cfg.Database, cfg.Collection), nil
	case config.DriverPostgres:
		return repositories.GORMOpener(postgres.Open(cfg.DSN)), nil
	case config.DriverSQLite:
		return repositories.GORMOpener(sqlite.Open(cfg.DSN)), nil
	case config.DriverMemory:
		return repositories.MemoryOpener(repositories.NewMemoryProductRepository()), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
