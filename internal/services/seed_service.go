package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogseed/internal/generator"
	"catalogseed/internal/models"
	"catalogseed/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventPublisher announces finished seeding runs.
type EventPublisher interface {
	PublishSeeded(event map[string]interface{}) error
}

// SeedService generates product records and writes them in one bulk insert.
type SeedService struct {
	open      repositories.Opener
	gen       *generator.Generator
	publisher EventPublisher
	timeout   time.Duration
	store     string

	mu sync.Mutex // serializes runs; the generator is not goroutine safe
}

// NewSeedService creates a new SeedService. publisher may be nil and a zero
// timeout leaves the caller's context unbounded.
func NewSeedService(store string, open repositories.Opener, gen *generator.Generator, publisher EventPublisher, timeout time.Duration) *SeedService {
	return &SeedService{
		open:      open,
		gen:       gen,
		publisher: publisher,
		timeout:   timeout,
		store:     store,
	}
}

// Preview generates count records without writing them.
func (s *SeedService) Preview(count int) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Products(count)
}

// Seed generates count products and inserts them with a single bulk write.
// The store connection lives only for the duration of the call.
func (s *SeedService) Seed(ctx context.Context, count int) (*models.InsertSummary, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &models.InsertSummary{
		RunID:     uuid.New().String(),
		Store:     s.store,
		StartedAt: time.Now().UTC(),
	}
	products := s.gen.Products(count)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	repo, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", s.store, err)
	}
	defer func() {
		if cerr := repo.Close(context.Background()); cerr != nil {
			log.Warn().Err(cerr).Str("run_id", summary.RunID).Msg("failed to release store")
		}
	}()

	ids, err := repo.InsertMany(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %d products: %w", count, err)
	}

	summary.IDs = ids
	summary.Inserted = len(ids)
	summary.Target = repo.Target()
	summary.Duration = time.Since(summary.StartedAt)

	log.Info().
		Str("run_id", summary.RunID).
		Str("store", summary.Store).
		Str("target", summary.Target).
		Int("inserted", summary.Inserted).
		Uint64("seed", s.gen.Seed()).
		Dur("took", summary.Duration).
		Msg("products seeded")

	s.publish(summary)
	return summary, nil
}

func (s *SeedService) publish(summary *models.InsertSummary) {
	if s.publisher == nil {
		log.Debug().Msg("event publisher is not configured, skipping seeded event")
		return
	}
	event := map[string]interface{}{
		"event":    "products.seeded",
		"runId":    summary.RunID,
		"inserted": summary.Inserted,
		"store":    summary.Store,
		"target":   summary.Target,
		"seededAt": summary.StartedAt.Format(time.RFC3339),
	}
	if err := s.publisher.PublishSeeded(event); err != nil {
		log.Warn().Err(err).Str("run_id", summary.RunID).Msg("failed to publish seeded event")
	}
}
