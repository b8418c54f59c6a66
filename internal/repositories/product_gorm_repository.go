package repositories

import (
	"context"
	"fmt"

	"catalogseed/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insertBatchSize keeps each INSERT under the 65535 bind parameter limit of
// postgres. GORM runs all batches in one transaction.
const insertBatchSize = 1000

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository
// and makes sure the products table exists.
func NewGORMProductRepository(db *gorm.DB) (*GORMProductRepository, error) {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("%w: failed to migrate products table: %v", ErrWrite, err)
	}
	return &GORMProductRepository{
		db: db,
	}, nil
}

// GORMOpener returns an Opener that opens dialector once per run.
func GORMOpener(dialector gorm.Dialector) Opener {
	return func(ctx context.Context) (ProductRepository, error) {
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open database: %v", ErrConnection, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get database handle: %v", ErrConnection, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%w: failed to ping database: %v", ErrConnection, err)
		}
		repo, err := NewGORMProductRepository(db.WithContext(ctx))
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return repo, nil
	}
}

// InsertMany creates all products in a single transaction.
func (r *GORMProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if len(products) == 0 {
		return nil, nil
	}

	rows := make([]models.Product, len(products))
	copy(rows, products)
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.New().String()
		}
	}

	if err := r.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create products: %v", ErrWrite, err)
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	return ids, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with slug %s not found", slug)
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Close closes the underlying connection pool.
func (r *GORMProductRepository) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Target returns the table name.
func (r *GORMProductRepository) Target() string {
	return r.db.Dialector.Name() + "/products"
}
