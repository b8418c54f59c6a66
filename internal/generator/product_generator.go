package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"catalogseed/internal/models"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	minPrice       = 10.0
	maxPrice       = 1000.0
	minDiscount    = 0.60
	maxDiscount    = 0.95
	saleChance     = 0.5
	maxStock       = 100
	minRating      = 3.5
	maxRating      = 5.0
	maxReviews     = 2000
	newThreshold   = 0.7
	hotThreshold   = 0.8
	maxImages      = 4
	slugSuffixLen  = 4
	slugAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	imageURLFormat = "https://picsum.photos/seed/%d/400/400"
)

// DefaultCategories and DefaultBrands are the stock vocabularies used when
// no other vocabulary is configured.
var (
	DefaultCategories = []string{"Electronics", "Fashion", "Home & Garden", "Sports", "Books"}
	DefaultBrands     = []string{"SoundMagic", "UrbanStyle", "EcoWear", "FitTech", "SmartHome", "RunPro", "BookNest"}
)

// Vocabulary holds the closed value sets categories and brands are drawn from.
type Vocabulary struct {
	Categories []string
	Brands     []string
}

// DefaultVocabulary returns a copy of the stock vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Categories: append([]string(nil), DefaultCategories...),
		Brands:     append([]string(nil), DefaultBrands...),
	}
}

// Generator produces synthetic product records from an explicit random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
	vocab Vocabulary
	seed  uint64
	now   func() time.Time
}

// New creates a Generator over vocab. A zero seed picks a fresh one, any other
// value makes the generated records reproducible apart from their timestamps.
// Empty vocabulary lists fall back to the defaults.
func New(vocab Vocabulary, seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	if len(vocab.Categories) == 0 {
		vocab.Categories = DefaultCategories
	}
	if len(vocab.Brands) == 0 {
		vocab.Brands = DefaultBrands
	}
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		faker: gofakeit.New(seed),
		vocab: vocab,
		seed:  seed,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for createdAt/updatedAt.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Products generates n records in order.
func (g *Generator) Products(n int) []models.Product {
	if n <= 0 {
		return nil
	}
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, g.Product())
	}
	return products
}

// Product generates a single record.
func (g *Generator) Product() models.Product {
	name := strings.TrimSpace(strings.TrimSuffix(g.faker.ProductName(), "."))
	price := round(g.uniform(minPrice, maxPrice), 2)
	stock := g.rng.IntN(maxStock + 1)
	images := g.images()
	now := g.now().UTC().Truncate(time.Millisecond)

	return models.Product{
		Name:        name,
		Slug:        Slugify(name, g.suffix()),
		Description: g.faker.ProductDescription(),
		Price:       price,
		SalePrice:   g.salePrice(price),
		Category:    g.pick(g.vocab.Categories),
		Brand:       g.pick(g.vocab.Brands),
		Image:       images[0],
		Images:      images,
		InStock:     stock > 0,
		StockCount:  stock,
		Rating:      round(g.uniform(minRating, maxRating), 1),
		Reviews:     g.rng.IntN(maxReviews + 1),
		IsNew:       g.rng.Float64() > newThreshold,
		IsHot:       g.rng.Float64() > hotThreshold,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// salePrice returns nil for roughly half of the records. For the rest it
// discounts price by 5-40% and keeps the value only when it ends up strictly
// below price after rounding.
func (g *Generator) salePrice(price float64) *float64 {
	if g.rng.Float64() < saleChance {
		return nil
	}
	discounted := round(price*g.uniform(minDiscount, maxDiscount), 2)
	if discounted <= 0 || discounted >= price {
		return nil
	}
	return &discounted
}

func (g *Generator) images() []string {
	n := 1 + g.rng.IntN(maxImages)
	images := make([]string, n)
	for i := range images {
		images[i] = fmt.Sprintf(imageURLFormat, 1000+g.rng.IntN(9000))
	}
	return images
}

func (g *Generator) suffix() string {
	b := make([]byte, slugSuffixLen)
	for i := range b {
		b[i] = slugAlphabet[g.rng.IntN(len(slugAlphabet))]
	}
	return string(b)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
