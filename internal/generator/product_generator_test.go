package generator_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"catalogseed/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugSuffix = regexp.MustCompile(`-[a-z0-9]{4}$`)

func TestGenerator_ProductInvariants(t *testing.T) {
	vocab := generator.DefaultVocabulary()
	gen := generator.New(vocab, 42)

	products := gen.Products(1000)
	require.Len(t, products, 1000)

	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 10.0)
		assert.LessOrEqual(t, p.Price, 1000.0)
		if p.SalePrice != nil {
			assert.Greater(t, *p.SalePrice, 0.0)
			assert.Less(t, *p.SalePrice, p.Price)
		}

		assert.GreaterOrEqual(t, p.StockCount, 0)
		assert.LessOrEqual(t, p.StockCount, 100)
		assert.Equal(t, p.StockCount > 0, p.InStock)

		assert.GreaterOrEqual(t, p.Rating, 3.5)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.GreaterOrEqual(t, p.Reviews, 0)
		assert.LessOrEqual(t, p.Reviews, 2000)

		require.NotEmpty(t, p.Images)
		assert.LessOrEqual(t, len(p.Images), 4)
		assert.Equal(t, p.Images[0], p.Image)
		for _, img := range p.Images {
			assert.True(t, strings.HasPrefix(img, "https://picsum.photos/seed/"), img)
		}

		assert.Contains(t, vocab.Categories, p.Category)
		assert.Contains(t, vocab.Brands, p.Brand)

		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.Empty(t, p.ID)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	}
}

func TestGenerator_SlugShape(t *testing.T) {
	gen := generator.New(generator.DefaultVocabulary(), 7)

	for _, p := range gen.Products(500) {
		assert.Equal(t, strings.ToLower(p.Slug), p.Slug)
		assert.NotContains(t, p.Slug, " ")
		assert.NotContains(t, p.Slug, "/")
		assert.NotContains(t, p.Slug, "&")
		assert.Regexp(t, slugSuffix, p.Slug)
	}
}

func TestGenerator_RoundingAndRatios(t *testing.T) {
	gen := generator.New(generator.DefaultVocabulary(), 2024)
	products := gen.Products(2000)

	var onSale, isNew, isHot int
	for _, p := range products {
		assert.InDelta(t, p.Price, float64(int64(p.Price*100+0.5))/100, 1e-9)
		assert.InDelta(t, p.Rating, float64(int64(p.Rating*10+0.5))/10, 1e-9)
		if p.OnSale() {
			onSale++
		}
		if p.IsNew {
			isNew++
		}
		if p.IsHot {
			isHot++
		}
	}

	// Expected shares: 0.5 on sale, 0.3 new, 0.2 hot. The bounds sit well
	// beyond five standard deviations for n=2000.
	assert.InDelta(t, 0.5, float64(onSale)/2000, 0.06)
	assert.InDelta(t, 0.3, float64(isNew)/2000, 0.06)
	assert.InDelta(t, 0.2, float64(isHot)/2000, 0.05)
}

func TestGenerator_SameSeedIsReproducible(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	a := generator.New(generator.DefaultVocabulary(), 99).WithClock(func() time.Time { return fixed })
	b := generator.New(generator.DefaultVocabulary(), 99).WithClock(func() time.Time { return fixed })

	assert.Equal(t, a.Products(20), b.Products(20))
	assert.Equal(t, uint64(99), a.Seed())
}

func TestGenerator_TimestampsUseClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	gen := generator.New(generator.DefaultVocabulary(), 1).WithClock(func() time.Time { return fixed })

	p := gen.Product()
	assert.Equal(t, fixed.Truncate(time.Millisecond), p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

// Two runs with different seeds should not share slugs. With a 36^4 suffix
// space a pair of equal names collides with probability ~1/1.68M, so over
// 200x200 pairs the expected number of collisions is far below one even if
// every name repeated.
func TestGenerator_DifferentSeedsDifferentSlugs(t *testing.T) {
	first := generator.New(generator.DefaultVocabulary(), 1001).Products(200)
	second := generator.New(generator.DefaultVocabulary(), 2002).Products(200)

	seen := make(map[string]struct{}, len(first))
	for _, p := range first {
		seen[p.Slug] = struct{}{}
	}
	collisions := 0
	for _, p := range second {
		if _, ok := seen[p.Slug]; ok {
			collisions++
		}
	}
	assert.LessOrEqual(t, collisions, 1)
}

func TestGenerator_SmallVocabulary(t *testing.T) {
	vocab := generator.Vocabulary{Categories: []string{"Only"}, Brands: []string{"Solo"}}
	gen := generator.New(vocab, 5)

	for _, p := range gen.Products(50) {
		assert.Equal(t, "Only", p.Category)
		assert.Equal(t, "Solo", p.Brand)
	}
}

func TestGenerator_EmptyVocabularyFallsBack(t *testing.T) {
	gen := generator.New(generator.Vocabulary{}, 5)
	p := gen.Product()
	assert.Contains(t, generator.DefaultCategories, p.Category)
	assert.Contains(t, generator.DefaultBrands, p.Brand)
}

func TestGenerator_ZeroSeedPicksOne(t *testing.T) {
	gen := generator.New(generator.DefaultVocabulary(), 0)
	assert.NotZero(t, gen.Seed())
	assert.Nil(t, gen.Products(0))
}
