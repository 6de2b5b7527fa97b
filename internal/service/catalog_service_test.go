package service

import (
	"testing"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDeriveImageVariants(t *testing.T) {
	p := &model.Product{Image: "uploads/products/gol.jpg"}
	deriveImageVariants(p)
	assert.Equal(t, "uploads/products/gol.webp", p.ImageOptimized)
	assert.Equal(t, "uploads/products/gol-sm.webp", p.ImageOptimizedTwo)

	empty := &model.Product{}
	deriveImageVariants(empty)
	assert.Empty(t, empty.ImageOptimized)
}

func TestWebpVariantNoExtension(t *testing.T) {
	assert.Equal(t, "uploads/raw.webp", webpVariant("uploads/raw", ""))
	assert.Equal(t, "uploads/raw-sm.webp", webpVariant("uploads/raw", "-sm"))
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 24, size)

	page, size = normalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 24, size)

	page, size = normalizePage(2, 12)
	assert.Equal(t, 2, page)
	assert.Equal(t, 12, size)
}
