package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildProduct(t *testing.T) {
	stock := 15
	img := "https://example.com/display.jpg"
	req := baseRequest()
	req.SKU = " ELEC QSD 001 "
	req.ImageURL = &img
	req.StockQuantity = &stock

	before := time.Now().UTC()
	product := BuildProduct(req)
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, req.Name, product.Name)
	assert.Equal(t, req.Brand, product.Brand)
	assert.Equal(t, "ELECQSD001", product.SKU, "SKU is stored normalized")
	assert.Equal(t, req.Category, product.Category)
	assert.Equal(t, req.Price, product.Price)
	assert.Equal(t, req.ReleaseDate, product.ReleaseDate)
	assert.Equal(t, &img, product.ImageURL)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, 15, product.StockQuantity)
	assert.Nil(t, product.UpdatedAt, "creation never sets updated_at")

	assert.Equal(t, time.UTC, product.CreatedAt.Location())
	assert.False(t, product.CreatedAt.Before(before))
	assert.False(t, product.CreatedAt.After(after))
}

func TestBuildProductGeneratesUniqueIDs(t *testing.T) {
	a := BuildProduct(baseRequest())
	b := BuildProduct(baseRequest())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuildProductStockDefaults(t *testing.T) {
	req := baseRequest()
	product := BuildProduct(req)
	assert.Equal(t, 1, product.StockQuantity, "absent stock defaults to 1")
	assert.True(t, product.IsAvailable)

	zero := 0
	req.StockQuantity = &zero
	product = BuildProduct(req)
	assert.Equal(t, 0, product.StockQuantity)
	assert.False(t, product.IsAvailable, "availability mirrors stock > 0")
}
