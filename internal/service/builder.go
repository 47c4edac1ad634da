package service

import (
	"time"

	"catalog-service/internal/models"

	"github.com/google/uuid"
)

// BuildProduct maps a validated request into the canonical product record.
// It has no failure path: identity is generated, created-at is set to the
// current UTC time, updated-at stays unset, and availability is derived
// from the stock quantity.
func BuildProduct(req *CreateProductRequest) *models.Product {
	stock := req.stockOrDefault()

	return &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Brand:         req.Brand,
		SKU:           NormalizeSKU(req.SKU),
		Category:      req.Category,
		Price:         req.Price,
		ReleaseDate:   req.ReleaseDate,
		CreatedAt:     time.Now().UTC(),
		ImageURL:      req.ImageURL,
		IsAvailable:   stock > 0,
		StockQuantity: stock,
	}
}
