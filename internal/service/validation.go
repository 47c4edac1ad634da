package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"catalog-service/config"
	"catalog-service/internal/models"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9-]{5,20}$`)

// CreateProductRequest represents an untrusted request to create a product
type CreateProductRequest struct {
	Name          string    `json:"name" binding:"required"`
	Brand         string    `json:"brand" binding:"required"`
	SKU           string    `json:"sku" binding:"required"`
	Category      string    `json:"category" binding:"required"`
	Price         float64   `json:"price" binding:"required"`
	ReleaseDate   time.Time `json:"release_date" binding:"required"`
	ImageURL      *string   `json:"image_url,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
}

// stockOrDefault applies the default quantity of 1 when the field is absent
func (r *CreateProductRequest) stockOrDefault() int {
	if r.StockQuantity == nil {
		return 1
	}
	return *r.StockQuantity
}

// NormalizeSKU strips interior whitespace from a raw SKU
func NormalizeSKU(sku string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, sku)
}

// Rule evaluates one synchronous validation rule against a creation
// request. A nil result means the rule passed.
type Rule func(req *CreateProductRequest) *models.FieldError

// SKUFormatRule requires the normalized SKU to be 5-20 alphanumeric or
// hyphen characters. An empty SKU fails; this is a required field.
func SKUFormatRule() Rule {
	return func(req *CreateProductRequest) *models.FieldError {
		if !skuPattern.MatchString(NormalizeSKU(req.SKU)) {
			return &models.FieldError{
				Field:   "sku",
				Message: "SKU must be alphanumeric with hyphens and 5-20 characters long",
			}
		}
		return nil
	}
}

// PriceRangeRule bounds the price to an inclusive [min, max] range
func PriceRangeRule(min, max float64) Rule {
	return func(req *CreateProductRequest) *models.FieldError {
		if req.Price < min || req.Price > max {
			return &models.FieldError{
				Field:   "price",
				Message: fmt.Sprintf("price must be between %.2f and %.2f", min, max),
			}
		}
		return nil
	}
}

// CategoryRule restricts the category to a configured allow-list
func CategoryRule(allowed []string) Rule {
	return func(req *CreateProductRequest) *models.FieldError {
		for _, c := range allowed {
			if req.Category == c {
				return nil
			}
		}
		return &models.FieldError{
			Field:   "category",
			Message: fmt.Sprintf("category must be one of: %s", strings.Join(allowed, ", ")),
		}
	}
}

// StockRule rejects negative stock quantities
func StockRule() Rule {
	return func(req *CreateProductRequest) *models.FieldError {
		if req.stockOrDefault() < 0 {
			return &models.FieldError{
				Field:   "stock_quantity",
				Message: "stock quantity must not be negative",
			}
		}
		return nil
	}
}

// Validator evaluates the fixed rule set for product creation. Synchronous
// rules run first in construction order; the SKU uniqueness check against
// the repository only runs when every synchronous rule passed, so invalid
// requests never cost a repository round trip.
type Validator struct {
	rules []Rule
	repo  ProductRepository
}

// NewValidator wires the rule set with its construction-time configuration
func NewValidator(cfg config.CatalogConfig, repo ProductRepository) *Validator {
	return &Validator{
		rules: []Rule{
			SKUFormatRule(),
			PriceRangeRule(cfg.PriceMin, cfg.PriceMax),
			CategoryRule(cfg.AllowedCategories),
			StockRule(),
		},
		repo: repo,
	}
}

// Validate returns nil for a valid request, a *models.ValidationError
// carrying the ordered failure list for rule violations, or a wrapped
// repository error when the uniqueness lookup itself fails.
//
// The uniqueness check is advisory only: a concurrent writer can insert the
// same SKU between this lookup and the later persist. The storage layer's
// unique constraint is the authoritative guarantee.
func (v *Validator) Validate(ctx context.Context, req *CreateProductRequest) error {
	var failures []models.FieldError
	for _, rule := range v.rules {
		if fe := rule(req); fe != nil {
			failures = append(failures, *fe)
		}
	}
	if len(failures) > 0 {
		return &models.ValidationError{Errors: failures}
	}

	sku := NormalizeSKU(req.SKU)
	existing, err := v.repo.FindBySKU(ctx, sku)
	if err != nil {
		return fmt.Errorf("sku uniqueness check failed: %w", err)
	}
	if existing != nil {
		return &models.ValidationError{Errors: []models.FieldError{{
			Field:   "sku",
			Message: fmt.Sprintf("SKU %q is already in use", sku),
		}}}
	}

	return nil
}
