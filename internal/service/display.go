package service

import (
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/models"
)

// Home category products are listed with a 10% discount and without an
// image in their display profile.
const homeDiscount = 0.90

// CategoryDisplayName maps a category to its storefront label
func CategoryDisplayName(category string) string {
	switch category {
	case models.CategoryElectronics:
		return "Electronics & Technology"
	case models.CategoryClothing:
		return "Clothing & Fashion"
	case models.CategoryBooks:
		return "Books & Media"
	case models.CategoryHome:
		return "Home & Garden"
	default:
		return "Uncategorized"
	}
}

// DisplayPrice applies the category-conditional discount. The result feeds
// both the numeric display price and its formatted string so the two never
// diverge.
func DisplayPrice(category string, price float64) float64 {
	if category == models.CategoryHome {
		return price * homeDiscount
	}
	return price
}

// FormatPrice renders a price as a currency string with two fractional digits
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// DisplayImageURL suppresses the image reference for Home category products
func DisplayImageURL(category string, imageURL *string) *string {
	if category == models.CategoryHome {
		return nil
	}
	return imageURL
}

// ProductAge buckets elapsed days since release into a display label
func ProductAge(releaseDate, now time.Time) string {
	days := int(now.Sub(releaseDate).Hours() / 24)

	switch {
	case days < 30:
		return "New Release"
	case days < 365:
		months := days / 30
		return fmt.Sprintf("%d %s old", months, plural("month", months))
	case days < 1825:
		years := days / 365
		return fmt.Sprintf("%d %s old", years, plural("year", years))
	default:
		return "Classic"
	}
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// BrandInitials derives an initials label from the brand name: first letter
// of the first and last words, uppercased. A validated brand is never
// empty; "?" is the defensive fallback.
func BrandInitials(brand string) string {
	words := strings.Fields(brand)
	if len(words) == 0 {
		return "?"
	}

	first := []rune(words[0])[0]
	if len(words) == 1 {
		return strings.ToUpper(string(first))
	}

	last := []rune(words[len(words)-1])[0]
	return strings.ToUpper(string(first) + string(last))
}

// AvailabilityStatus derives the stock display label
func AvailabilityStatus(isAvailable bool, stockQuantity int) string {
	if !isAvailable || stockQuantity <= 0 {
		return "Out of Stock"
	}

	switch {
	case stockQuantity == 1:
		return "Last Item"
	case stockQuantity <= 5:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}

// NewDisplayProfile composes the derived display fields for a product. It
// is a pure function of the product and the wall clock; the age bucket may
// change between calls.
func NewDisplayProfile(p *models.Product) *models.DisplayProfile {
	now := time.Now().UTC()
	price := DisplayPrice(p.Category, p.Price)

	return &models.DisplayProfile{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		SKU:                p.SKU,
		CategoryDisplay:    CategoryDisplayName(p.Category),
		Price:              price,
		FormattedPrice:     FormatPrice(price),
		ReleaseDate:        p.ReleaseDate,
		CreatedAt:          p.CreatedAt,
		ImageURL:           DisplayImageURL(p.Category, p.ImageURL),
		IsAvailable:        p.IsAvailable,
		StockQuantity:      p.StockQuantity,
		ProductAge:         ProductAge(p.ReleaseDate, now),
		BrandInitials:      BrandInitials(p.Brand),
		AvailabilityStatus: AvailabilityStatus(p.IsAvailable, p.StockQuantity),
	}
}
