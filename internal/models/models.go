package models

import (
	"time"

	"github.com/google/uuid"
)

// Product categories
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHome        = "Home"
)

// Product represents a catalog product record
type Product struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Brand         string     `db:"brand" json:"brand"`
	SKU           string     `db:"sku" json:"sku"`
	Category      string     `db:"category" json:"category"`
	Price         float64    `db:"price" json:"price"`
	ReleaseDate   time.Time  `db:"release_date" json:"release_date"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	ImageURL      *string    `db:"image_url" json:"image_url,omitempty"`
	IsAvailable   bool       `db:"is_available" json:"is_available"`
	StockQuantity int        `db:"stock_quantity" json:"stock_quantity"`
}

// DisplayProfile is the read-only projection of a Product plus the derived
// presentation fields. It is recomputed on demand and never persisted.
type DisplayProfile struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Brand              string    `json:"brand"`
	SKU                string    `json:"sku"`
	CategoryDisplay    string    `json:"category_display"`
	Price              float64   `json:"price"`
	FormattedPrice     string    `json:"formatted_price"`
	ReleaseDate        time.Time `json:"release_date"`
	CreatedAt          time.Time `json:"created_at"`
	ImageURL           *string   `json:"image_url,omitempty"`
	IsAvailable        bool      `json:"is_available"`
	StockQuantity      int       `json:"stock_quantity"`
	ProductAge         string    `json:"product_age"`
	BrandInitials      string    `json:"brand_initials"`
	AvailabilityStatus string    `json:"availability_status"`
}

// CreationMetrics captures timing and outcome data for one creation attempt.
// Success is false exactly when ErrorReason is set.
type CreationMetrics struct {
	OperationID        string
	ProductName        string
	SKU                string
	Category           string
	ValidationDuration time.Duration
	DBSaveDuration     time.Duration
	TotalDuration      time.Duration
	Success            bool
	ErrorReason        string
}

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
