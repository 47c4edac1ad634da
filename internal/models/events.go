package models

import "time"

// Event types
const (
	EventTypeProductCreated = "PRODUCT_CREATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductCreatedEvent published after a product is persisted
type ProductCreatedEvent struct {
	BaseEvent
	Product       Product `json:"product"`
	OperationID   string  `json:"operation_id"`
	CorrelationID string  `json:"correlation_id,omitempty"`
}
