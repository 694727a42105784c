package domain

import "time"

// Event types
const (
	EventTypeMovementCreated       = "movement.created"
	EventTypeClosingCreated        = "closing.created"
	EventTypeAdjustmentSynthesized = "adjustment.synthesized"
	EventTypeAdjustmentEdited      = "adjustment.edited"
	EventTypeAdjustmentsRemoved    = "adjustment.removed"
	EventTypeMovementTypeReordered = "movement_type.reordered"
)

// Aggregate types
const (
	AggregateTypeMovement = "movement"
	AggregateTypeClosing  = "closing"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// ClosingCreatedEvent payload
type ClosingCreatedEvent struct {
	ClosingID   string `json:"closing_id"`
	CompanyID   string `json:"company_id"`
	AccountID   string `json:"account_id"`
	ClosingDate string `json:"closing_date"`
	DiffCRC     string `json:"diff_crc"`
	DiffUSD     string `json:"diff_usd"`
}

// AdjustmentSynthesizedEvent payload
type AdjustmentSynthesizedEvent struct {
	EntryID   string `json:"entry_id"`
	ClosingID string `json:"closing_id"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
}

// AdjustmentEditedEvent payload
type AdjustmentEditedEvent struct {
	EntryID string `json:"entry_id"`
	Before  string `json:"before"`
	After   string `json:"after"`
}

// AdjustmentsRemovedEvent payload
type AdjustmentsRemovedEvent struct {
	ClosingID string `json:"closing_id"`
	Removed   int    `json:"removed"`
}
