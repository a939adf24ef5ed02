package model

import "time"

// QRCode represents an issued document QR record.
// This is a pure domain model with no database-specific dependencies or tags.
// Records are immutable once created; there are no update or delete operations.
type QRCode struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ExternalID  string    `json:"external_id"`
	PublicID    string    `json:"public_id"`
	CreatedAt   time.Time `json:"created_at"`
}
