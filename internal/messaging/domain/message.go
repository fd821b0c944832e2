package domain

import "time"

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Message is one inbound or outbound email instance. The unique index on
// (thread_id, external_id) is what makes ingestion idempotent under provider
// redelivery.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ThreadID   string    `json:"thread_id" gorm:"uniqueIndex:idx_message_external;not null"`
	ExternalID string    `json:"external_id" gorm:"uniqueIndex:idx_message_external;type:varchar(255);not null"`
	Direction  Direction `json:"direction" gorm:"type:varchar(3);not null"`
	From       string    `json:"from" gorm:"column:from_address"`
	To         string    `json:"to" gorm:"column:to_address"`
	Subject    string    `json:"subject"`
	BodyText   string    `json:"body_text"`
	BodyHTML   string    `json:"body_html"`
	ReceivedAt time.Time `json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
}
