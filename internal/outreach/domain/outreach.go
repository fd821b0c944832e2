package domain

import "time"

type Status string

const (
	StatusNotContacted Status = "not_contacted"
	StatusSent         Status = "sent"
	StatusReplied      Status = "replied"
)

// OutreachRecord tracks contact status with a coach. Records are created and
// advanced to "sent" by the outreach module; this subsystem only moves them
// to "replied" when a matching inbound message arrives. "replied" never
// transitions back.
type OutreachRecord struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string     `json:"user_id" gorm:"index:idx_outreach_coach;not null"`
	AthleteID      string     `json:"athlete_id"`
	CoachEmail     string     `json:"coach_email" gorm:"index:idx_outreach_coach;not null"`
	Status         Status     `json:"status" gorm:"type:varchar(16);not null;default:not_contacted"`
	LastResponseAt *time.Time `json:"last_response_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
