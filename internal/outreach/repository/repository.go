package repository

import (
	"time"

	"recruitbridge-backend/internal/outreach/domain"
)

// OutreachRepository is the narrow slice of outreach data access this
// subsystem needs: record creation and the not_contacted→sent transition
// belong to the outreach module.
type OutreachRepository interface {
	// FindLatestMatch returns the most recently created record for
	// (userID, coachEmail), (nil, nil) when none exists.
	FindLatestMatch(userID, coachEmail string) (*domain.OutreachRecord, error)

	// MarkReplied sets status=replied and last_response_at.
	MarkReplied(id string, respondedAt time.Time) error
}
