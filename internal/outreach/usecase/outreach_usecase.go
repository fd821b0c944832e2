package usecase

import (
	"time"

	"recruitbridge-backend/internal/outreach/repository"
)

// OutreachUsecase is the reply-detection slice of the outreach feature.
// Everything else about outreach records (creation, the sent transition,
// athlete/coach pages) lives in the outreach module proper.
type OutreachUsecase interface {
	// MarkRepliedIfMatch flips the most recent record for
	// (userID, coachEmail) to replied and stamps last_response_at. A missing
	// record is not an error. Subsequent matches simply refresh the stamp;
	// replied never transitions back.
	MarkRepliedIfMatch(userID, coachEmail string, respondedAt time.Time) error
}

type outreachUsecase struct {
	repo repository.OutreachRepository
}

// NewOutreachUsecase creates a new instance of outreachUsecase
func NewOutreachUsecase(repo repository.OutreachRepository) OutreachUsecase {
	return &outreachUsecase{repo: repo}
}

func (u *outreachUsecase) MarkRepliedIfMatch(userID, coachEmail string, respondedAt time.Time) error {
	record, err := u.repo.FindLatestMatch(userID, coachEmail)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	return u.repo.MarkReplied(record.ID, respondedAt)
}
