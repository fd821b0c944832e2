package usecase

import (
	"testing"
	"time"

	"recruitbridge-backend/internal/outreach/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutreachRepo struct {
	records []*domain.OutreachRecord
}

func (f *fakeOutreachRepo) FindLatestMatch(userID, coachEmail string) (*domain.OutreachRecord, error) {
	var latest *domain.OutreachRecord
	for _, r := range f.records {
		if r.UserID != userID || r.CoachEmail != coachEmail {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest, nil
}

func (f *fakeOutreachRepo) MarkReplied(id string, respondedAt time.Time) error {
	for _, r := range f.records {
		if r.ID == id {
			r.Status = domain.StatusReplied
			at := respondedAt
			r.LastResponseAt = &at
		}
	}
	return nil
}

func TestMarkRepliedIfMatch(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeOutreachRepo{records: []*domain.OutreachRecord{
		{ID: "r1", UserID: "user-1", CoachEmail: "coach.sir@demo.com", Status: domain.StatusSent, CreatedAt: base},
		{ID: "r2", UserID: "user-1", CoachEmail: "coach.sir@demo.com", Status: domain.StatusSent, CreatedAt: base.AddDate(0, 0, 7)},
		{ID: "r3", UserID: "user-1", CoachEmail: "other.coach@demo.com", Status: domain.StatusSent, CreatedAt: base},
	}}
	uc := NewOutreachUsecase(repo)

	replied := base.AddDate(0, 0, 10)
	require.NoError(t, uc.MarkRepliedIfMatch("user-1", "coach.sir@demo.com", replied))

	// Only the most recently created matching record transitions.
	assert.Equal(t, domain.StatusSent, repo.records[0].Status)
	assert.Equal(t, domain.StatusReplied, repo.records[1].Status)
	require.NotNil(t, repo.records[1].LastResponseAt)
	assert.Equal(t, replied, *repo.records[1].LastResponseAt)

	// Records for other coaches are untouched.
	assert.Equal(t, domain.StatusSent, repo.records[2].Status)
	assert.Nil(t, repo.records[2].LastResponseAt)
}

func TestMarkRepliedIfMatch_NoRecord(t *testing.T) {
	uc := NewOutreachUsecase(&fakeOutreachRepo{})

	// Absence of an outreach record is not an error; the coach may have
	// written unprompted.
	assert.NoError(t, uc.MarkRepliedIfMatch("user-1", "stranger@demo.com", time.Now()))
}

func TestMarkRepliedIfMatch_RefreshesTimestamp(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeOutreachRepo{records: []*domain.OutreachRecord{
		{ID: "r1", UserID: "user-1", CoachEmail: "coach.sir@demo.com", Status: domain.StatusReplied, CreatedAt: base},
	}}
	uc := NewOutreachUsecase(repo)

	later := base.AddDate(0, 1, 0)
	require.NoError(t, uc.MarkRepliedIfMatch("user-1", "coach.sir@demo.com", later))

	assert.Equal(t, domain.StatusReplied, repo.records[0].Status)
	assert.Equal(t, later, *repo.records[0].LastResponseAt)
}
