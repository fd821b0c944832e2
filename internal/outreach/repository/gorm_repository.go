package repository

import (
	"errors"
	"time"

	"recruitbridge-backend/internal/outreach/domain"

	"gorm.io/gorm"
)

type gormOutreachRepository struct {
	db *gorm.DB
}

// NewGormOutreachRepository creates a new GORM-based OutreachRepository
func NewGormOutreachRepository(db *gorm.DB) OutreachRepository {
	return &gormOutreachRepository{db: db}
}

func (r *gormOutreachRepository) FindLatestMatch(userID, coachEmail string) (*domain.OutreachRecord, error) {
	var record domain.OutreachRecord
	err := r.db.Where("user_id = ? AND coach_email = ?", userID, coachEmail).
		Order("created_at DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormOutreachRepository) MarkReplied(id string, respondedAt time.Time) error {
	return r.db.Model(&domain.OutreachRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           domain.StatusReplied,
			"last_response_at": respondedAt,
			"updated_at":       time.Now(),
		}).Error
}
