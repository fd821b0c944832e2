package repository

import (
	"errors"
	"time"

	"recruitbridge-backend/internal/messaging/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormThreadRepository struct {
	db *gorm.DB
}

// NewGormThreadRepository creates a new GORM-based ThreadRepository
func NewGormThreadRepository(db *gorm.DB) ThreadRepository {
	return &gormThreadRepository{db: db}
}

func (r *gormThreadRepository) Create(thread *domain.Thread) error {
	if thread.ID == "" {
		thread.ID = uuid.New().String()
	}
	thread.CreatedAt = time.Now()
	return r.db.Create(thread).Error
}

func (r *gormThreadRepository) FindByUser(userID string) ([]*domain.Thread, error) {
	var threads []*domain.Thread
	err := r.db.Where("user_id = ?", userID).Order("last_message_at DESC").Find(&threads).Error
	return threads, err
}

func (r *gormThreadRepository) FindByKey(userID, participantKey string) (*domain.Thread, error) {
	var thread domain.Thread
	err := r.db.Where("user_id = ? AND participant_key = ?", userID, participantKey).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

func (r *gormThreadRepository) FindByID(id string) (*domain.Thread, error) {
	var thread domain.Thread
	err := r.db.Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

func (r *gormThreadRepository) Touch(threadID string, ts time.Time, incrementUnread bool) error {
	updates := map[string]interface{}{
		"last_message_at": ts,
	}
	if incrementUnread {
		updates["unread_count"] = gorm.Expr("unread_count + 1")
	}
	return r.db.Model(&domain.Thread{}).Where("id = ?", threadID).Updates(updates).Error
}

func (r *gormThreadRepository) MarkRead(threadID string) error {
	return r.db.Model(&domain.Thread{}).Where("id = ?", threadID).Update("unread_count", 0).Error
}

type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based MessageRepository
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	return r.db.Create(message).Error
}

func (r *gormMessageRepository) FindByThread(threadID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Where("thread_id = ?", threadID).Order("received_at ASC").Find(&messages).Error
	return messages, err
}
