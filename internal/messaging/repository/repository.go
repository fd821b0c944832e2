package repository

import (
	"time"

	"recruitbridge-backend/internal/messaging/domain"
)

// ThreadRepository defines data access for conversation threads.
type ThreadRepository interface {
	// Create inserts a new thread. A concurrent insert of the same
	// (user_id, participant_key) surfaces as gorm.ErrDuplicatedKey.
	Create(thread *domain.Thread) error

	// FindByUser lists a user's threads ordered by last_message_at descending.
	FindByUser(userID string) ([]*domain.Thread, error)

	// FindByKey finds a thread by its canonical participant key, (nil, nil)
	// when missing.
	FindByKey(userID, participantKey string) (*domain.Thread, error)

	// FindByID returns a thread by id, (nil, nil) when missing.
	FindByID(id string) (*domain.Thread, error)

	// Touch advances last_message_at and, for inbound activity, bumps
	// unread_count.
	Touch(threadID string, ts time.Time, incrementUnread bool) error

	// MarkRead resets unread_count to zero.
	MarkRead(threadID string) error
}

// MessageRepository defines data access for messages.
type MessageRepository interface {
	// Create inserts a message. A duplicate (thread_id, external_id)
	// surfaces as gorm.ErrDuplicatedKey.
	Create(message *domain.Message) error

	// FindByThread lists a thread's messages ordered oldest first.
	FindByThread(threadID string) ([]*domain.Message, error)
}
