package usecase

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"recruitbridge-backend/internal/messaging/domain"
	"recruitbridge-backend/internal/messaging/repository"

	"gorm.io/gorm"
)

// messagingUsecase implements MessagingUsecase
type messagingUsecase struct {
	threadRepo repository.ThreadRepository
	msgRepo    repository.MessageRepository
	identities IdentityResolver
	outreach   OutreachMarker
	sender     MessageSender
}

// NewMessagingUsecase creates a new instance of messagingUsecase
func NewMessagingUsecase(threadRepo repository.ThreadRepository, msgRepo repository.MessageRepository, identities IdentityResolver, outreach OutreachMarker, sender MessageSender) MessagingUsecase {
	return &messagingUsecase{
		threadRepo: threadRepo,
		msgRepo:    msgRepo,
		identities: identities,
		outreach:   outreach,
		sender:     sender,
	}
}

// parseAddress extracts the bare address from an RFC 5322 field like
// `"Coach Sir" <coach.sir@demo.com>`. Falls back to the trimmed raw string
// for values net/mail cannot parse.
func parseAddress(raw string) string {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(addr.Address)
}

// localPart returns the part of an address before the @.
func localPart(address string) string {
	if i := strings.Index(address, "@"); i >= 0 {
		return address[:i]
	}
	return address
}

// resolveThread finds the user's thread whose participant set contains
// counterpart, preferring the latest activity, and advances it. When none
// exists it creates one; a losing race on the participant-key unique index
// re-fetches the winner and proceeds.
//
// Matching on "contains counterpart" rather than exact set equality tolerates
// threads that accumulate participants over time.
func (u *messagingUsecase) resolveThread(userID, counterpart, self, subject string, ts time.Time, inbound bool) (*domain.Thread, error) {
	threads, err := u.threadRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	// FindByUser orders by last_message_at descending, so the first hit is
	// the most recently active match.
	for _, t := range threads {
		if t.HasParticipant(counterpart) {
			if err := u.threadRepo.Touch(t.ID, ts, inbound); err != nil {
				return nil, err
			}
			t.LastMessageAt = ts
			if inbound {
				t.UnreadCount++
			}
			return t, nil
		}
	}

	participants := []string{counterpart, self}
	key := domain.ParticipantKeyFor(participants)
	thread := &domain.Thread{
		UserID:         userID,
		Subject:        subject,
		Participants:   key,
		ParticipantKey: key,
		LastMessageAt:  ts,
	}
	if inbound {
		thread.UnreadCount = 1
	}

	err = u.threadRepo.Create(thread)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// A concurrent delivery created the thread first; adopt it.
	existing, err := u.threadRepo.FindByKey(userID, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("thread vanished after duplicate-key conflict")
	}
	if err := u.threadRepo.Touch(existing.ID, ts, inbound); err != nil {
		return nil, err
	}
	existing.LastMessageAt = ts
	if inbound {
		existing.UnreadCount++
	}
	return existing, nil
}

func (u *messagingUsecase) ListThreads(userID string) ([]*domain.Thread, error) {
	return u.threadRepo.FindByUser(userID)
}

func (u *messagingUsecase) ListMessages(userID, threadID string) ([]*domain.Message, error) {
	thread, err := u.threadRepo.FindByID(threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil || thread.UserID != userID {
		return nil, ErrThreadNotFound
	}
	return u.msgRepo.FindByThread(threadID)
}

func (u *messagingUsecase) MarkThreadRead(userID, threadID string) error {
	thread, err := u.threadRepo.FindByID(threadID)
	if err != nil {
		return err
	}
	if thread == nil || thread.UserID != userID {
		return ErrThreadNotFound
	}
	return u.threadRepo.MarkRead(threadID)
}
