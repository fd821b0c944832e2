package usecase

import (
	"context"
	"errors"
	"time"

	identitydomain "recruitbridge-backend/internal/identity/domain"
	"recruitbridge-backend/internal/messaging/domain"
	"recruitbridge-backend/pkg/mailgun"
)

var (
	// ErrNoIdentity means the caller has no allocated identity to send from.
	ErrNoIdentity = errors.New("no email identity configured for this account")
	// ErrThreadNotFound means the thread does not exist or is not the caller's.
	ErrThreadNotFound = errors.New("thread not found")
)

// InboundEvent is one webhook delivery describing a single inbound email.
type InboundEvent struct {
	Sender    string
	Recipient string
	Subject   string
	BodyPlain string
	BodyHTML  string
	MessageID string
	Timestamp time.Time
}

// SendInput is an outbound composition from an authenticated user.
type SendInput struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// SendResult reports a successful outbound delivery.
type SendResult struct {
	MessageID string
	From      string
}

// IdentityResolver is the slice of the identity allocator the messaging
// layer depends on.
type IdentityResolver interface {
	ResolveLocalPart(localPart string) (*identitydomain.Identity, error)
	GetCurrent(userID string) (*identitydomain.Identity, *identitydomain.Mailbox, error)
}

// OutreachMarker flips outreach records to replied when a matching inbound
// message arrives. Record creation lives in the outreach module.
type OutreachMarker interface {
	MarkRepliedIfMatch(userID, coachEmail string, respondedAt time.Time) error
}

// MessageSender delivers one outbound message through the provider.
type MessageSender interface {
	Send(ctx context.Context, req mailgun.SendRequest) (string, error)
}

// MessagingUsecase owns threads, messages and the inbound/outbound flows.
type MessagingUsecase interface {
	// ProcessInbound handles one webhook event. Unknown recipients are not
	// an error; duplicate provider message ids are silently skipped.
	ProcessInbound(event *InboundEvent) error

	// SendMessage delivers a message from the user's identity and records it
	// in the matching thread. Provider failures are returned verbatim.
	SendMessage(ctx context.Context, userID string, input *SendInput) (*SendResult, error)

	// ListThreads returns the user's threads, newest activity first.
	ListThreads(userID string) ([]*domain.Thread, error)

	// ListMessages returns a thread's messages oldest first.
	ListMessages(userID, threadID string) ([]*domain.Message, error)

	// MarkThreadRead resets a thread's unread count.
	MarkThreadRead(userID, threadID string) error
}
