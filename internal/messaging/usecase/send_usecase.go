package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"recruitbridge-backend/internal/messaging/domain"
	"recruitbridge-backend/pkg/mailgun"
)

// SendMessage delivers one message from the caller's identity. Provider
// errors are surfaced as-is: the caller is a human composing a message and
// needs the provider's diagnostic, and there is no redelivery concern on
// this path.
func (u *messagingUsecase) SendMessage(ctx context.Context, userID string, input *SendInput) (*SendResult, error) {
	identity, _, err := u.identities.GetCurrent(userID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrNoIdentity
	}
	if u.sender == nil {
		return nil, errors.New("outbound delivery is not configured")
	}

	from := identity.Address()
	if identity.DisplayName != "" {
		from = fmt.Sprintf("%s <%s>", identity.DisplayName, identity.Address())
	}

	to := parseAddress(input.To)
	messageID, err := u.sender.Send(ctx, mailgun.SendRequest{
		From:    from,
		To:      input.To,
		Subject: input.Subject,
		Text:    input.Text,
		HTML:    input.HTML,
	})
	if err != nil {
		return nil, err
	}

	// Record the outbound message in the conversation. Delivery already
	// succeeded, so a persistence failure here is logged, not surfaced.
	now := time.Now()
	thread, err := u.resolveThread(userID, to, identity.Address(), input.Subject, now, false)
	if err != nil {
		log.Printf("[ERROR] sent message %s but failed to resolve thread: %v", messageID, err)
		return &SendResult{MessageID: messageID, From: identity.Address()}, nil
	}

	message := &domain.Message{
		ThreadID:   thread.ID,
		ExternalID: messageID,
		Direction:  domain.DirectionOut,
		From:       identity.Address(),
		To:         to,
		Subject:    input.Subject,
		BodyText:   input.Text,
		BodyHTML:   input.HTML,
		ReceivedAt: now,
	}
	if err := u.msgRepo.Create(message); err != nil {
		log.Printf("[ERROR] sent message %s but failed to store it: %v", messageID, err)
	}

	return &SendResult{MessageID: messageID, From: identity.Address()}, nil
}
