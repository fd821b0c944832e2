package usecase

import (
	"errors"
	"fmt"
	"log"

	"recruitbridge-backend/internal/messaging/domain"

	"gorm.io/gorm"
)

// ProcessInbound runs the full inbound pipeline for one webhook event:
// identity lookup, outreach reply marking, thread resolution and idempotent
// message insertion. The caller (the webhook handler) decides what errors
// mean for the HTTP response; this method just reports them.
func (u *messagingUsecase) ProcessInbound(event *InboundEvent) error {
	sender := parseAddress(event.Sender)
	recipient := parseAddress(event.Recipient)

	identity, err := u.identities.ResolveLocalPart(localPart(recipient))
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", recipient, err)
	}
	if identity == nil {
		// Mail to an unowned address is acknowledged and dropped; the
		// provider must not retry it.
		log.Printf("[WARN] inbound message %s for unknown recipient %s, dropping", event.MessageID, recipient)
		return nil
	}

	if err := u.outreach.MarkRepliedIfMatch(identity.UserID, sender, event.Timestamp); err != nil {
		return fmt.Errorf("mark outreach replied for %s: %w", sender, err)
	}

	thread, err := u.resolveThread(identity.UserID, sender, identity.Address(), event.Subject, event.Timestamp, true)
	if err != nil {
		return fmt.Errorf("resolve thread: %w", err)
	}

	message := &domain.Message{
		ThreadID:   thread.ID,
		ExternalID: event.MessageID,
		Direction:  domain.DirectionIn,
		From:       sender,
		To:         recipient,
		Subject:    event.Subject,
		BodyText:   event.BodyPlain,
		BodyHTML:   event.BodyHTML,
		ReceivedAt: event.Timestamp,
	}
	if err := u.msgRepo.Create(message); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Provider redelivery; the first delivery already stored it.
			log.Printf("[WARN] duplicate inbound message %s on thread %s, skipping", event.MessageID, thread.ID)
			return nil
		}
		return fmt.Errorf("store message %s: %w", event.MessageID, err)
	}

	return nil
}
