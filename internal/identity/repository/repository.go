package repository

import (
	"recruitbridge-backend/internal/identity/domain"
)

// CleanupResult reports what a cleanup pass did. DeletedRouteIDs carries the
// provider route ids of removed mailboxes so the caller can deprovision them
// after the transaction commits.
type CleanupResult struct {
	Kept            *domain.Identity
	Deleted         int
	DeletedRouteIDs []string
}

// IdentityRepository defines data access for identities and their mailboxes.
type IdentityRepository interface {
	// CreateWithMailbox inserts the identity and its mailbox as one
	// transaction. provision is called inside the transaction with the
	// identity's address and must return the provider route id; any error
	// rolls the whole unit back.
	CreateWithMailbox(identity *domain.Identity, mailbox *domain.Mailbox, provision func(address string) (string, error)) error

	// FindByAddress finds an identity by (username, domain). Returns
	// (nil, nil) when none exists.
	FindByAddress(username, mailDomain string) (*domain.Identity, error)

	// FindByUser lists a user's identities ordered by creation time ascending.
	FindByUser(userID string) ([]*domain.Identity, error)

	// FindMailbox returns the mailbox owned by an identity, (nil, nil) if missing.
	FindMailbox(identityID string) (*domain.Mailbox, error)

	// Cleanup keeps the user's earliest identity and deletes the rest along
	// with their mailboxes, all inside one transaction.
	Cleanup(userID string) (*CleanupResult, error)
}
