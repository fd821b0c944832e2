package usecase

import (
	"context"
	"errors"

	"recruitbridge-backend/internal/identity/domain"
)

var (
	// ErrUsernameInvalid means the requested username failed format or
	// policy validation; the wrapped message carries the reason.
	ErrUsernameInvalid = errors.New("invalid username")
	// ErrUsernameTaken means another user already holds the address.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrIdentityExists means the user already holds an identity.
	ErrIdentityExists = errors.New("identity already exists for this account")
)

// Availability is the result of a username availability check.
type Availability struct {
	Available bool
	Username  string
	Reason    string
}

// CleanupSummary reports a cleanup pass.
type CleanupSummary struct {
	Kept    string
	Deleted int
}

// RouteProvisioner is the provider-side mailbox backing: creating a route
// makes the address deliverable, deleting one tears it down.
type RouteProvisioner interface {
	CreateRoute(ctx context.Context, address, forwardURL string) (string, error)
	DeleteRoute(ctx context.Context, routeID string) error
}

// IdentityUsecase owns the identity+mailbox namespace.
type IdentityUsecase interface {
	// CheckAvailability reports whether username can be allocated by userID.
	// An invalid username is reported unavailable with the reason.
	CheckAvailability(userID, username string) (*Availability, error)

	// Create validates and allocates an identity plus its mailbox as one
	// atomic unit. Fails with ErrUsernameInvalid, ErrUsernameTaken or
	// ErrIdentityExists.
	Create(ctx context.Context, userID, username, displayName string) (*domain.Identity, *domain.Mailbox, error)

	// GetCurrent returns the user's identity and mailbox, or (nil, nil, nil).
	GetCurrent(userID string) (*domain.Identity, *domain.Mailbox, error)

	// Cleanup keeps the user's earliest identity and deletes the rest.
	// Idempotent: a second call reports Deleted=0 and the same Kept id.
	Cleanup(ctx context.Context, userID string) (*CleanupSummary, error)

	// ResolveLocalPart maps an inbound recipient local-part to an identity,
	// (nil, nil) when no identity owns it.
	ResolveLocalPart(localPart string) (*domain.Identity, error)
}
