package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"recruitbridge-backend/internal/identity/domain"
	"recruitbridge-backend/internal/identity/repository"

	"gorm.io/gorm"
)

// identityUsecase implements IdentityUsecase
type identityUsecase struct {
	repo       repository.IdentityRepository
	routes     RouteProvisioner
	mailDomain string
	forwardURL string
}

// NewIdentityUsecase creates a new instance of identityUsecase. routes may be
// nil when no provider is configured; mailboxes are then created without a
// backing route.
func NewIdentityUsecase(repo repository.IdentityRepository, routes RouteProvisioner, mailDomain, forwardURL string) IdentityUsecase {
	return &identityUsecase{
		repo:       repo,
		routes:     routes,
		mailDomain: mailDomain,
		forwardURL: forwardURL,
	}
}

func (u *identityUsecase) CheckAvailability(userID, username string) (*Availability, error) {
	canonical, err := ValidateUsername(username)
	if err != nil {
		return &Availability{Available: false, Username: strings.ToLower(strings.TrimSpace(username)), Reason: err.Error()}, nil
	}

	existing, err := u.repo.FindByAddress(canonical, u.mailDomain)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UserID != userID {
		return &Availability{Available: false, Username: canonical, Reason: "username already taken"}, nil
	}
	return &Availability{Available: true, Username: canonical}, nil
}

func (u *identityUsecase) Create(ctx context.Context, userID, username, displayName string) (*domain.Identity, *domain.Mailbox, error) {
	canonical, err := ValidateUsername(username)
	if err != nil {
		return nil, nil, err
	}

	existing, err := u.repo.FindByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		return nil, nil, ErrIdentityExists
	}

	taken, err := u.repo.FindByAddress(canonical, u.mailDomain)
	if err != nil {
		return nil, nil, err
	}
	if taken != nil && taken.UserID != userID {
		return nil, nil, ErrUsernameTaken
	}

	identity := &domain.Identity{
		UserID:      userID,
		Username:    canonical,
		Domain:      u.mailDomain,
		DisplayName: displayName,
	}
	mailbox := &domain.Mailbox{}

	provision := func(address string) (string, error) {
		if u.routes == nil {
			return "", nil
		}
		return u.routes.CreateRoute(ctx, address, u.forwardURL)
	}

	if err := u.repo.CreateWithMailbox(identity, mailbox, provision); err != nil {
		// The availability pre-check races concurrent creates; the unique
		// index on (username, domain) is the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("create identity: %w", err)
	}

	return identity, mailbox, nil
}

func (u *identityUsecase) GetCurrent(userID string) (*domain.Identity, *domain.Mailbox, error) {
	identities, err := u.repo.FindByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if len(identities) == 0 {
		return nil, nil, nil
	}

	identity := identities[0]
	mailbox, err := u.repo.FindMailbox(identity.ID)
	if err != nil {
		return nil, nil, err
	}
	return identity, mailbox, nil
}

func (u *identityUsecase) Cleanup(ctx context.Context, userID string) (*CleanupSummary, error) {
	result, err := u.repo.Cleanup(userID)
	if err != nil {
		return nil, err
	}

	// Provider routes are removed after the transaction commits; a failure
	// here leaves a dangling route, not a dangling row.
	if u.routes != nil {
		for _, routeID := range result.DeletedRouteIDs {
			if err := u.routes.DeleteRoute(ctx, routeID); err != nil {
				log.Printf("[WARN] failed to delete route %s: %v", routeID, err)
			}
		}
	}

	summary := &CleanupSummary{Deleted: result.Deleted}
	if result.Kept != nil {
		summary.Kept = result.Kept.ID
	}
	return summary, nil
}

func (u *identityUsecase) ResolveLocalPart(localPart string) (*domain.Identity, error) {
	return u.repo.FindByAddress(strings.ToLower(strings.TrimSpace(localPart)), u.mailDomain)
}
