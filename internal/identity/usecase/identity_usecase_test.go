package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitbridge-backend/internal/identity/domain"
	"recruitbridge-backend/internal/identity/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeIdentityRepo is an in-memory IdentityRepository emulating the unique
// index on (username, domain) and the transactional create.
type fakeIdentityRepo struct {
	identities []*domain.Identity
	mailboxes  map[string]*domain.Mailbox
	// forceDuplicate makes CreateWithMailbox lose the insert race even when
	// the pre-check saw the name as free.
	forceDuplicate bool
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{mailboxes: map[string]*domain.Mailbox{}}
}

func (f *fakeIdentityRepo) CreateWithMailbox(identity *domain.Identity, mailbox *domain.Mailbox, provision func(address string) (string, error)) error {
	if f.forceDuplicate {
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range f.identities {
		if existing.Username == identity.Username && existing.Domain == identity.Domain {
			return gorm.ErrDuplicatedKey
		}
	}
	identity.ID = "id-" + identity.Username
	identity.CreatedAt = time.Now()

	mailbox.ID = "mb-" + identity.Username
	mailbox.IdentityID = identity.ID
	if provision != nil {
		routeID, err := provision(identity.Address())
		if err != nil {
			// Transaction rollback: nothing is stored.
			return err
		}
		mailbox.RouteID = routeID
	}

	f.identities = append(f.identities, identity)
	f.mailboxes[identity.ID] = mailbox
	return nil
}

func (f *fakeIdentityRepo) FindByAddress(username, mailDomain string) (*domain.Identity, error) {
	for _, identity := range f.identities {
		if identity.Username == username && identity.Domain == mailDomain {
			return identity, nil
		}
	}
	return nil, nil
}

func (f *fakeIdentityRepo) FindByUser(userID string) ([]*domain.Identity, error) {
	var out []*domain.Identity
	for _, identity := range f.identities {
		if identity.UserID == userID {
			out = append(out, identity)
		}
	}
	// Insertion order stands in for created_at ASC.
	return out, nil
}

func (f *fakeIdentityRepo) FindMailbox(identityID string) (*domain.Mailbox, error) {
	return f.mailboxes[identityID], nil
}

func (f *fakeIdentityRepo) Cleanup(userID string) (*repository.CleanupResult, error) {
	result := &repository.CleanupResult{}
	var kept []*domain.Identity
	for _, identity := range f.identities {
		if identity.UserID != userID {
			kept = append(kept, identity)
			continue
		}
		if result.Kept == nil {
			result.Kept = identity
			kept = append(kept, identity)
			continue
		}
		if mb := f.mailboxes[identity.ID]; mb != nil && mb.RouteID != "" {
			result.DeletedRouteIDs = append(result.DeletedRouteIDs, mb.RouteID)
		}
		delete(f.mailboxes, identity.ID)
		result.Deleted++
	}
	f.identities = kept
	return result, nil
}

// fakeRoutes records provider route activity.
type fakeRoutes struct {
	created []string
	deleted []string
	failing bool
}

func (f *fakeRoutes) CreateRoute(ctx context.Context, address, forwardURL string) (string, error) {
	if f.failing {
		return "", errors.New("route quota exceeded")
	}
	f.created = append(f.created, address)
	return "route-" + address, nil
}

func (f *fakeRoutes) DeleteRoute(ctx context.Context, routeID string) error {
	f.deleted = append(f.deleted, routeID)
	return nil
}

func TestIdentityCreate(t *testing.T) {
	repo := newFakeIdentityRepo()
	routes := &fakeRoutes{}
	uc := NewIdentityUsecase(repo, routes, "recruitbridge.net", "https://app.recruitbridge.net/api/webhooks/mailgun")

	identity, mailbox, err := uc.Create(context.Background(), "user-1", "  John.Doe ", "John Doe")
	require.NoError(t, err)
	require.NotNil(t, identity)
	require.NotNil(t, mailbox)

	assert.Equal(t, "john.doe", identity.Username)
	assert.Equal(t, "recruitbridge.net", identity.Domain)
	assert.Equal(t, "john.doe@recruitbridge.net", identity.Address())
	assert.Equal(t, identity.ID, mailbox.IdentityID)
	assert.Equal(t, "route-john.doe@recruitbridge.net", mailbox.RouteID)
	assert.Equal(t, []string{"john.doe@recruitbridge.net"}, routes.created)
}

func TestIdentityCreate_Invalid(t *testing.T) {
	uc := NewIdentityUsecase(newFakeIdentityRepo(), nil, "recruitbridge.net", "")

	_, _, err := uc.Create(context.Background(), "user-1", "ab", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsernameInvalid)
}

func TestIdentityCreate_Taken(t *testing.T) {
	repo := newFakeIdentityRepo()
	uc := NewIdentityUsecase(repo, nil, "recruitbridge.net", "")

	_, _, err := uc.Create(context.Background(), "user-1", "taken", "")
	require.NoError(t, err)

	availability, err := uc.CheckAvailability("user-2", "taken")
	require.NoError(t, err)
	assert.False(t, availability.Available)

	_, _, err = uc.Create(context.Background(), "user-2", "taken", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// No partial rows for the loser.
	identities, _ := repo.FindByUser("user-2")
	assert.Empty(t, identities)
	assert.Len(t, repo.mailboxes, 1)
}

func TestIdentityCreate_OnePerUser(t *testing.T) {
	uc := NewIdentityUsecase(newFakeIdentityRepo(), nil, "recruitbridge.net", "")

	_, _, err := uc.Create(context.Background(), "user-1", "first", "")
	require.NoError(t, err)

	_, _, err = uc.Create(context.Background(), "user-1", "second", "")
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestIdentityCreate_InsertRace(t *testing.T) {
	repo := newFakeIdentityRepo()
	repo.forceDuplicate = true
	uc := NewIdentityUsecase(repo, nil, "recruitbridge.net", "")

	// The availability pre-check sees the name as free but the insert loses
	// to a concurrent create; the unique index maps to a conflict error.
	_, _, err := uc.Create(context.Background(), "user-1", "contested", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestIdentityCreate_ProvisionFailureRollsBack(t *testing.T) {
	repo := newFakeIdentityRepo()
	routes := &fakeRoutes{failing: true}
	uc := NewIdentityUsecase(repo, routes, "recruitbridge.net", "")

	_, _, err := uc.Create(context.Background(), "user-1", "john", "")
	require.Error(t, err)

	assert.Empty(t, repo.identities)
	assert.Empty(t, repo.mailboxes)
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeIdentityRepo()
	uc := NewIdentityUsecase(repo, nil, "recruitbridge.net", "")

	availability, err := uc.CheckAvailability("user-1", "free.name")
	require.NoError(t, err)
	assert.True(t, availability.Available)
	assert.Equal(t, "free.name", availability.Username)

	availability, err = uc.CheckAvailability("user-1", "admin")
	require.NoError(t, err)
	assert.False(t, availability.Available)
	assert.NotEmpty(t, availability.Reason)

	// The holder of a name still sees it as available.
	_, _, err = uc.Create(context.Background(), "user-1", "mine", "")
	require.NoError(t, err)
	availability, err = uc.CheckAvailability("user-1", "mine")
	require.NoError(t, err)
	assert.True(t, availability.Available)
}

func TestCleanup_Idempotent(t *testing.T) {
	repo := newFakeIdentityRepo()
	routes := &fakeRoutes{}
	uc := NewIdentityUsecase(repo, routes, "recruitbridge.net", "")

	// Seed three identities for the same user, simulating the state the
	// cleanup operation exists to repair.
	for _, name := range []string{"earliest", "middle", "latest"} {
		identity := &domain.Identity{UserID: "user-1", Username: name, Domain: "recruitbridge.net"}
		require.NoError(t, repo.CreateWithMailbox(identity, &domain.Mailbox{}, func(address string) (string, error) {
			return "route-" + address, nil
		}))
	}

	first, err := uc.Cleanup(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "id-earliest", first.Kept)
	assert.Equal(t, 2, first.Deleted)
	assert.Len(t, routes.deleted, 2)

	second, err := uc.Cleanup(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.Kept, second.Kept)
	assert.Equal(t, 0, second.Deleted)
	assert.Len(t, routes.deleted, 2)
}

func TestResolveLocalPart(t *testing.T) {
	repo := newFakeIdentityRepo()
	uc := NewIdentityUsecase(repo, nil, "recruitbridge.net", "")

	_, _, err := uc.Create(context.Background(), "user-1", "you", "")
	require.NoError(t, err)

	identity, err := uc.ResolveLocalPart("You")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.UserID)

	identity, err = uc.ResolveLocalPart("ghost")
	require.NoError(t, err)
	assert.Nil(t, identity)
}
