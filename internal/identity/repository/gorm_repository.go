package repository

import (
	"errors"
	"time"

	"recruitbridge-backend/internal/identity/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormIdentityRepository implements IdentityRepository using GORM
type gormIdentityRepository struct {
	db *gorm.DB
}

// NewGormIdentityRepository creates a new GORM-based IdentityRepository
func NewGormIdentityRepository(db *gorm.DB) IdentityRepository {
	return &gormIdentityRepository{db: db}
}

func (r *gormIdentityRepository) CreateWithMailbox(identity *domain.Identity, mailbox *domain.Mailbox, provision func(address string) (string, error)) error {
	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}
	identity.CreatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(identity).Error; err != nil {
			return err
		}

		mailbox.ID = uuid.New().String()
		mailbox.IdentityID = identity.ID
		mailbox.CreatedAt = time.Now()

		if provision != nil {
			routeID, err := provision(identity.Address())
			if err != nil {
				return err
			}
			mailbox.RouteID = routeID
		}

		return tx.Create(mailbox).Error
	})
}

func (r *gormIdentityRepository) FindByAddress(username, mailDomain string) (*domain.Identity, error) {
	var identity domain.Identity
	err := r.db.Where("username = ? AND domain = ?", username, mailDomain).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r *gormIdentityRepository) FindByUser(userID string) ([]*domain.Identity, error) {
	var identities []*domain.Identity
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&identities).Error
	return identities, err
}

func (r *gormIdentityRepository) FindMailbox(identityID string) (*domain.Mailbox, error) {
	var mailbox domain.Mailbox
	err := r.db.Where("identity_id = ?", identityID).First(&mailbox).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mailbox, nil
}

// Cleanup reads and deletes inside the same transaction so a concurrent
// create cannot slip a row between the snapshot and the delete.
func (r *gormIdentityRepository) Cleanup(userID string) (*CleanupResult, error) {
	result := &CleanupResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var identities []*domain.Identity
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&identities).Error; err != nil {
			return err
		}
		if len(identities) == 0 {
			return nil
		}

		result.Kept = identities[0]
		for _, extra := range identities[1:] {
			var mailbox domain.Mailbox
			err := tx.Where("identity_id = ?", extra.ID).First(&mailbox).Error
			if err == nil {
				if mailbox.RouteID != "" {
					result.DeletedRouteIDs = append(result.DeletedRouteIDs, mailbox.RouteID)
				}
				if err := tx.Delete(&mailbox).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Delete(extra).Error; err != nil {
				return err
			}
			result.Deleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
