package domain

import "time"

// Identity is a namespaced email address (username@domain) allocated to one
// user. A user holds at most one identity; the cleanup operation enforces
// this by keeping the earliest and deleting the rest.
type Identity struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	Username    string    `json:"username" gorm:"uniqueIndex:idx_identity_address;not null"`
	Domain      string    `json:"domain" gorm:"uniqueIndex:idx_identity_address;not null"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Address returns the full email address for the identity.
func (i *Identity) Address() string {
	return i.Username + "@" + i.Domain
}

// Mailbox is the delivery endpoint paired 1:1 with an Identity. RouteID holds
// the provider-side inbound route backing the mailbox; it is empty when no
// provider is configured.
type Mailbox struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	IdentityID string    `json:"identity_id" gorm:"uniqueIndex;not null"`
	RouteID    string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
