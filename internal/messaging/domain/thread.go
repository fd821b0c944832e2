package domain

import (
	"sort"
	"strings"
	"time"
)

// Thread groups the messages exchanged with a stable set of external
// participants. Participants is a comma-joined set of lowercased addresses;
// ParticipantKey is the sorted form of the initial set and carries the
// uniqueness constraint that makes concurrent creation an insert-or-fetch.
type Thread struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `json:"user_id" gorm:"uniqueIndex:idx_thread_participants;not null"`
	ExternalID     string    `json:"external_id,omitempty"`
	Subject        string    `json:"subject"`
	Participants   string    `json:"-" gorm:"not null"`
	ParticipantKey string    `json:"-" gorm:"uniqueIndex:idx_thread_participants;not null"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int       `json:"unread_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ParticipantList returns the participant set as a slice.
func (t *Thread) ParticipantList() []string {
	if t.Participants == "" {
		return nil
	}
	return strings.Split(t.Participants, ",")
}

// HasParticipant reports whether addr is in the thread's participant set.
func (t *Thread) HasParticipant(addr string) bool {
	addr = strings.ToLower(strings.TrimSpace(addr))
	for _, p := range t.ParticipantList() {
		if p == addr {
			return true
		}
	}
	return false
}

// ParticipantKeyFor canonicalizes a participant set: lowercase, dedupe, sort,
// comma-join. Equal sets yield equal keys regardless of order.
func ParticipantKeyFor(addrs []string) string {
	seen := make(map[string]bool, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
