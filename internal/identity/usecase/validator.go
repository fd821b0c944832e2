package usecase

import (
	"fmt"
	"strings"
)

// reservedUsernames are local-parts that must never be allocated. The list is
// fixed configuration; there is deliberately no environment override.
var reservedUsernames = map[string]bool{
	"postmaster":    true,
	"abuse":         true,
	"admin":         true,
	"support":       true,
	"help":          true,
	"no-reply":      true,
	"noreply":       true,
	"mailer-daemon": true,
	"root":          true,
	"system":        true,
	"api":           true,
	"mg":            true,
	"in":            true,
}

// ValidateUsername canonicalizes (trim, lowercase) and validates a requested
// username. Rules are checked in order and the first failure wins; the error
// message is the human-readable reason. Pure function, no I/O.
func ValidateUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))

	if username == "" {
		return "", fmt.Errorf("%w: username is required", ErrUsernameInvalid)
	}
	if len(username) < 3 || len(username) > 64 {
		return "", fmt.Errorf("%w: username must be between 3 and 64 characters", ErrUsernameInvalid)
	}
	for _, c := range username {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '.' || c == '_' || c == '-') {
			return "", fmt.Errorf("%w: username may only contain letters, numbers, dots, underscores and hyphens", ErrUsernameInvalid)
		}
	}
	if strings.ContainsAny(username[:1], "._-") || strings.ContainsAny(username[len(username)-1:], "._-") {
		return "", fmt.Errorf("%w: username cannot start or end with a special character", ErrUsernameInvalid)
	}
	if strings.Contains(username, "..") {
		return "", fmt.Errorf("%w: username cannot contain consecutive dots", ErrUsernameInvalid)
	}
	if reservedUsernames[username] {
		return "", fmt.Errorf("%w: username %q is reserved", ErrUsernameInvalid, username)
	}

	return username, nil
}
