// Package user resolves who owns a board when a scope names only the board.
package user

import (
	"os"
	"os/user"
	"strings"
)

// OwnerEnv overrides the detected owner.
const OwnerEnv = "CADENCE_OWNER"

// CurrentOwner returns the owner half of a scope for this shell: CADENCE_OWNER
// when set, else the OS username, else USER, else "unknown".
func CurrentOwner() string {
	if owner := strings.TrimSpace(os.Getenv(OwnerEnv)); owner != "" {
		return owner
	}

	currentUser, err := user.Current()
	if err != nil || currentUser.Username == "" {
		if username := os.Getenv("USER"); username != "" {
			return username
		}
		return "unknown"
	}

	// Windows usernames come back as DOMAIN\name
	if _, name, ok := strings.Cut(currentUser.Username, `\`); ok {
		return name
	}
	return currentUser.Username
}
