package types

import "strings"

// ID type aliases give the ordering layer semantic names for otherwise bare strings.

// ItemID identifies an ordered item. Values are UUID strings minted by the store.
type ItemID string

// Scope identifies the board or list a set of items belongs to,
// e.g. "focus:<profile-id>" or "playbook:<agency-id>".
type Scope string

// Bucket is the label of a column or category within a scope.
type Bucket string

// String returns the raw id.
func (id ItemID) String() string { return string(id) }

// String returns the raw scope.
func (s Scope) String() string { return string(s) }

// Board returns the part of the scope before the first colon.
func (s Scope) Board() string {
	board, _, _ := strings.Cut(string(s), ":")
	return board
}

// NewScope joins a board name and an owner id.
func NewScope(board, owner string) Scope {
	return Scope(board + ":" + owner)
}

// String returns the raw bucket label.
func (b Bucket) String() string { return string(b) }

// Well-known board names used by the default configuration.
const (
	BoardFocus    = "focus"
	BoardPlaybook = "playbook"
)

// BucketAll is the single bucket of flat lists such as the Standard Playbook.
const BucketAll Bucket = "all"
