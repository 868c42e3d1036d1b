package store

import (
	"context"
	"time"
)

// ProgressRecord maps a topic code to its completion flag, scoped to a
// single user. Codes absent from the map are not complete.
type ProgressRecord map[string]bool

// Repo provides durable, per-user progress persistence. Two logical
// values exist per user: the progress record and the timestamp of its
// most recent mutation. Every mutation writes both as one unit; no
// reader ever observes one without the other.
type Repo interface {
	// Load returns the persisted record for a user, or an empty record
	// if none exists. A corrupt stored record also reads as empty: the
	// read path never fails on bad data.
	Load(ctx context.Context, userID string) (ProgressRecord, error)

	// Save persists the record and updates the user's timestamp to the
	// current instant, atomically.
	Save(ctx context.Context, userID string, rec ProgressRecord) error

	// Toggle flips the completion flag for one topic code inside a
	// single transaction and returns the resulting record.
	Toggle(ctx context.Context, userID, code string) (ProgressRecord, error)

	// Clear deletes both the record and the timestamp for a user.
	Clear(ctx context.Context, userID string) error

	// Import parses raw as a serialized record and, on success, behaves
	// as Save. On parse failure it returns *ErrImport and writes nothing.
	Import(ctx context.Context, userID, raw string) (ProgressRecord, error)

	// Timestamp returns the instant of the user's last mutation, with
	// ok=false if the user has never mutated anything.
	Timestamp(ctx context.Context, userID string) (time.Time, bool, error)

	// EnumerateUsers lists every user with a stored progress record, in
	// key order. Derived by prefix scan; any substituted backend must
	// support key enumeration.
	EnumerateUsers(ctx context.Context) ([]string, error)

	// ActiveUser returns the persisted active-user pointer, or "" if it
	// was never set.
	ActiveUser(ctx context.Context) (string, error)

	// SetActiveUser durably updates the active-user pointer.
	SetActiveUser(ctx context.Context, userID string) error
}
