// Package registry derives the set of known users from the progress
// store's key namespace and owns the active-user pointer.
package registry

import (
	"context"
	"errors"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abhisek/currix/internal/store"
)

// GuestUser is the permanent default identity. It always exists, even
// with no stored progress, and is always listed first.
const GuestUser = "guest"

// ErrEmptyUserID is returned when setting an empty active user.
var ErrEmptyUserID = errors.New("user id must not be empty")

// Registry lists known user identities and tracks the active one.
type Registry struct {
	repo     store.Repo
	collator *collate.Collator
}

// New creates a Registry over the given progress repository.
func New(repo store.Repo) *Registry {
	return &Registry{
		repo:     repo,
		collator: collate.New(language.English, collate.Loose),
	}
}

// ListUsers returns every known identity: users discovered by scanning
// stored progress keys, plus the active user (whose identity persists
// even after a reset removed its keys), plus "guest". Sorted
// alphabetically with locale-aware collation; "guest" is prepended
// outside the sort.
func (r *Registry) ListUsers(ctx context.Context) ([]string, error) {
	users, err := r.repo.EnumerateUsers(ctx)
	if err != nil {
		return nil, err
	}

	active, err := r.ActiveUser(ctx)
	if err != nil {
		return nil, err
	}

	var others []string
	seen := map[string]bool{GuestUser: true}
	for _, u := range append(users, active) {
		if !seen[u] {
			seen[u] = true
			others = append(others, u)
		}
	}
	r.collator.SortStrings(others)

	return slices.Insert(others, 0, GuestUser), nil
}

// ActiveUser returns the currently selected identity, defaulting to
// "guest" if never set.
func (r *Registry) ActiveUser(ctx context.Context) (string, error) {
	active, err := r.repo.ActiveUser(ctx)
	if err != nil {
		return "", err
	}
	if active == "" {
		return GuestUser, nil
	}
	return active, nil
}

// SetActiveUser durably switches the selected identity. Users are
// created implicitly on first write, so any non-empty id is valid.
func (r *Registry) SetActiveUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	return r.repo.SetActiveUser(ctx, userID)
}
