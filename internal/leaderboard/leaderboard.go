// Package leaderboard ranks all known users by overall curriculum
// completion.
package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/abhisek/currix/internal/curriculum"
	"github.com/abhisek/currix/internal/progress"
	"github.com/abhisek/currix/internal/registry"
	"github.com/abhisek/currix/internal/store"
)

// Entry is one ranked row: a user, their completion percentage over the
// entire curriculum (all subjects combined), and when they last changed
// anything. All entries sharing the maximum percentage are leaders, so
// ties produce several simultaneous leaders.
type Entry struct {
	User       string
	Percent    int
	LastActive *time.Time
	Leader     bool
}

// Builder aggregates registry, store and calculator into a ranked list.
type Builder struct {
	registry    *registry.Registry
	repo        store.Repo
	progression *curriculum.Progression
}

// New creates a Builder over the given collaborators.
func New(reg *registry.Registry, repo store.Repo, progression *curriculum.Progression) *Builder {
	return &Builder{registry: reg, repo: repo, progression: progression}
}

// Build returns every known user ranked descending by percent; ties keep
// registry order. The user list is snapshotted before iterating, and a
// record that disappears mid-scan (e.g. a concurrent reset) reads as
// empty rather than failing the aggregation.
func (b *Builder) Build(ctx context.Context) ([]Entry, error) {
	users, err := b.registry.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	topics := b.progression.AllTopics()

	entries := make([]Entry, 0, len(users))
	for _, user := range users {
		rec, err := b.repo.Load(ctx, user)
		if err != nil {
			rec = store.ProgressRecord{}
		}

		entry := Entry{User: user, Percent: progress.PercentFor(topics, rec)}
		if ts, ok, err := b.repo.Timestamp(ctx, user); err == nil && ok {
			entry.LastActive = &ts
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})

	// With an empty curriculum every percent is 0 by definition and
	// nobody leads, even though all are tied at the max.
	if len(entries) > 0 && entries[0].Percent > 0 {
		max := entries[0].Percent
		for i := range entries {
			if entries[i].Percent == max {
				entries[i].Leader = true
			}
		}
	}

	return entries, nil
}
