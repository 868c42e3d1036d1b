package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/curriculum"
	"github.com/abhisek/currix/internal/registry"
	"github.com/abhisek/currix/internal/store"
)

// appEnv bundles the collaborators every command needs.
type appEnv struct {
	repo        store.Repo
	registry    *registry.Registry
	progression *curriculum.Progression
}

// openEnv loads the curriculum and opens the progress store. A malformed
// curriculum aborts; an unavailable store degrades to an in-memory
// session with a warning.
func openEnv(cmd *cobra.Command) (*appEnv, func(), error) {
	progression, err := loadProgression(cmd)
	if err != nil {
		return nil, nil, err
	}

	repo, cleanup := openRepo(cmd)
	return &appEnv{
		repo:        repo,
		registry:    registry.New(repo),
		progression: progression,
	}, cleanup, nil
}

// loadProgression resolves the curriculum document: --curriculum flag,
// then CURRIX_CURRICULUM env var, then the built-in document.
func loadProgression(cmd *cobra.Command) (*curriculum.Progression, error) {
	if p, _ := cmd.Flags().GetString("curriculum"); p != "" {
		return curriculum.LoadFile(p)
	}
	if p := os.Getenv("CURRIX_CURRICULUM"); p != "" {
		return curriculum.LoadFile(p)
	}
	return curriculum.Default()
}

// openRepo opens the durable store, falling back to an ephemeral
// in-memory one when the medium is unavailable.
func openRepo(cmd *cobra.Command) (store.Repo, func()) {
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		if st, err = store.Open(dbPath); err == nil {
			return st.ProgressRepo(), func() { st.Close() }
		}
	}

	fmt.Fprintln(os.Stderr, "warning: progress store unavailable, this session will not be saved:", err)
	return store.NewMemory(), func() {}
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then CURRIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
