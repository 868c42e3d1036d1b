package store

import (
	"context"
	"errors"
	"maps"
	"testing"
)

// repoImpls runs a subtest against each Repo implementation: both must
// satisfy the same contract.
func repoImpls(t *testing.T, fn func(t *testing.T, repo Repo)) {
	t.Helper()
	t.Run("sqlite", func(t *testing.T) {
		fn(t, openTestStore(t).ProgressRepo())
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})
}

func TestLoadMissingUserIsEmpty(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		rec, err := repo.Load(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if rec == nil || len(rec) != 0 {
			t.Errorf("load missing user = %v, want empty record", rec)
		}
	})
}

func TestToggleIdempotent(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		if err := repo.Save(ctx, "alice", ProgressRecord{"M9A": true, "M10C": false}); err != nil {
			t.Fatalf("save: %v", err)
		}

		rec, err := repo.Toggle(ctx, "alice", "M10C")
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !rec["M10C"] {
			t.Error("first toggle should set M10C")
		}
		if !rec["M9A"] {
			t.Error("toggle must not touch other codes")
		}

		rec, err = repo.Toggle(ctx, "alice", "M10C")
		if err != nil {
			t.Fatalf("toggle back: %v", err)
		}
		if rec["M10C"] {
			t.Error("second toggle should restore the prior value")
		}
		if !rec["M9A"] {
			t.Error("toggle must not touch other codes")
		}
	})
}

func TestToggleUnknownUserCreatesRecord(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		rec, err := repo.Toggle(ctx, "fresh", "M9A")
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !rec["M9A"] {
			t.Error("toggle on a fresh user should complete the code")
		}

		users, err := repo.EnumerateUsers(ctx)
		if err != nil {
			t.Fatalf("enumerate: %v", err)
		}
		if len(users) != 1 || users[0] != "fresh" {
			t.Errorf("users = %v, want [fresh]", users)
		}
	})
}

func TestClearRemovesRecordAndTimestamp(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		if err := repo.Save(ctx, "bob", ProgressRecord{"M9A": true}); err != nil {
			t.Fatalf("save: %v", err)
		}

		if err := repo.Clear(ctx, "bob"); err != nil {
			t.Fatalf("clear: %v", err)
		}

		rec, err := repo.Load(ctx, "bob")
		if err != nil {
			t.Fatalf("load after clear: %v", err)
		}
		if len(rec) != 0 {
			t.Errorf("record after clear = %v, want empty", rec)
		}

		if _, ok, _ := repo.Timestamp(ctx, "bob"); ok {
			t.Error("timestamp should be absent after clear")
		}

		users, err := repo.EnumerateUsers(ctx)
		if err != nil {
			t.Fatalf("enumerate: %v", err)
		}
		for _, u := range users {
			if u == "bob" {
				t.Error("cleared user still enumerated")
			}
		}
	})
}

func TestImportRoundTrip(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		original := ProgressRecord{"M9A": true, "M10C": false, "E9RJ": true}

		raw, err := MarshalRecord(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		imported, err := repo.Import(ctx, "alice", raw)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !maps.Equal(original, imported) {
			t.Errorf("import(export(r)) = %v, want %v", imported, original)
		}

		loaded, err := repo.Load(ctx, "alice")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !maps.Equal(original, loaded) {
			t.Errorf("loaded = %v, want %v", loaded, original)
		}
	})
}

func TestImportInvalidLeavesStoreUntouched(t *testing.T) {
	invalid := []string{
		`not json`,
		`[1, 2, 3]`,
		`null`,
		`{"M9A": "done"}`,
		`{"M9A": true} trailing`,
	}

	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		if err := repo.Save(ctx, "alice", ProgressRecord{"M9A": true}); err != nil {
			t.Fatalf("save: %v", err)
		}
		tsBefore, _, err := repo.Timestamp(ctx, "alice")
		if err != nil {
			t.Fatalf("timestamp: %v", err)
		}

		for _, raw := range invalid {
			_, err := repo.Import(ctx, "alice", raw)
			if err == nil {
				t.Errorf("import %q: want error", raw)
				continue
			}
			var importErr *ErrImport
			if !errors.As(err, &importErr) {
				t.Errorf("import %q: got %T, want *ErrImport", raw, err)
			}
		}

		rec, err := repo.Load(ctx, "alice")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !maps.Equal(rec, ProgressRecord{"M9A": true}) {
			t.Errorf("record changed by failed import: %v", rec)
		}
		tsAfter, _, err := repo.Timestamp(ctx, "alice")
		if err != nil {
			t.Fatalf("timestamp: %v", err)
		}
		if !tsAfter.Equal(tsBefore) {
			t.Error("timestamp changed by failed import")
		}
	})
}

func TestEnumerateUsersKeyOrder(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()
		for _, u := range []string{"zoe", "alice", "guest"} {
			if err := repo.Save(ctx, u, ProgressRecord{}); err != nil {
				t.Fatalf("save %s: %v", u, err)
			}
		}

		users, err := repo.EnumerateUsers(ctx)
		if err != nil {
			t.Fatalf("enumerate: %v", err)
		}
		want := []string{"alice", "guest", "zoe"}
		if len(users) != len(want) {
			t.Fatalf("users = %v, want %v", users, want)
		}
		for i := range want {
			if users[i] != want[i] {
				t.Fatalf("users = %v, want %v", users, want)
			}
		}
	})
}

func TestActiveUserPointer(t *testing.T) {
	repoImpls(t, func(t *testing.T, repo Repo) {
		ctx := context.Background()

		active, err := repo.ActiveUser(ctx)
		if err != nil {
			t.Fatalf("active user: %v", err)
		}
		if active != "" {
			t.Errorf("unset active user = %q, want empty", active)
		}

		if err := repo.SetActiveUser(ctx, "alice"); err != nil {
			t.Fatalf("set active user: %v", err)
		}
		active, err = repo.ActiveUser(ctx)
		if err != nil {
			t.Fatalf("active user: %v", err)
		}
		if active != "alice" {
			t.Errorf("active user = %q, want alice", active)
		}
	})
}

func TestMarshalRecordDeterministic(t *testing.T) {
	rec := ProgressRecord{"b": true, "a": false, "c": true}
	first, err := MarshalRecord(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := MarshalRecord(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if first != second {
		t.Error("export form must be deterministic")
	}
}
