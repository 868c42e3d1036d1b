package store

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"strings"
	"time"
)

// Key shapes for the kv table. These are internal to the store; the
// prefix scan over progress keys is how the registry discovers users.
const (
	progressKeyPrefix  = "progress:"
	timestampKeyPrefix = "updated:"
	activeUserKey      = "active-user"
)

func progressKey(userID string) string  { return progressKeyPrefix + userID }
func timestampKey(userID string) string { return timestampKeyPrefix + userID }

// sqliteRepo implements Repo on the kv table.
type sqliteRepo struct {
	db *sql.DB
}

func (r *sqliteRepo) Load(ctx context.Context, userID string) (ProgressRecord, error) {
	stored, ok, err := r.get(ctx, progressKey(userID))
	if err != nil {
		return nil, &ErrStoreUnavailable{Op: "load", Err: err}
	}
	if !ok {
		return ProgressRecord{}, nil
	}
	return decodeRecord(stored), nil
}

func (r *sqliteRepo) Save(ctx context.Context, userID string, rec ProgressRecord) error {
	_, err := r.writeRecord(ctx, userID, func(ProgressRecord) ProgressRecord {
		return maps.Clone(rec)
	})
	return err
}

func (r *sqliteRepo) Toggle(ctx context.Context, userID, code string) (ProgressRecord, error) {
	return r.writeRecord(ctx, userID, func(rec ProgressRecord) ProgressRecord {
		rec[code] = !rec[code]
		return rec
	})
}

func (r *sqliteRepo) Import(ctx context.Context, userID, raw string) (ProgressRecord, error) {
	rec, err := parseRecord(raw)
	if err != nil {
		return nil, &ErrImport{Err: err}
	}
	if err := r.Save(ctx, userID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *sqliteRepo) Clear(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &ErrStoreUnavailable{Op: "clear", Err: err}
	}
	defer tx.Rollback()

	for _, key := range []string{progressKey(userID), timestampKey(userID)} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			return &ErrStoreUnavailable{Op: "clear", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &ErrStoreUnavailable{Op: "clear", Err: err}
	}
	return nil
}

func (r *sqliteRepo) Timestamp(ctx context.Context, userID string) (time.Time, bool, error) {
	stored, ok, err := r.get(ctx, timestampKey(userID))
	if err != nil {
		return time.Time{}, false, &ErrStoreUnavailable{Op: "timestamp", Err: err}
	}
	if !ok {
		return time.Time{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, stored)
	if err != nil {
		// Same leniency as a corrupt record: reads as absent.
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

func (r *sqliteRepo) EnumerateUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE key LIKE ? ORDER BY key`, progressKeyPrefix+"%")
	if err != nil {
		return nil, &ErrStoreUnavailable{Op: "enumerate", Err: err}
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &ErrStoreUnavailable{Op: "enumerate", Err: err}
		}
		users = append(users, strings.TrimPrefix(key, progressKeyPrefix))
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrStoreUnavailable{Op: "enumerate", Err: err}
	}
	return users, nil
}

func (r *sqliteRepo) ActiveUser(ctx context.Context) (string, error) {
	stored, ok, err := r.get(ctx, activeUserKey)
	if err != nil {
		return "", &ErrStoreUnavailable{Op: "active-user", Err: err}
	}
	if !ok {
		return "", nil
	}
	return stored, nil
}

func (r *sqliteRepo) SetActiveUser(ctx context.Context, userID string) error {
	if err := put(ctx, r.db, activeUserKey, userID); err != nil {
		return &ErrStoreUnavailable{Op: "active-user", Err: err}
	}
	return nil
}

// writeRecord applies mutate to the stored record and persists the
// result together with a fresh timestamp, all in one transaction. The
// transaction is the per-user critical section: no reader can observe a
// new record paired with a stale timestamp or vice versa.
func (r *sqliteRepo) writeRecord(ctx context.Context, userID string, mutate func(ProgressRecord) ProgressRecord) (ProgressRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, progressKey(userID)).Scan(&stored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}

	rec := mutate(decodeRecord(stored))

	value, err := MarshalRecord(rec)
	if err != nil {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := put(ctx, tx, progressKey(userID), value); err != nil {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}
	if err := put(ctx, tx, timestampKey(userID), now); err != nil {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, &ErrStoreUnavailable{Op: "save", Err: err}
	}
	return rec, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (r *sqliteRepo) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
