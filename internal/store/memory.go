package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryRepo is the in-memory fallback used when the SQLite store is
// unavailable: the session works normally but nothing survives a
// restart. It holds the same key/value shapes as the kv table so key
// semantics (prefix scan, paired timestamp) match the durable store.
type memoryRepo struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory Repo.
func NewMemory() Repo {
	return &memoryRepo{values: make(map[string]string)}
}

func (r *memoryRepo) Load(_ context.Context, userID string) (ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.values[progressKey(userID)]
	if !ok {
		return ProgressRecord{}, nil
	}
	return decodeRecord(stored), nil
}

func (r *memoryRepo) Save(_ context.Context, userID string, rec ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(userID, rec)
}

func (r *memoryRepo) Toggle(_ context.Context, userID, code string) (ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := decodeRecord(r.values[progressKey(userID)])
	rec[code] = !rec[code]
	if err := r.write(userID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *memoryRepo) Import(ctx context.Context, userID, raw string) (ProgressRecord, error) {
	rec, err := parseRecord(raw)
	if err != nil {
		return nil, &ErrImport{Err: err}
	}
	if err := r.Save(ctx, userID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *memoryRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, progressKey(userID))
	delete(r.values, timestampKey(userID))
	return nil
}

func (r *memoryRepo) Timestamp(_ context.Context, userID string) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.values[timestampKey(userID)]
	if !ok {
		return time.Time{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, stored)
	if err != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

func (r *memoryRepo) EnumerateUsers(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []string
	for key := range r.values {
		if strings.HasPrefix(key, progressKeyPrefix) {
			users = append(users, strings.TrimPrefix(key, progressKeyPrefix))
		}
	}
	sort.Strings(users) // key order, like the SQLite scan
	return users, nil
}

func (r *memoryRepo) ActiveUser(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[activeUserKey], nil
}

func (r *memoryRepo) SetActiveUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[activeUserKey] = userID
	return nil
}

// write stores the record and its timestamp together. Callers hold mu.
func (r *memoryRepo) write(userID string, rec ProgressRecord) error {
	value, err := MarshalRecord(rec)
	if err != nil {
		return err
	}
	r.values[progressKey(userID)] = value
	r.values[timestampKey(userID)] = time.Now().UTC().Format(time.RFC3339Nano)
	return nil
}
