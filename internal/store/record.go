package store

import (
	"encoding/json"
	"errors"
	"strings"
)

// MarshalRecord serializes a record as the self-describing export form:
// an indented JSON object of code → flag, no envelope. Importing the
// output reproduces an identical record.
func MarshalRecord(rec ProgressRecord) (string, error) {
	if rec == nil {
		rec = ProgressRecord{}
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// parseRecord strictly parses serialized record text. Used only on the
// import path; stored values go through decodeRecord instead.
func parseRecord(raw string) (ProgressRecord, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	var rec ProgressRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after record")
	}
	if rec == nil {
		// "null" decodes into a nil map without error.
		return nil, errors.New("record is not an object")
	}
	return rec, nil
}

// decodeRecord leniently decodes a stored value. Anything unparseable
// reads as an empty record so the read path always succeeds.
func decodeRecord(raw string) ProgressRecord {
	var rec ProgressRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec == nil {
		return ProgressRecord{}
	}
	return rec
}
