package curriculum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Parse validates and decodes a raw curriculum document, preserving the
// document order of subjects and year labels. encoding/json maps drop
// key order, so the object keys are walked with a token decoder.
func Parse(raw []byte) (RawDocument, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, &ErrMalformedDocument{Err: err}
	}

	var doc RawDocument
	seenSubjects := make(map[string]bool)
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, &ErrMalformedDocument{Err: err}
		}
		// Duplicate keys are legal JSON but ambiguous here: the second
		// occurrence would double-count its topics.
		if seenSubjects[name] {
			return nil, &ErrMalformedDocument{Err: fmt.Errorf("duplicate subject %q", name)}
		}
		seenSubjects[name] = true

		subject := RawSubject{Name: name}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, &ErrMalformedDocument{Err: err}
		}
		seenYears := make(map[string]bool)
		for dec.More() {
			label, err := stringToken(dec)
			if err != nil {
				return nil, &ErrMalformedDocument{Err: err}
			}
			if seenYears[label] {
				return nil, &ErrMalformedDocument{Err: fmt.Errorf("duplicate year label %q in subject %q", label, name)}
			}
			seenYears[label] = true
			var topics []TopicEntry
			if err := dec.Decode(&topics); err != nil {
				return nil, &ErrMalformedDocument{Err: fmt.Errorf("decode topics for %q/%q: %w", name, label, err)}
			}
			subject.Years = append(subject.Years, RawYear{Label: label, Topics: topics})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, &ErrMalformedDocument{Err: err}
		}

		doc = append(doc, subject)
	}

	return doc, nil
}

// Load parses and normalizes a document in one step.
func Load(raw []byte) (*Progression, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Normalize(doc), nil
}

// LoadFile reads, parses and normalizes a document from disk.
func LoadFile(path string) (*Progression, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum document: %w", err)
	}
	return Load(raw)
}

// expectDelim consumes one token and checks it is the given delimiter.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// stringToken consumes one token and checks it is a string (an object key).
func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}
