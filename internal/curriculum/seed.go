package curriculum

import _ "embed"

// defaultDocument is the built-in KS3/KS4 curriculum, used when no
// external document is supplied.
//
//go:embed curriculum.json
var defaultDocument []byte

// DefaultDocument returns the built-in curriculum document.
func DefaultDocument() []byte {
	return defaultDocument
}

// Default parses and normalizes the built-in curriculum. It goes through
// the same validation path as an external document.
func Default() (*Progression, error) {
	return Load(defaultDocument)
}
