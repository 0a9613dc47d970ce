package internal

import "github.com/google/uuid"

// NewAccountID draws a random account identifier. IDs are opaque to
// callers; UUID is only the wire shape.
func NewAccountID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ValidAccountID reports whether s has the shape of an id produced by
// [NewAccountID].
func ValidAccountID(s string) bool {
	return uuid.Validate(s) == nil
}
