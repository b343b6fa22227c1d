package helpers

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reservedChars may alter the structure of a document query when a value is
// interpolated into a filter or update key.
const reservedChars = "$."

// ParseObjectID converts an externally supplied identifier into a store key.
// The value is parsed exactly as given; padding or quoting makes it malformed.
func ParseObjectID(raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: identifier is required", ErrMalformedIdentifier)
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid object id", ErrMalformedIdentifier, raw)
	}
	return oid, nil
}

// Sanitize returns value unchanged, or ErrInvalidInput when it contains a
// reserved character.
func Sanitize(value string) (string, error) {
	if i := strings.IndexAny(value, reservedChars); i >= 0 {
		return "", fmt.Errorf("%w: character %q is not allowed", ErrInvalidInput, value[i])
	}
	return value, nil
}

// Field names a string value for SanitizeFields.
type Field struct {
	Name  string
	Value string
}

// SanitizeFields runs Sanitize over fields in order and reports the first
// offending field by name.
func SanitizeFields(fields ...Field) error {
	for _, f := range fields {
		if _, err := Sanitize(f.Value); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}
