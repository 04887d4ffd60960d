package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateID creates a short, human-readable identifier.
// Format: {kind}-{slug(name)}-{8charHexUUID}
//
// Example:
//   - Input: kind="quest", name="Salt Hoard"
//   - Output: "quest-salt-hoard-a3f8e2b1"
//
// An empty name is dropped: GenerateID("game", "") -> "game-a3f8e2b1"
func GenerateID(kind, name string) string {
	parts := []string{kind}
	if s := slug(name); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(append(parts, generateShortUUID()), "-")
}

// slug lowercases a name and joins its letter and digit runs with hyphens.
//   - "Salt Hoard" -> "salt-hoard"
//   - "  Pirate  Bane!! " -> "pirate-bane"
func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
