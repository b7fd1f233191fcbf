package errors

import (
	"strings"
	"unicode"
)

// MaxRecordIDLength bounds record IDs accepted at the API boundary.
const MaxRecordIDLength = 256

// ValidateRecordID validates a record ID for safety.
//
// The layout engine itself tolerates any non-empty ID, but IDs end up in
// SVG and DOT output, so the API boundary rejects:
//   - empty IDs
//   - IDs longer than MaxRecordIDLength bytes
//   - control characters, including null bytes and newlines
//   - double quotes, which would break DOT identifiers
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record id cannot be empty")
	}

	if len(id) > MaxRecordIDLength {
		return New(ErrCodeInvalidInput, "record id too long (max %d characters)", MaxRecordIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "record id %q contains control characters", id)
		}
	}

	if strings.Contains(id, `"`) {
		return New(ErrCodeInvalidInput, "record id %q contains a double quote", id)
	}

	return nil
}

// ValidateRecordCount rejects record sets larger than limit. A limit of 0
// disables the check. An empty set is valid and lays out to an empty layout.
func ValidateRecordCount(n, limit int) error {
	if limit > 0 && n > limit {
		return New(ErrCodeTooLarge, "too many records: %d (max %d)", n, limit)
	}
	return nil
}
