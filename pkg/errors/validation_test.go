package errors

import (
	"strings"
	"testing"
)

func TestValidateRecordID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "alchemy_1", false},
		{"with spaces", "Steel Smithing", false},
		{"unicode", "Éclair", false},
		{"with dots", "perk.smithing.steel", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxRecordIDLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
		{"double quote", `foo"bar`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecordID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateRecordID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateRecordCount(t *testing.T) {
	tests := []struct {
		n, limit int
		want     Code
	}{
		{10, 100, ""},
		{10, 0, ""},
		{0, 100, ""},
		{100, 100, ""},
		{101, 100, ErrCodeTooLarge},
	}

	for _, tt := range tests {
		if got := GetCode(ValidateRecordCount(tt.n, tt.limit)); got != tt.want {
			t.Errorf("ValidateRecordCount(%d, %d) code = %q, want %q", tt.n, tt.limit, got, tt.want)
		}
	}
}
