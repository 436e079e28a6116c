package util

import "testing"

func TestParseNullInt64Positive(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue int64
	}{
		{"valid positive", "42", true, 42},
		{"empty string", "", false, 0},
		{"zero", "0", false, 0},
		{"negative", "-5", false, 0},
		{"not a number", "abc", false, 0},
		{"large value", "9999999999", true, 9999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNullInt64Positive(tt.input)
			if got.Valid != tt.wantValid {
				t.Errorf("ParseNullInt64Positive(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && got.Int64 != tt.wantValue {
				t.Errorf("ParseNullInt64Positive(%q).Int64 = %d, want %d", tt.input, got.Int64, tt.wantValue)
			}
		})
	}
}
