package sqlutil

import "testing"

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"orders", "`orders`"},
		{"order_items", "`order_items`"},
		{"select", "`select`"},         // reserved word
		{"store code", "`store code`"}, // space in name
		{"a`b`c", "`a``b``c`"},         // backticks in name
		{"", "``"},                     // empty string
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := QuoteIdentifier(tt.input)
			if result != tt.expected {
				t.Errorf("QuoteIdentifier(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234", "1234"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`a\b`, `a\\b`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := EscapeLike(tt.input)
			if result != tt.expected {
				t.Errorf("EscapeLike(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
