package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Mike Smith", "mike smith"},
		{"Mike Smith Jr.", "mike smith"},
		{"Ken Griffey Sr", "ken griffey"},
		{"John Paul Jones III", "john jones"},
		{"M. Smith", "m smith"},
		{"  Charlie   Davis ", "charlie davis"},
		{"D'Angelo Ortiz", "dangelo ortiz"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"Mike Smith", "Mike Smith", true},
		{"Mike Smith", "M. Smith", true},
		{"Mike Smith", "mike smith jr", true},
		{"Mike Smith", "Mike Jones", false},
		{"Mike Smith", "Mark Smith", true}, // same initial + last name, by rule
		{"Mike Smith", "Nate Smith", false},
		{"Charlie Davis", "Charles Davis", true},
		{"Mike Smith", "Smith", false},
		{"", "Mike Smith", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Match(tt.a, tt.b); got != tt.expected {
				t.Errorf("Match(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
