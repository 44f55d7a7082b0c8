package utils

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		exp     float64
	}{
		{
			name:    "zero denominator yields exactly zero",
			present: 0,
			total:   0,
			exp:     0,
		},
		{
			name:    "full attendance",
			present: 20,
			total:   20,
			exp:     100,
		},
		{
			name:    "two thirds rounds to 2dp",
			present: 2,
			total:   3,
			exp:     66.67,
		},
		{
			name:    "one third rounds down",
			present: 1,
			total:   3,
			exp:     33.33,
		},
		{
			name:    "present but zero percent",
			present: 0,
			total:   5,
			exp:     0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Percentage(tc.present, tc.total)
			if got != tc.exp {
				t.Fatalf("expected %v, got %v", tc.exp, got)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input string
		exp   string
		ok    bool
	}{
		{input: "PRESENT", exp: "PRESENT", ok: true},
		{input: "present", exp: "PRESENT", ok: true},
		{input: "Late", exp: "LATE", ok: true},
		{input: " leave ", exp: "LEAVE", ok: true},
		{input: "absent", exp: "ABSENT", ok: true},
		{input: "HOLIDAY", exp: "", ok: false},
		{input: "", exp: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := NormalizeStatus(tc.input)
		if got != tc.exp || ok != tc.ok {
			t.Fatalf("NormalizeStatus(%q) = (%q, %v), expected (%q, %v)", tc.input, got, ok, tc.exp, tc.ok)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole("TEACHER") || !IsValidRole("STUDENT") {
		t.Fatal("expected TEACHER and STUDENT to be valid roles")
	}
	if IsValidRole("teacher") || IsValidRole("ADMIN") || IsValidRole("") {
		t.Fatal("unexpected role accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
}
