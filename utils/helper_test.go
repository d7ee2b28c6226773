package utils

import (
	"testing"
	"time"
)

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"9165551234", "(916) 555-1234"},
		{" +1 916-555-1234 ", "(916) 555-1234"},
		{"", ""},
		{"not a number", "not a number"},
	}
	for _, tc := range cases {
		if got := FormatPhoneNumber(tc.in, CountryCode); got != tc.expected {
			t.Fatalf("FormatPhoneNumber(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestParseDateTimeAndFormatDate(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2016-08-03T01:00:00.000Z", "08/03/2016"},
		{"2016-08-03T01:00:00", "08/03/2016"},
		{"2016-08-03", "08/03/2016"},
		{"yesterday", ""},
		{"", ""},
	}
	for _, tc := range cases {
		v := tc.in
		if got := FormatDate(&v); got != tc.expected {
			t.Fatalf("FormatDate(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
	if FormatDate(nil) != "" {
		t.Fatalf("FormatDate(nil) should be empty")
	}

	got, ok := ParseDateTime("2024-01-02T03:04:05Z")
	if !ok || !got.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected parse %v %v", got, ok)
	}
}

func TestJwtRoundTrip(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	token, err := JwtGenerate("worker1", "supervisor")
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}
	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate error: %v", err)
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok || !parsed.Valid {
		t.Fatalf("unexpected claims %T valid=%v", parsed.Claims, parsed.Valid)
	}
	if claims.Username != "worker1" || claims.Role != "supervisor" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	t.Setenv("API_SECRET", "other-secret")
	if _, err := JwtValidate(token); err == nil {
		t.Fatalf("token signed with another secret validated")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") || Contains([]string{"a"}, "c") {
		t.Fatalf("Contains gave the wrong answer")
	}
}
