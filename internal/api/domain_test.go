package api

import (
	"testing"
	"time"
)

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{"dfx", DomainDFX, false},
		{"", DomainDFX, false},
		{" LOCK ", DomainLOCK, false},
		{"kraken", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDomain(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDomain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDomain(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDomainString(t *testing.T) {
	if DomainDFX.String() != "dfx" || DomainLOCK.String() != "lock" {
		t.Errorf("unexpected domain names %s/%s", DomainDFX, DomainLOCK)
	}
	if Domain(9).String() != "domain(9)" {
		t.Errorf("Domain(9).String() = %s", Domain(9).String())
	}
}

func TestSessionValid(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{"empty", Session{}, false},
		{"no expiry", Session{AccessToken: "t"}, true},
		{"future", Session{AccessToken: "t", ExpiresAt: now.Add(time.Minute)}, true},
		{"past", Session{AccessToken: "t", ExpiresAt: now.Add(-time.Minute)}, false},
	}
	for _, tt := range tests {
		if got := tt.s.Valid(now); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
