package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseRumorStatus(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected RumorStatus
		err      bool
	}{
		"hot":         {input: "HOT", expected: RUMOR_HOT},
		"warm":        {input: "warm", expected: RUMOR_WARM},
		"empty":       {input: "", expected: RUMOR_WARM},
		"cold":        {input: " cold ", expected: RUMOR_COLD},
		"unsupported": {input: "boiling", err: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := ParseRumorStatus(tc.input)
			if tc.err != (err != nil) {
				t.Fatalf("unexpected error result: %v", err)
			}
			if s != tc.expected {
				t.Errorf("wanted: '%s', got: '%s'", tc.expected, s)
			}
		})
	}
}

func TestRumorExpired(t *testing.T) {
	now := time.Date(2024, 12, 1, 15, 30, 0, 0, time.UTC)
	tests := map[string]struct {
		expires  string
		expected bool
	}{
		"yesterday":    {expires: "2024-11-30", expected: true},
		"today":        {expires: "2024-12-01", expected: true},
		"tomorrow":     {expires: "2024-12-02", expected: false},
		"never":        {expires: "", expected: false},
		"invalid date": {expires: "soon", expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := &Rumor{Expires: tc.expires}
			if a := r.Expired(now); a != tc.expected {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, a)
			}
		})
	}
}

func TestRumorFileFind(t *testing.T) {
	f := &RumorFile{
		Rumors: []Rumor{
			{ID: "rumor_001", Player: "Jonathan David"},
			{ID: "rumor_002", Player: "Viktor Gyökeres"},
		},
	}

	r, err := f.Find("rumor_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Verified = true
	if !f.Rumors[1].Verified {
		t.Error("Find should return a pointer into the file")
	}

	_, err = f.Find("rumor_003")
	if !errors.Is(err, ErrRumorNotFound) {
		t.Errorf("expected ErrRumorNotFound, got: %v", err)
	}
}

func TestRumorDedupeKey(t *testing.T) {
	a := &Rumor{Player: "Viktor Gyökeres", From: "Sporting CP", To: "Arsenal"}
	b := &Rumor{Player: "viktor gyokeres", From: "Sporting  CP", To: "ARSENAL"}
	if a.DedupeKey() != b.DedupeKey() {
		t.Errorf("keys should match: '%s' vs '%s'", a.DedupeKey(), b.DedupeKey())
	}
}
