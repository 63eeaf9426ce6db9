package web

import (
	"testing"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/controller/mockcontroller"
)

func TestDateFormatter(t *testing.T) {
	tests := []struct {
		d    time.Time
		want string
	}{
		{d: time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC), want: "2024-11-15 12:00 UTC"},
		{d: time.Date(2025, 1, 2, 7, 30, 0, 0, time.FixedZone("CET", 3600)), want: "2025-01-02 06:30 UTC"},
		{d: time.Time{}, want: "Never"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := dateFormatter(tc.d)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestPctFormatter(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{v: 31.84, want: "+31.8%"},
		{v: -4.9, want: "-4.9%"},
		{v: 0, want: "+0.0%"},
		{v: 850, want: "+850.0%"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := pctFormatter(tc.v)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestPer90Formatter(t *testing.T) {
	if got := per90Formatter(1.016); got != "1.02" {
		t.Errorf("expected: '1.02', got: '%v'", got)
	}
}

func TestNewServer(t *testing.T) {
	if _, err := NewServer(3000, nil, Options{}); err == nil {
		t.Errorf("expected an error without a controller")
	}

	s, err := NewServer(3000, &mockcontroller.C{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.server.Addr != ":3000" {
		t.Errorf("expected: ':3000', got: '%v'", s.server.Addr)
	}
}
