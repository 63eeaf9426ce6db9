package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrRumorNotFound = errors.New("rumor not found")

type RumorStatus string

const (
	RUMOR_HOT  RumorStatus = "hot"
	RUMOR_WARM RumorStatus = "warm"
	RUMOR_COLD RumorStatus = "cold"
)

func ParseRumorStatus(s string) (RumorStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hot":
		return RUMOR_HOT, nil
	case "warm", "":
		return RUMOR_WARM, nil
	case "cold":
		return RUMOR_COLD, nil
	default:
		return "", fmt.Errorf("invalid rumor status: %s", s)
	}
}

// DefaultConfidence is used when a rumor is added without an explicit confidence.
func (s RumorStatus) DefaultConfidence() int {
	switch s {
	case RUMOR_HOT:
		return 75
	case RUMOR_COLD:
		return 25
	default:
		return 50
	}
}

// Rumor is a transfer rumor. Dates use the YYYY-MM-DD format.
type Rumor struct {
	ID         string      `json:"id"`
	Player     string      `json:"player"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Fee        string      `json:"fee"`
	Status     RumorStatus `json:"status"`
	Confidence int         `json:"confidence"`
	Source     string      `json:"source"`
	Date       string      `json:"date"`
	Verified   bool        `json:"verified"`
	Expires    string      `json:"expires,omitempty"`
	Link       string      `json:"link,omitempty"`
}

// Expired reports whether the rumor's expiry day is today or earlier.
// Rumors without an expiry date never expire.
func (r *Rumor) Expired(now time.Time) bool {
	if r.Expires == "" {
		return false
	}
	exp, err := time.Parse(time.DateOnly, r.Expires)
	if err != nil {
		return false
	}
	return !exp.After(truncateToDay(now))
}

// DedupeKey identifies the same move reported by different sources.
func (r *Rumor) DedupeKey() string {
	return fmt.Sprintf("%s_%s_%s", NormalizeName(r.Player), NormalizeName(r.From), NormalizeName(r.To))
}

// RumorFile is the on disk representation of the rumor tracker.
type RumorFile struct {
	LastUpdated string  `json:"last_updated"`
	Rumors      []Rumor `json:"rumors"`
}

func (f *RumorFile) Find(id string) (*Rumor, error) {
	for i := range f.Rumors {
		if f.Rumors[i].ID == id {
			return &f.Rumors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRumorNotFound, id)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
