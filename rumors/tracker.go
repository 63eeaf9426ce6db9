// Package rumors manages the transfer rumor file.
package rumors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/itbasis/go-clock"
)

const DefaultExpiresInDays = 30

var ErrInvalidField = errors.New("invalid rumor field")

// NewRumor holds the values of a rumor added by hand. Zero values get
// defaults, a nil Confidence gets the default of the status.
type NewRumor struct {
	Player        string
	From          string
	To            string
	Fee           string
	Status        model.RumorStatus
	Confidence    *int
	Source        string
	Verified      bool
	ExpiresInDays int
}

// Tracker reads and writes the rumor file. All operations load the file,
// apply the change, and save it again.
type Tracker struct {
	path  string
	clock clock.Clock
	mu    sync.Mutex
}

func New(path string, clock clock.Clock) *Tracker {
	return &Tracker{path: path, clock: clock}
}

func (t *Tracker) Path() string {
	return t.path
}

// Load returns an empty file when none exists yet.
func (t *Tracker) Load() (*model.RumorFile, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

func (t *Tracker) Save(f *model.RumorFile) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(f)
}

// List returns every rumor, newest first.
func (t *Tracker) List() ([]model.Rumor, error) {
	f, err := t.Load()
	if err != nil {
		return nil, err
	}
	return SortByDate(f.Rumors), nil
}

// Active returns the rumors that have not expired, newest first.
func (t *Tracker) Active() ([]model.Rumor, error) {
	f, err := t.Load()
	if err != nil {
		return nil, err
	}
	now := t.clock.Now()
	result := make([]model.Rumor, 0, len(f.Rumors))
	for _, r := range f.Rumors {
		if !r.Expired(now) {
			result = append(result, r)
		}
	}
	return SortByDate(result), nil
}

func (t *Tracker) Add(n NewRumor) (model.Rumor, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.load()
	if err != nil {
		return model.Rumor{}, err
	}
	r, err := AddRumor(f, n, t.clock.Now())
	if err != nil {
		return model.Rumor{}, err
	}
	if err := t.save(f); err != nil {
		return model.Rumor{}, err
	}
	return r, nil
}

// Update applies "field=value" assignments to the rumor with the given id.
// Nothing is saved if any assignment is invalid.
func (t *Tracker) Update(id string, assignments ...string) (model.Rumor, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.load()
	if err != nil {
		return model.Rumor{}, err
	}
	r, err := f.Find(id)
	if err != nil {
		return model.Rumor{}, err
	}

	updated := *r
	for _, a := range assignments {
		field, value, found := strings.Cut(a, "=")
		if !found {
			return model.Rumor{}, fmt.Errorf("%w: expected field=value, got %s", ErrInvalidField, a)
		}
		if err := SetField(&updated, field, value); err != nil {
			return model.Rumor{}, err
		}
	}
	*r = updated

	if err := t.save(f); err != nil {
		return model.Rumor{}, err
	}
	return updated, nil
}

// Clean removes expired rumors and returns how many were removed.
func (t *Tracker) Clean() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.load()
	if err != nil {
		return 0, err
	}
	removed := RemoveExpired(f, t.clock.Now())
	if err := t.save(f); err != nil {
		return 0, err
	}
	return removed, nil
}

// Import adds the candidates that are not already tracked and returns how
// many were added.
func (t *Tracker) Import(candidates []model.Rumor) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.load()
	if err != nil {
		return 0, err
	}
	added := Merge(f, candidates)
	if added == 0 {
		return 0, nil
	}
	if err := t.save(f); err != nil {
		return 0, err
	}
	return added, nil
}

func (t *Tracker) load() (*model.RumorFile, error) {
	content, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return &model.RumorFile{
			LastUpdated: t.clock.Now().Format(time.DateOnly),
			Rumors:      []model.Rumor{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading rumors file: %w", err)
	}

	var f model.RumorFile
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("error parsing rumors file %s: %w", t.path, err)
	}
	if f.Rumors == nil {
		f.Rumors = []model.Rumor{}
	}
	return &f, nil
}

func (t *Tracker) save(f *model.RumorFile) error {
	f.LastUpdated = t.clock.Now().Format(time.DateOnly)
	if f.Rumors == nil {
		f.Rumors = []model.Rumor{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("error encoding rumors: %w", err)
	}

	if dir := filepath.Dir(t.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating rumors directory: %w", err)
		}
	}
	if err := os.WriteFile(t.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing rumors file: %w", err)
	}
	return nil
}

// AddRumor appends a rumor to the file, dated the day of now.
func AddRumor(f *model.RumorFile, n NewRumor, now time.Time) (model.Rumor, error) {
	if strings.TrimSpace(n.Player) == "" {
		return model.Rumor{}, fmt.Errorf("%w: player is required", ErrInvalidField)
	}
	if n.Status == "" {
		n.Status = model.RUMOR_WARM
	}
	confidence := n.Status.DefaultConfidence()
	if n.Confidence != nil {
		confidence = *n.Confidence
	}
	if confidence < 0 || confidence > 100 {
		return model.Rumor{}, fmt.Errorf("%w: confidence must be between 0 and 100", ErrInvalidField)
	}
	if n.Source == "" {
		n.Source = "Unknown"
	}
	if n.ExpiresInDays <= 0 {
		n.ExpiresInDays = DefaultExpiresInDays
	}

	r := model.Rumor{
		ID:         NextID(f),
		Player:     strings.TrimSpace(n.Player),
		From:       strings.TrimSpace(n.From),
		To:         strings.TrimSpace(n.To),
		Fee:        strings.TrimSpace(n.Fee),
		Status:     n.Status,
		Confidence: confidence,
		Source:     n.Source,
		Date:       now.Format(time.DateOnly),
		Verified:   n.Verified,
		Expires:    now.AddDate(0, 0, n.ExpiresInDays).Format(time.DateOnly),
	}
	f.Rumors = append(f.Rumors, r)
	return r, nil
}

// NextID returns "rumor_NNN", one past the highest numbered id in the file.
func NextID(f *model.RumorFile) string {
	highest := 0
	for _, r := range f.Rumors {
		n, err := strconv.Atoi(strings.TrimPrefix(r.ID, "rumor_"))
		if err != nil || !strings.HasPrefix(r.ID, "rumor_") {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("rumor_%03d", highest+1)
}

// SetField updates a single field of the rumor from its string form.
func SetField(r *model.Rumor, field, value string) error {
	field = strings.ToLower(strings.TrimSpace(field))
	value = strings.TrimSpace(value)
	switch field {
	case "player":
		if value == "" {
			return fmt.Errorf("%w: player cannot be empty", ErrInvalidField)
		}
		r.Player = value
	case "from":
		r.From = value
	case "to":
		r.To = value
	case "fee":
		r.Fee = value
	case "status":
		s, err := model.ParseRumorStatus(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		r.Status = s
	case "confidence":
		c, err := strconv.Atoi(value)
		if err != nil || c < 0 || c > 100 {
			return fmt.Errorf("%w: confidence must be a number between 0 and 100, got %s", ErrInvalidField, value)
		}
		r.Confidence = c
	case "source":
		r.Source = value
	case "date", "expires":
		if value != "" {
			if _, err := time.Parse(time.DateOnly, value); err != nil {
				return fmt.Errorf("%w: %s must be YYYY-MM-DD, got %s", ErrInvalidField, field, value)
			}
		}
		if field == "date" {
			r.Date = value
		} else {
			r.Expires = value
		}
	case "verified":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: verified must be true or false, got %s", ErrInvalidField, value)
		}
		r.Verified = v
	default:
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
	return nil
}

// RemoveExpired drops the rumors that expired on or before the day of now.
func RemoveExpired(f *model.RumorFile, now time.Time) int {
	before := len(f.Rumors)
	f.Rumors = slices.DeleteFunc(f.Rumors, func(r model.Rumor) bool {
		return r.Expired(now)
	})
	return before - len(f.Rumors)
}

// Merge appends candidates whose player and clubs are not tracked yet.
func Merge(f *model.RumorFile, candidates []model.Rumor) int {
	seen := make(map[string]bool, len(f.Rumors)+len(candidates))
	for _, r := range f.Rumors {
		seen[r.DedupeKey()] = true
	}

	added := 0
	for _, c := range candidates {
		k := c.DedupeKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		f.Rumors = append(f.Rumors, c)
		added++
	}
	return added
}

// SortByDate returns a copy of the rumors, newest first. Rumors from the same
// day keep their order.
func SortByDate(rumors []model.Rumor) []model.Rumor {
	result := slices.Clone(rumors)
	slices.SortStableFunc(result, func(a, b model.Rumor) int {
		return strings.Compare(b.Date, a.Date)
	})
	return result
}
