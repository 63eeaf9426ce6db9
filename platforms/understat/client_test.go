package understat

import (
	"context"
	"errors"
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/RealRedbaron07/scoutlens-app/testutils"
)

func TestLoadLeaguePlayers(t *testing.T) {
	fake := testutils.NewFakeUnderstatServer()
	defer fake.Close()

	c := NewForTest(fake.URL())
	players, err := c.LoadLeaguePlayers(context.Background(), model.LEAGUE_EPL, "2024-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.Player{
		{Name: "Erling Haaland", Team: "Manchester City", Position: model.POS_FW, Age: model.DefaultAge,
			Goals: 12, Assists: 1, Penalties: 2, XG: 10.412345, XA: 1.083, Games: 11, Minutes: 990},
		{Name: "Mohamed Salah", Team: "Liverpool", Position: model.POS_FW, Age: model.DefaultAge,
			Goals: 8, Assists: 6, Penalties: 1, XG: 6.9, XA: 4.3, Games: 11, Minutes: 945},
		{Name: "Dominik Szoboszlai", Team: "Liverpool", Position: model.POS_MF, Age: model.DefaultAge,
			Goals: 1, Assists: 1, XG: 0.8, XA: 0.9, Games: 9, Minutes: 400},
		{Name: "Martin Ødegaard", Team: "Arsenal", Position: model.POS_MF, Age: model.DefaultAge,
			Goals: 1, Assists: 3, XG: 1.2, XA: 2.4, Games: 6, Minutes: 480},
		{Name: "David Raya", Team: "Arsenal", Position: model.POS_GK, Age: model.DefaultAge,
			Games: 11, Minutes: 990},
	}
	for i := range expected {
		expected[i].SetLeague(model.LEAGUE_EPL)
		expected[i].Source = "understat"
	}

	if len(players) != len(expected) {
		t.Fatalf("wanted: '%d' players, got: '%d'", len(expected), len(players))
	}
	for i := range expected {
		if expected[i] != players[i] {
			t.Errorf("wanted: '%+v', got: '%+v'", expected[i], players[i])
		}
	}
}

func TestLoadLeaguePlayers_errors(t *testing.T) {
	fake := testutils.NewFakeUnderstatServer()
	defer fake.Close()
	c := NewForTest(fake.URL())

	_, err := c.LoadLeaguePlayers(context.Background(), model.LEAGUE_LIGUE1, "2024-25")
	if !errors.Is(err, ErrNoPlayerData) {
		t.Errorf("wanted: '%v', got: '%v'", ErrNoPlayerData, err)
	}

	_, err = c.LoadLeaguePlayers(context.Background(), model.LEAGUE_LALIGA, "2024-25")
	var se *fetch.StatusError
	if !errors.As(err, &se) || se.Code != 404 {
		t.Errorf("wanted: '404', got: '%v'", err)
	}

	if _, err := c.LoadLeaguePlayers(context.Background(), model.LEAGUE_EREDIVISIE, "2024-25"); err == nil {
		t.Errorf("expected an error for a league understat does not cover")
	}
}

func TestLoadLeagues_skipsFailures(t *testing.T) {
	fake := testutils.NewFakeUnderstatServer()
	defer fake.Close()
	c := NewForTest(fake.URL())

	leagues := []*model.League{model.LEAGUE_EPL, model.LEAGUE_LALIGA, model.LEAGUE_LIGUE1, model.LEAGUE_EREDIVISIE}
	players, err := c.LoadLeagues(context.Background(), leagues, "2024-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 5 {
		t.Errorf("wanted: '5' players, got: '%d'", len(players))
	}
	for _, p := range players {
		if p.League != model.LEAGUE_EPL.Name {
			t.Errorf("wanted: '%s', got: '%s'", model.LEAGUE_EPL.Name, p.League)
		}
	}
}

func TestLoadLeagues_cancelled(t *testing.T) {
	c := NewForTest("http://localhost:0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.LoadLeagues(ctx, []*model.League{model.LEAGUE_EPL}, "2024-25"); !errors.Is(err, context.Canceled) {
		t.Errorf("wanted: '%v', got: '%v'", context.Canceled, err)
	}
}

func TestUnescape(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"hex":          {input: `\x5B\x7B\x22id\x22\x3A\x221\x22\x7D\x5D`, expected: `[{"id":"1"}]`},
		"unicode":      {input: `Mart\u00edn`, expected: "Martín"},
		"quote":        {input: `O\'Brien`, expected: "O'Brien"},
		"backslash":    {input: `a\\b`, expected: `a\b`},
		"utf8 passes":  {input: "Ødegaard", expected: "Ødegaard"},
		"short hex":    {input: `\x4`, expected: `\x4`},
		"trailing":     {input: `abc\`, expected: `abc\`},
		"newline":      {input: `a\nb`, expected: "a\nb"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := unescape(tc.input); got != tc.expected {
				t.Errorf("wanted: '%s', got: '%s'", tc.expected, got)
			}
		})
	}
}
