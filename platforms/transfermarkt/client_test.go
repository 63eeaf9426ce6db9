package transfermarkt

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/RealRedbaron07/scoutlens-app/testutils"
)

func valued(p model.Player) model.Player {
	p.SetLeague(model.LEAGUE_EPL)
	p.ValueSource = model.ValueSourceTransfermarkt
	p.Source = "transfermarkt"
	return p
}

func TestLoadClubs(t *testing.T) {
	fake := testutils.NewFakeTransfermarktServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.NewMockClock())
	clubs, err := c.LoadClubs(context.Background(), model.LEAGUE_EPL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Club{
		{ID: "281", Name: "Manchester City"},
		{ID: "31", Name: "Liverpool FC"},
		{ID: "999", Name: "Missing FC"},
	}
	if !reflect.DeepEqual(expected, clubs) {
		t.Errorf("wanted: '%v', got: '%v'", expected, clubs)
	}
}

func TestLoadClubs_notFound(t *testing.T) {
	fake := testutils.NewFakeTransfermarktServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.NewMockClock())
	_, err := c.LoadClubs(context.Background(), model.LEAGUE_LALIGA)

	var se *fetch.StatusError
	if !errors.As(err, &se) || se.Code != 404 {
		t.Errorf("wanted: '404', got: '%v'", err)
	}
}

func TestLoadClubPlayers(t *testing.T) {
	fake := testutils.NewFakeTransfermarktServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.NewMockClock())
	players, err := c.LoadClubPlayers(context.Background(), model.LEAGUE_EPL, Club{ID: "281", Name: "Manchester City"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The academy player is worth less than a million and the keeper has no value.
	expected := []model.Player{
		valued(model.Player{Name: "Erling Haaland", Team: "Manchester City", Position: model.POS_FW, Age: 24, Nationality: "Norway", MarketValue: 200}),
		valued(model.Player{Name: "Phil Foden", Team: "Manchester City", Position: model.POS_FW, Age: 24, Nationality: "England", MarketValue: 150}),
		valued(model.Player{Name: "Kevin De Bruyne", Team: "Manchester City", Position: model.POS_MF, Age: 33, Nationality: "Belgium", MarketValue: 25}),
	}
	if !reflect.DeepEqual(expected, players) {
		t.Errorf("wanted: '%+v', got: '%+v'", expected, players)
	}
}

func TestLoadLeaguePlayers(t *testing.T) {
	fake := testutils.NewFakeTransfermarktServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.NewMockClock())
	players, err := c.LoadLeaguePlayers(context.Background(), model.LEAGUE_EPL, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Missing FC fails to load and is skipped.
	expected := []struct {
		name  string
		value float64
		age   int
	}{
		{name: "Erling Haaland", value: 200, age: 24},
		{name: "Phil Foden", value: 150, age: 24},
		{name: "Mohamed Salah", value: 55, age: 32},
		{name: "Virgil van Dijk", value: 28, age: 33},
		{name: "Kevin De Bruyne", value: 25, age: 33},
	}
	if len(players) != len(expected) {
		t.Fatalf("wanted: '%d' players, got: '%d'", len(expected), len(players))
	}
	for i, e := range expected {
		p := players[i]
		if p.Name != e.name || p.MarketValue != e.value || p.Age != e.age {
			t.Errorf("wanted: '%s %v %d', got: '%s %v %d'", e.name, e.value, e.age, p.Name, p.MarketValue, p.Age)
		}
	}
	if players[3].Nationality != "Netherlands" || players[3].Position != model.POS_DF {
		t.Errorf("unexpected player: %+v", players[3])
	}
}

func TestLoadLeaguePlayers_maxClubs(t *testing.T) {
	fake := testutils.NewFakeTransfermarktServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.NewMockClock())
	players, err := c.LoadLeaguePlayers(context.Background(), model.LEAGUE_EPL, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 3 {
		t.Errorf("wanted: '3' players, got: '%d'", len(players))
	}
	for _, p := range players {
		if p.Team != "Manchester City" {
			t.Errorf("wanted: 'Manchester City', got: '%s'", p.Team)
		}
	}
}

func TestLoadLeaguePlayers_notCovered(t *testing.T) {
	c := NewForTest("http://localhost:0", testutils.NewMockClock())
	if _, err := c.LoadLeaguePlayers(context.Background(), &model.League{Key: "Nowhere"}, 0); err == nil {
		t.Errorf("expected an error for a league without a transfermarkt id")
	}
}
