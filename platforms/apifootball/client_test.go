package apifootball

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/testutils"
)

func TestLoadTopScorers_success(t *testing.T) {
	fake := testutils.NewFakeAPIFootballServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.FakeAPIKey, testutils.NewMockClock())
	players, err := c.LoadTopScorers(context.Background(), model.LEAGUE_EPL, "2024-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.Player{
		{Name: "E. Haaland", Team: "Manchester City", Position: model.POS_FW, Age: 24, Nationality: "Norway",
			Goals: 12, Assists: 1, Penalties: 2, XG: 10.2, XA: 0.9, Games: 11, Minutes: 990},
		{Name: "Mohamed Salah", Team: "Liverpool", Position: model.POS_FW, Age: 32, Nationality: "Egypt",
			Goals: 8, Assists: 6, Penalties: 1, XG: 6.8, XA: 5.4, Games: 11, Minutes: 900},
		// Missing values fall back to defaults.
		{Name: "M. Rogers", Team: "Aston Villa", Position: model.POS_MF, Age: model.DefaultAge, Nationality: "England",
			Goals: 4, Assists: 0, Penalties: 0, XG: 3.4, XA: 0, Games: 11, Minutes: 1},
	}
	for i := range expected {
		expected[i].SetLeague(model.LEAGUE_EPL)
		expected[i].Source = "api-football"
	}

	if !reflect.DeepEqual(expected, players) {
		t.Errorf("wanted: '%+v', got: '%+v'", expected, players)
	}
}

func TestLoadTopScorers_emptyResponse(t *testing.T) {
	fake := testutils.NewFakeAPIFootballServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.FakeAPIKey, testutils.NewMockClock())
	players, err := c.LoadTopScorers(context.Background(), model.LEAGUE_EPL, "2023-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("wanted: '0' players, got: '%d'", len(players))
	}
}

func TestLoadTopScorers_apiError(t *testing.T) {
	fake := testutils.NewFakeAPIFootballServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), "bad-key", testutils.NewMockClock())
	_, err := c.LoadTopScorers(context.Background(), model.LEAGUE_EPL, "2024-25")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "token: Error/Missing application key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_missingKey(t *testing.T) {
	_, err := New("", testutils.NewMockClock())
	if !errors.Is(err, platforms.ErrMissingAPIKey) {
		t.Errorf("wanted: '%v', got: '%v'", platforms.ErrMissingAPIKey, err)
	}
}
