package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed"
	"github.com/RealRedbaron07/scoutlens-app/rumors"
	"github.com/RealRedbaron07/scoutlens-app/testutils"
)

func TestFetchRumors(t *testing.T) {
	tc := testutils.NewTestController(nil)
	defer tc.Close()
	c := newTestController(t, tc, testSources(tc), nil)
	c.cfg.Feeds = append(c.cfg.Feeds,
		newsfeed.Feed{Name: "Broken", URL: tc.News.URL() + "/broken.xml"},
		newsfeed.Feed{Name: "Missing", URL: tc.News.FeedURL("missing.xml")},
	)

	ctx := context.Background()
	added, err := c.FetchRumors(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The league table story is not about a transfer.
	if added != 3 {
		t.Errorf("wanted: '3', got: '%d'", added)
	}

	list, err := c.ListRumors(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	players := make(map[string]bool)
	for _, r := range list {
		players[r.Player] = true
	}
	for _, p := range []string{"Florian Wirtz", "Viktor Gyokeres", "Jonathan David"} {
		if !players[p] {
			t.Errorf("expected a rumor about %s, got: '%v'", p, list)
		}
	}

	// Everything is tracked already.
	added, err = c.FetchRumors(ctx)
	if err != nil || added != 0 {
		t.Errorf("wanted: '0', got: '%d' (%v)", added, err)
	}
}

func TestFetchRumors_noClient(t *testing.T) {
	tc := testutils.NewTestController(nil)
	defer tc.Close()
	c := newTestController(t, tc, Sources{}, nil)

	if _, err := c.FetchRumors(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("wanted: '%v', got: '%v'", ErrSourceUnavailable, err)
	}
}

func TestRumorOperations(t *testing.T) {
	tc := testutils.NewTestController(nil)
	defer tc.Close()
	c := newTestController(t, tc, Sources{}, nil)
	ctx := context.Background()

	r, err := c.AddRumor(ctx, rumors.NewRumor{Player: "Alphonso Davies", From: "Bayern Munich", To: "Real Madrid", Fee: "Free", Status: model.RUMOR_HOT, ExpiresInDays: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Confidence != model.RUMOR_HOT.DefaultConfidence() || r.Expires != "2024-11-25" {
		t.Errorf("unexpected rumor: %+v", r)
	}

	r, err = c.UpdateRumor(ctx, r.ID, "status=cold", "confidence=20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != model.RUMOR_COLD || r.Confidence != 20 {
		t.Errorf("unexpected rumor: %+v", r)
	}

	if _, err := c.UpdateRumor(ctx, "999", "status=hot"); !errors.Is(err, model.ErrRumorNotFound) {
		t.Errorf("wanted: '%v', got: '%v'", model.ErrRumorNotFound, err)
	}

	// The rumor expires 10 days from now.
	tc.Clock.Add(11 * 24 * time.Hour)
	active, err := c.ActiveRumors(ctx)
	if err != nil || len(active) != 0 {
		t.Errorf("wanted: '0' active rumors, got: '%v' (%v)", active, err)
	}

	removed, err := c.CleanRumors(ctx)
	if err != nil || removed != 1 {
		t.Errorf("wanted: '1', got: '%d' (%v)", removed, err)
	}
	list, err := c.ListRumors(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("wanted: '0' rumors, got: '%v' (%v)", list, err)
	}
}
