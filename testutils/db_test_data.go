package testutils

import (
	"context"
	"log"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/containers"
	"github.com/RealRedbaron07/scoutlens-app/db"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/itbasis/go-clock"
)

var (
	ColePalmer = model.Player{
		Name:              "Cole Palmer",
		Team:              "Chelsea",
		Position:          model.POS_MF,
		Age:               22,
		Nationality:       "England",
		FairValue:         88.1,
		MarketValue:       110,
		UndervaluationPct: -19.9,
		XGIPer90:          0.93,
	}
	BukayoSaka = model.Player{
		Name:              "Bukayo Saka",
		Team:              "Arsenal",
		Position:          model.POS_FW,
		Age:               23,
		Nationality:       "England",
		FairValue:         92.4,
		MarketValue:       140,
		UndervaluationPct: -34,
		XGIPer90:          0.81,
	}
	AlexanderIsak = model.Player{
		Name:              "Alexander Isak",
		Team:              "Newcastle United",
		Position:          model.POS_FW,
		Age:               25,
		Nationality:       "Sweden",
		FairValue:         78.5,
		MarketValue:       75,
		UndervaluationPct: 4.7,
		XGIPer90:          0.74,
	}
)

// TestRunPlayers are the players of the run InsertTestRun saves.
func TestRunPlayers() []model.Player {
	players := []model.Player{ColePalmer, BukayoSaka, AlexanderIsak}
	for i := range players {
		players[i].ID = i + 1
		players[i].SetLeague(model.LEAGUE_EPL)
	}
	return players
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := NewMockClock()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestRun(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	db.container.Shutdown()
}

func InsertTestRun(db db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	players := TestRunPlayers()
	run := &model.Run{Source: "understat", Season: model.Season, TotalPlayers: len(players)}
	return db.SaveRun(ctx, run, players)
}
