package output

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

var testGenerated = time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

func testPlayers() []model.Player {
	return []model.Player{
		{
			ID: 1, Name: "Morgan Rogers", Team: "Aston Villa", League: "Premier League", Country: "England", Tier: 1,
			Position: model.POS_MF, Age: 22, Nationality: "England", FairValue: 48.6, MarketValue: 40,
			ValueSource: model.ValueSourceTransfermarkt, UndervaluationPct: 21.5, UndervaluationEUR: 8.6,
			XGIPer90: 0.56, XGPer90: 0.35, XAPer90: 0.21, GoalsPer90: 0.39, Overperformance: 0.4,
			Goals: 4, Assists: 3, XG: 3.6, XA: 2.15, Minutes: 920, Games: 11, TransferFeePaid: 9, Source: "fbref",
		},
		{
			ID: 2, Name: "Martin Ødegaard", Team: "Arsenal", League: "Premier League", Country: "England", Tier: 1,
			Position: model.POS_MF, Age: 25, Nationality: "Norway", FairValue: 31.2, MarketValue: 85,
			ValueSource: model.ValueSourceEstimated, UndervaluationPct: -63.3, UndervaluationEUR: -53.8,
			XGIPer90: 0.68, XGPer90: 0.23, XAPer90: 0.45, GoalsPer90: 0.19, Overperformance: -0.2,
			Goals: 1, Assists: 3, XG: 1.2, XA: 2.4, Minutes: 480, Games: 6, Source: "understat",
		},
	}
}

func testData() *model.PlayerData {
	players := testPlayers()
	return &model.PlayerData{
		LastUpdated:     testGenerated.Format(time.RFC3339),
		DataSource:      "fbref",
		Season:          model.Season,
		UpdateFrequency: "daily",
		TotalPlayers:    len(players),
		LeaguesCovered:  1,
		Undervalued:     players[:1],
		TopPerformers:   []model.Player{players[1], players[0]},
		RisingStars:     players[:1],
		HiddenGems:      []model.Player{},
		Bargains:        players[:1],
		Players:         players,
	}
}

func TestWriteJS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJS(&buf, testData(), Header{Generated: testGenerated, Command: "scoutlens fetch --source fbref"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := buf.String()
	for _, expected := range []string{
		"// ScoutLens player data\n",
		"// Generated: 2024-11-15T12:00:00Z\n",
		"// Source: fbref\n",
		"// Command: scoutlens fetch --source fbref\n",
		"const PLAYER_DATA = {\n",
		"    \"lastUpdated\": \"2024-11-15T12:00:00Z\",\n",
		"\"name\": \"Martin Ødegaard\"",
		"};\n",
		"module.exports = PLAYER_DATA;",
	} {
		if !strings.Contains(content, expected) {
			t.Errorf("expected the file to contain '%s', got:\n%s", expected, content)
		}
	}
	if strings.Contains(content, `"players"`) {
		t.Errorf("expected the js file to hold the categories only")
	}
}

func TestReadJS(t *testing.T) {
	data := testData()
	var buf bytes.Buffer
	if err := WriteJS(&buf, data, Header{Generated: testGenerated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadJS(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data.Players = nil
	if !reflect.DeepEqual(data, got) {
		t.Errorf("wanted: '%v', got: '%v'", data, got)
	}
}

func TestReadJS_invalid(t *testing.T) {
	tests := map[string]struct {
		content  string
		expected error
	}{
		"no declaration": {content: "var x = {};", expected: ErrNoPlayerData},
		"unterminated":   {content: "const PLAYER_DATA = {\"season\": \"2024-25\"", expected: ErrNoPlayerData},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJS(strings.NewReader(tc.content))
			if !errors.Is(err, tc.expected) {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, err)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data := testData()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"players": [`) {
		t.Errorf("expected every player in the json export")
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(data, got) {
		t.Errorf("wanted: '%v', got: '%v'", data, got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testPlayers()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected a header and 2 rows, got %d records", len(records))
	}
	if !slices.Equal(records[0], csvColumns) {
		t.Errorf("wanted: '%v', got: '%v'", csvColumns, records[0])
	}

	expected := []string{
		"1", "Morgan Rogers", "Aston Villa", "Premier League", "England", "1", "M", "22", "England",
		"920", "11", "4", "3", "0", "3.6", "2.15",
		"0.56", "0.35", "0.21", "0.39", "0.4",
		"40", "transfermarkt", "48.6",
		"21.5", "8.6", "9", "fbref",
	}
	if !slices.Equal(records[1], expected) {
		t.Errorf("wanted: '%v', got: '%v'", expected, records[1])
	}
	if records[2][1] != "Martin Ødegaard" || records[2][18] != "0.45" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileSQLite)
	data := testData()

	// Writing twice replaces the rows.
	for range 2 {
		if err := WriteSQLite(context.Background(), path, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("wanted: '2', got: '%d'", count)
	}

	var name string
	var fair float64
	if err := db.QueryRow("SELECT name, fair_value_eur_m FROM players WHERE id = 2").Scan(&name, &fair); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Martin Ødegaard" || fair != 31.2 {
		t.Errorf("unexpected row: %s %f", name, fair)
	}

	var source string
	var total int
	if err := db.QueryRow("SELECT data_source, total_players FROM run_info").Scan(&source, &total); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "fbref" || total != 2 {
		t.Errorf("unexpected run info: %s %d", source, total)
	}
}

func TestParseFormats(t *testing.T) {
	tests := map[string]struct {
		input    []string
		expected []Format
	}{
		"default":     {input: nil, expected: []Format{FormatJS}},
		"single":      {input: []string{"csv"}, expected: []Format{FormatCSV}},
		"comma list":  {input: []string{"json, CSV"}, expected: []Format{FormatJSON, FormatCSV}},
		"repeated":    {input: []string{"js", "sqlite", "js"}, expected: []Format{FormatJS, FormatSQLite}},
		"all":         {input: []string{"csv", "all"}, expected: []Format{FormatCSV, FormatJS, FormatJSON, FormatSQLite}},
		"blank parts": {input: []string{"js,,"}, expected: []Format{FormatJS}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormats(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(tc.expected, got) {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, got)
			}
		})
	}

	if _, err := ParseFormats([]string{"xml"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got: %v", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteAll(context.Background(), dir, []Format{FormatJS, FormatJSON, FormatCSV, FormatSQLite}, testData(), Header{Generated: testGenerated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		filepath.Join(dir, FileJS),
		filepath.Join(dir, FileJSON),
		filepath.Join(dir, FileCSV),
		filepath.Join(dir, FileSQLite),
	}
	if !slices.Equal(expected, paths) {
		t.Errorf("wanted: '%v', got: '%v'", expected, paths)
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("expected %s to be written, err: %v", p, err)
		}
	}
}
