package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

// document is the JSON export, the site document plus every player of the run.
type document struct {
	model.PlayerData
	Players []model.Player `json:"players"`
}

func WriteJSON(w io.Writer, data *model.PlayerData) error {
	body, err := marshal(document{PlayerData: *data, Players: data.Players})
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func ReadJSON(r io.Reader) (*model.PlayerData, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing player data: %w", err)
	}
	doc.PlayerData.Players = doc.Players
	return &doc.PlayerData, nil
}
