// Package output writes the player data in the formats the site and analysts use.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

type Format string

const (
	FormatJS     Format = "js"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"

	FileJS     = "player_data.js"
	FileJSON   = "players.json"
	FileCSV    = "players.csv"
	FileSQLite = "players.sqlite"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")

	allFormats = []Format{FormatJS, FormatJSON, FormatCSV, FormatSQLite}
)

// ParseFormats accepts format names and "all". An empty list means js only.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return []Format{FormatJS}, nil
	}

	result := make([]Format, 0, len(allFormats))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			var formats []Format
			if part == "all" {
				formats = allFormats
			} else if f := Format(part); slices.Contains(allFormats, f) {
				formats = []Format{f}
			} else {
				return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, part)
			}
			for _, f := range formats {
				if !slices.Contains(result, f) {
					result = append(result, f)
				}
			}
		}
	}
	return result, nil
}

// Header is written as comments at the top of player_data.js.
type Header struct {
	Generated time.Time
	Command   string
}

func FileName(f Format) string {
	switch f {
	case FormatJS:
		return FileJS
	case FormatJSON:
		return FileJSON
	case FormatCSV:
		return FileCSV
	case FormatSQLite:
		return FileSQLite
	default:
		return ""
	}
}

// WriteAll writes every requested format into dir and returns the paths written.
func WriteAll(ctx context.Context, dir string, formats []Format, data *model.PlayerData, header Header) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, FileName(f))
		var err error
		switch f {
		case FormatJS:
			err = writeFile(path, func(file *os.File) error { return WriteJS(file, data, header) })
		case FormatJSON:
			err = writeFile(path, func(file *os.File) error { return WriteJSON(file, data) })
		case FormatCSV:
			err = writeFile(path, func(file *os.File) error { return WriteCSV(file, data.Players) })
		case FormatSQLite:
			err = WriteSQLite(ctx, path, data)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownFormat, f)
		}
		if err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
