package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
)

const (
	jsDeclaration = "const PLAYER_DATA = "
	jsExport      = "if (typeof module !== 'undefined') {\n    module.exports = PLAYER_DATA;\n}\n"
)

var ErrNoPlayerData = errors.New("no PLAYER_DATA declaration found")

// WriteJS writes the data as a javascript constant. The object is plain JSON,
// so the file can also be read back with ReadJS.
func WriteJS(w io.Writer, data *model.PlayerData, header Header) error {
	body, err := marshal(data)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("// ScoutLens player data\n")
	fmt.Fprintf(&buf, "// Generated: %s\n", header.Generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&buf, "// Source: %s\n", data.DataSource)
	if header.Command != "" {
		fmt.Fprintf(&buf, "// Command: %s\n", header.Command)
	}
	buf.WriteString("\n")
	buf.WriteString(jsDeclaration)
	buf.Write(bytes.TrimRight(body, "\n"))
	buf.WriteString(";\n\n")
	buf.WriteString(jsExport)

	_, err = w.Write(buf.Bytes())
	return err
}

// ReadJS parses a file written by WriteJS.
func ReadJS(r io.Reader) (*model.PlayerData, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading player data: %w", err)
	}

	start := bytes.Index(content, []byte(jsDeclaration))
	if start < 0 {
		return nil, ErrNoPlayerData
	}
	content = content[start+len(jsDeclaration):]

	end := bytes.LastIndex(content, []byte("};"))
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated object", ErrNoPlayerData)
	}

	var data model.PlayerData
	if err := json.Unmarshal(content[:end+1], &data); err != nil {
		return nil, fmt.Errorf("error parsing player data: %w", err)
	}
	return &data, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("error encoding player data: %w", err)
	}
	return buf.Bytes(), nil
}
