package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names written by JSONWriter.
const (
	IndexFile         = "index.json"
	PlayersFile       = "players-full.json"
	PlayersPrettyFile = "players-full-pretty.json"
	ManifestFile      = "manifest.json"
)

// WrittenFile records one file produced by an export.
type WrittenFile struct {
	Path string
	Size int64
}

type jsonFile struct {
	name   string
	value  interface{}
	indent bool
}

// JSONWriter writes the static site data files into Dir.
type JSONWriter struct {
	Dir    string
	Pretty bool // Also write the indented debugging copy of the players file

	Written []WrittenFile
}

// NewJSONWriter creates a writer for dir.
func NewJSONWriter(dir string, pretty bool) *JSONWriter {
	return &JSONWriter{Dir: dir, Pretty: pretty}
}

func (w *JSONWriter) Name() string { return "json:" + w.Dir }

// Write creates Dir if needed and writes the index, full player data and
// manifest. The index and players files are compact.
func (w *JSONWriter) Write(ctx context.Context, b *Bundle) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []jsonFile{
		{IndexFile, b.Index, false},
		{PlayersFile, b.Players, false},
		{ManifestFile, b.Manifest, true},
	}
	if w.Pretty {
		files = append(files, jsonFile{PlayersPrettyFile, b.Players, true})
	}

	w.Written = w.Written[:0]
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(w.Dir, f.name)
		size, err := writeJSON(path, f.value, f.indent)
		if err != nil {
			return err
		}
		w.Written = append(w.Written, WrittenFile{Path: path, Size: size})
	}

	return nil
}

func writeJSON(path string, v interface{}, indent bool) (int64, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	data := bytes.TrimRight(buf.Bytes(), "\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return int64(len(data)), nil
}

// ReadIndex loads an index file written by JSONWriter.
func ReadIndex(path string) ([]IndexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	var index []IndexEntry
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	return index, nil
}

// ReadPlayers loads a players file written by JSONWriter.
func ReadPlayers(path string) ([]Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	var players []Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// VerifyDir reads back the index and players files in dir and checks that
// every index entry resolves to exactly one player with the same team,
// position and grade. It returns the number of verified players.
func VerifyDir(dir string) (int, error) {
	index, err := ReadIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return 0, err
	}
	players, err := ReadPlayers(filepath.Join(dir, PlayersFile))
	if err != nil {
		return 0, err
	}
	if len(index) != len(players) {
		return 0, fmt.Errorf("index has %d entries for %d players", len(index), len(players))
	}

	bySlug := make(map[string]Player, len(players))
	for _, p := range players {
		if _, dup := bySlug[p.Slug]; dup {
			return 0, fmt.Errorf("duplicate slug %q in %s", p.Slug, PlayersFile)
		}
		bySlug[p.Slug] = p
	}
	for _, e := range index {
		p, ok := bySlug[e.Slug]
		if !ok {
			return 0, fmt.Errorf("index slug %q has no player record", e.Slug)
		}
		if p.Team != e.Team || p.Position != e.Position || p.OverallGrade != e.Grade {
			return 0, fmt.Errorf("index entry %q disagrees with its player record", e.Slug)
		}
	}
	return len(players), nil
}
