package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options controls how tabular files (XLSX, CSV) map to deck items.
// Document formats (YAML, JSON) carry their own structure and ignore them.
type Options struct {
	DeckID string // defaults to the file name without extension
	Title  string
	Owner  string

	Sheet        string // XLSX sheet; defaults to the first sheet
	IDColumn     string // column letter; empty derives IDs from row numbers
	PromptColumn string
	AnswerColumn string
	StartRow     int // 1-based first data row
}

// DefaultOptions reads A=id, B=prompt, C=answer and skips one header row.
func DefaultOptions() Options {
	return Options{
		IDColumn:     "A",
		PromptColumn: "B",
		AnswerColumn: "C",
		StartRow:     2,
	}
}

// RowError describes a spreadsheet row that could not be imported.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Load reads a deck from path, choosing the format by extension. Rows of
// tabular files that fail are skipped and reported in the returned
// RowErrors; the deck is still returned if any row succeeded.
func Load(path string, opts Options) (*Deck, []RowError, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		d       *Deck
		rowErrs []RowError
		err     error
	)
	switch ext {
	case ".yaml", ".yml":
		d, err = loadYAML(path)
	case ".json":
		d, err = loadJSON(path)
	case ".xlsx", ".xlsm":
		d, rowErrs, err = loadXLSX(path, opts)
	case ".csv":
		d, rowErrs, err = loadCSV(path, opts)
	default:
		return nil, nil, fmt.Errorf("deck: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, rowErrs, err
	}

	d.Source = path
	if err := d.Validate(); err != nil {
		return nil, rowErrs, err
	}
	return d, rowErrs, nil
}

func loadJSON(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return decodeDocument(raw)
}

func loadYAML(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	// Validation runs on the JSON form so YAML and JSON decks share a schema.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	return decodeDocument(asJSON)
}

func decodeDocument(raw []byte) (*Deck, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var d Deck
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	for i := range d.Items {
		d.Items[i].ID = strings.TrimSpace(d.Items[i].ID)
		d.Items[i].Answer = strings.TrimSpace(d.Items[i].Answer)
	}
	return &d, nil
}

// deckIDFromPath derives a deck ID from the file name.
func deckIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
