package deck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnIndexes resolves column letters to 0-based indexes; -1 for unset.
type columnIndexes struct {
	id, prompt, answer int
}

func resolveColumns(opts Options) (columnIndexes, error) {
	idx := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return 0, fmt.Errorf("deck: column %q: %w", name, err)
		}
		return n - 1, nil
	}

	var cols columnIndexes
	var err error
	if cols.id, err = idx(opts.IDColumn); err != nil {
		return cols, err
	}
	if cols.prompt, err = idx(opts.PromptColumn); err != nil {
		return cols, err
	}
	if cols.answer, err = idx(opts.AnswerColumn); err != nil {
		return cols, err
	}
	if cols.answer < 0 {
		return cols, errors.New("deck: answer column is required")
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// buildFromRows turns tabular rows into a deck. rows[0] is spreadsheet row 1.
func buildFromRows(path string, rows [][]string, opts Options) (*Deck, []RowError, error) {
	cols, err := resolveColumns(opts)
	if err != nil {
		return nil, nil, err
	}
	start := opts.StartRow
	if start < 1 {
		start = 1
	}

	d := &Deck{ID: opts.DeckID, Title: opts.Title, OwnerID: opts.Owner}
	if d.ID == "" {
		d.ID = deckIDFromPath(path)
	}

	var rowErrs []RowError
	seen := make(map[string]int)
	for i := start - 1; i < len(rows); i++ {
		rowNum := i + 1
		row := rows[i]
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		item := Item{
			ID:     cell(row, cols.id),
			Prompt: cell(row, cols.prompt),
			Answer: cell(row, cols.answer),
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("row-%d", rowNum)
		}
		if item.Answer == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Err: errors.New("missing answer")})
			continue
		}
		if first, dup := seen[item.ID]; dup {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Err: fmt.Errorf("duplicate id %q (first seen in row %d)", item.ID, first)})
			continue
		}
		seen[item.ID] = rowNum
		d.Items = append(d.Items, item)
	}

	if len(d.Items) == 0 {
		return nil, rowErrs, fmt.Errorf("%w: no importable rows in %s", ErrInvalidDeck, path)
	}
	return d, rowErrs, nil
}

func loadXLSX(path string, opts Options) (*Deck, []RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return buildFromRows(path, rows, opts)
}

func loadCSV(path string, opts Options) (*Deck, []RowError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return buildFromRows(path, rows, opts)
}

// WriteXLSX saves d as a spreadsheet in the DefaultOptions layout: a header
// row followed by one id, prompt, answer row per item.
func WriteXLSX(d *Deck, path string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if d.Title != "" {
		name := d.Title
		if len(name) > 31 {
			name = name[:31]
		}
		if err := f.SetSheetName(sheet, name); err == nil {
			sheet = name
		}
	}

	header := []any{"id", "prompt", "answer"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, item := range d.Items {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{item.ID, item.Prompt, item.Answer}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("write item %q: %w", item.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}
