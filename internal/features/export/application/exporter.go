package application

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"agile-assistant/backend/internal/features/generation/domain"
)

const (
	// SheetName is the single worksheet of the export.
	SheetName = "Artefatos"
	// FileName is the download name offered to the browser.
	FileName = "artefatos.xlsx"
	// ContentType is the xlsx MIME type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Columns are the header cells of the export table.
var Columns = []string{"Tipo", "Conteúdo"}

// ErrNoResults is returned when there is nothing to export.
var ErrNoResults = errors.New("no generated artifacts to export")

// Row is one artifact in the export table.
type Row struct {
	Kind domain.ArtifactKind `json:"kind"`
	Text string              `json:"text"`
}

// Table is the tabular form of a result set.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ToTable lays the result set out one row per artifact kind, in generation order.
// Kinds missing from results are skipped.
func ToTable(results domain.ResultSet) Table {
	t := Table{Columns: append([]string(nil), Columns...)}
	for _, kind := range domain.Kinds() {
		text, ok := results[kind]
		if !ok {
			continue
		}
		t.Rows = append(t.Rows, Row{Kind: kind, Text: text})
	}
	return t
}

// ToSpreadsheetBytes writes t as a single-sheet xlsx workbook.
func ToSpreadsheetBytes(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	line := 2
	for _, r := range t.Rows {
		for part, chunk := range splitCellText(r.Text) {
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return nil, err
			}
			label := r.Kind.Label()
			if part > 0 {
				label = fmt.Sprintf("%s (%d)", label, part+1)
			}
			row := []interface{}{label, chunk}
			if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
				return nil, fmt.Errorf("write %s row %d: %w", r.Kind, part+1, err)
			}
			line++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadSpreadsheet parses a workbook produced by ToSpreadsheetBytes.
func ReadSpreadsheet(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Table{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("workbook has no header row")
	}
	t := Table{Columns: rows[0]}
	for _, cells := range rows[1:] {
		var label, text string
		if len(cells) > 0 {
			label = cells[0]
		}
		if len(cells) > 1 {
			text = cells[1]
		}
		if m := continuationLabel.FindStringSubmatch(label); m != nil && len(t.Rows) > 0 {
			last := &t.Rows[len(t.Rows)-1]
			if last.Kind.Label() == m[1] {
				last.Text += text
				continue
			}
		}
		t.Rows = append(t.Rows, Row{Kind: domain.ArtifactKind(strings.ToLower(label)), Text: text})
	}
	return t, nil
}

// continuationLabel matches the "TASK (2)" labels written for overflow rows.
var continuationLabel = regexp.MustCompile(`^(.+) \((\d+)\)$`)

// splitCellText cuts text into chunks that fit in one xlsx cell. excelize
// silently truncates anything longer than TotalCellChars runes.
func splitCellText(text string) []string {
	runes := []rune(text)
	if len(runes) <= excelize.TotalCellChars {
		return []string{text}
	}
	var chunks []string
	for len(runes) > 0 {
		n := excelize.TotalCellChars
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

// Export converts results straight to workbook bytes.
func Export(results domain.ResultSet) ([]byte, Table, error) {
	if len(results) == 0 {
		return nil, Table{}, ErrNoResults
	}
	t := ToTable(results)
	b, err := ToSpreadsheetBytes(t)
	if err != nil {
		return nil, Table{}, err
	}
	return b, t, nil
}
