package application

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"agile-assistant/backend/internal/features/generation/domain"
)

func TestToTableCanonicalOrder(t *testing.T) {
	tbl := ToTable(domain.ResultSet{
		domain.KindTask:      "t",
		domain.KindEpic:      "e",
		domain.KindUserStory: "u",
		domain.KindFeature:   "f",
	})
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "Tipo" {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	want := []domain.ArtifactKind{domain.KindEpic, domain.KindFeature, domain.KindUserStory, domain.KindTask}
	if len(tbl.Rows) != len(want) {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	for i, k := range want {
		if tbl.Rows[i].Kind != k {
			t.Fatalf("row %d = %s, want %s", i, tbl.Rows[i].Kind, k)
		}
	}
}

func TestSpreadsheetRoundTrip(t *testing.T) {
	in := ToTable(domain.ResultSet{
		domain.KindEpic:      "Épico: Plataforma de pagamentos",
		domain.KindFeature:   "Feature: Pix & cartão",
		domain.KindUserStory: "Como cliente, quero pagar com Pix\npara concluir a compra",
		domain.KindTask:      "Task: integrar gateway",
	})

	data, err := ToSpreadsheetBytes(in)
	if err != nil {
		t.Fatalf("ToSpreadsheetBytes: %v", err)
	}
	if len(data) < 4 || string(data[:2]) != "PK" {
		t.Fatalf("output is not a zip container")
	}

	out, err := ReadSpreadsheet(data)
	if err != nil {
		t.Fatalf("ReadSpreadsheet: %v", err)
	}
	if len(out.Columns) != 2 || out.Columns[0] != "Tipo" || out.Columns[1] != "Conteúdo" {
		t.Fatalf("columns = %v", out.Columns)
	}
	if len(out.Rows) != 4 {
		t.Fatalf("rows = %d", len(out.Rows))
	}
	for i := range in.Rows {
		if out.Rows[i] != in.Rows[i] {
			t.Fatalf("row %d = %+v, want %+v", i, out.Rows[i], in.Rows[i])
		}
	}
}

func TestSpreadsheetKeepsOversizedText(t *testing.T) {
	long := strings.Repeat("Tarefa detalhada ção ", 1820)
	if utf8.RuneCountInString(long) <= excelize.TotalCellChars {
		t.Fatalf("fixture too short: %d", utf8.RuneCountInString(long))
	}
	in := ToTable(domain.ResultSet{
		domain.KindEpic: "e",
		domain.KindTask: long,
	})

	data, err := ToSpreadsheetBytes(in)
	if err != nil {
		t.Fatalf("ToSpreadsheetBytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	raw, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header, EPIC, TASK, TASK (2)
	if len(raw) != 4 || raw[3][0] != "TASK (2)" {
		t.Fatalf("raw rows = %d, last label = %q", len(raw), raw[len(raw)-1][0])
	}
	for i, r := range raw {
		if n := utf8.RuneCountInString(r[1]); n > excelize.TotalCellChars {
			t.Fatalf("row %d has %d chars", i, n)
		}
	}

	out, err := ReadSpreadsheet(data)
	if err != nil {
		t.Fatalf("ReadSpreadsheet: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(out.Rows))
	}
	if out.Rows[1].Kind != domain.KindTask || out.Rows[1].Text != long {
		t.Fatalf("task text: got %d chars, want %d", utf8.RuneCountInString(out.Rows[1].Text), utf8.RuneCountInString(long))
	}
}

func TestExportRequiresResults(t *testing.T) {
	if _, _, err := Export(nil); !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
	data, tbl, err := Export(domain.ResultSet{domain.KindEpic: "e"})
	if err != nil || len(data) == 0 || len(tbl.Rows) != 1 {
		t.Fatalf("Export: rows=%d err=%v", len(tbl.Rows), err)
	}
}
