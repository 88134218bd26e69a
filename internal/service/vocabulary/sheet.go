package vocabulary

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// Spreadsheet layout: one word per row on the first sheet.
const (
	colHeadword = iota
	colDefinitions
	colDescription
	colPartOfSpeech
)

const (
	definitionSeparator = ";"
	exportSheetName     = "Words"
)

var sheetHeader = []any{"headword", "definitions", "description", "part_of_speech"}

type sheetRow struct {
	Row          int
	Headword     string
	Definitions  []string
	Description  *string
	PartOfSpeech string
}

// readSheet reads word rows from the first sheet of an xlsx workbook. A
// leading header row is skipped, as are fully blank rows.
func readSheet(r io.Reader, maxRows int) ([]sheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "not a readable xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("file", "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var out []sheetRow
	for i, cells := range rows {
		if i == 0 && len(cells) > 0 && domain.NormalizeText(cells[colHeadword]) == "headword" {
			continue
		}
		if isBlankRow(cells) {
			continue
		}
		if len(out) == maxRows {
			return nil, domain.NewValidationError("file", fmt.Sprintf("too many rows (max %d)", maxRows))
		}

		row := sheetRow{
			Row:          i + 1,
			Headword:     strings.TrimSpace(cell(cells, colHeadword)),
			Definitions:  splitDefinitions(cell(cells, colDefinitions)),
			PartOfSpeech: strings.TrimSpace(cell(cells, colPartOfSpeech)),
		}
		if d := strings.TrimSpace(cell(cells, colDescription)); d != "" {
			row.Description = &d
		}
		out = append(out, row)
	}
	return out, nil
}

// writeSheet renders words in the layout readSheet accepts.
func writeSheet(w io.Writer, words []domain.Word) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &sheetHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, word := range words {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			word.Headword,
			strings.Join(word.Definitions, definitionSeparator+" "),
			"",
			"",
		}
		if word.Description != nil {
			values[colDescription] = *word.Description
		}
		if word.PartOfSpeech != nil {
			values[colPartOfSpeech] = word.PartOfSpeech.String()
		}
		if err := f.SetSheetRow(exportSheetName, cellName, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheetName, "A", "B", 30); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func splitDefinitions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, definitionSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
