package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Results"

var columnWidths = []float64{28, 30, 45, 10, 28, 10, 10, 10, 8, 12, 8, 12, 12, 12, 14, 14, 16, 10}

// WriteXLSX writes rows as a single-sheet workbook for manual review. The
// header row is bold and frozen.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.cells()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// cells keeps numbers numeric so reviewers can sort and sum.
func (r Row) cells() []any {
	s := r.Strings()
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	out[3] = r.Seats
	out[5] = r.Votes
	out[6] = r.Percent
	out[7] = r.TotalVotes
	out[8] = 0
	if r.Elected {
		out[8] = 1
	}
	if r.TermYears > 0 {
		out[10] = r.TermYears
	}
	if r.ContactID != nil {
		out[17] = *r.ContactID
	}
	return out
}
