// Package export renders home-cell member rosters to Excel and PDF. No file
// content is inspected upstream; handlers only stream the bytes.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/osoroyal/churchhub/models"
)

// RosterHeader is the column order for both export formats.
var RosterHeader = []string{
	"Member Code",
	"Full Name",
	"Phone",
	"Email",
	"Status",
}

// HomeCellExcel builds an .xlsx roster for one cell.
func HomeCellExcel(cell models.HomeCell, roster []models.Member) ([]byte, error) {
	f := excelize.NewFile()
	// don't defer Close before WriteTo; the file must stay open

	sheet := "Members"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// title rows: cell name + meeting schedule
	_ = f.SetCellValue(sheet, "A1", cell.Name)
	if cell.MeetingDay != "" {
		_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("%s %s @ %s", cell.MeetingDay, cell.MeetingTime, cell.MeetingLocation))
	}

	headerRow := 4
	for i, h := range RosterHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		ref := fmt.Sprintf("%s%d", col, headerRow)
		_ = f.SetCellValue(sheet, ref, h)
		_ = f.SetCellStyle(sheet, ref, ref, headerStyle)
	}

	for r, m := range roster {
		row := headerRow + 1 + r
		values := []any{m.MemberID, m.FullName, m.Phone, m.Email, m.MembershipStatus}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "E", 22)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
