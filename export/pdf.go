package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/osoroyal/churchhub/models"
)

// HomeCellPDF builds a one-page-per-~40-rows roster PDF for one cell.
func HomeCellPDF(cell models.HomeCell, roster []models.Member) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cell.Name+" members", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, cell.Name, "", 1, "L", false, 0, "")

	if cell.MeetingDay != "" {
		pdf.SetFont("Helvetica", "", 10)
		schedule := fmt.Sprintf("%s %s @ %s", cell.MeetingDay, cell.MeetingTime, cell.MeetingLocation)
		pdf.CellFormat(0, 6, schedule, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{30, 60, 32, 48, 20}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 243, 255)
	for i, h := range RosterHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range roster {
		row := []string{m.MemberID, m.FullName, m.Phone, m.Email, m.MembershipStatus}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(4)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d member(s)", len(roster)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
