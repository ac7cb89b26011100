package employee

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Employees"

var rosterHeader = []string{"Name", "Position", "Hourly Wage", "Payment", "Branch"}

// RosterRow is an employee as printed on the listing exports. Bank details
// never leave the store through an export.
type RosterRow struct {
	Name          string
	Position      string
	HourlyWage    string
	PaymentMethod string
	Branch        string
}

func Roster(employees []Employee) []RosterRow {
	rows := make([]RosterRow, 0, len(employees))
	for _, emp := range employees {
		wage := emp.HourlyWage
		if parsed, err := ParseWage(emp.HourlyWage); err == nil {
			wage = parsed.StringFixed(2)
		}
		rows = append(rows, RosterRow{
			Name:          emp.Name,
			Position:      emp.Position,
			HourlyWage:    wage,
			PaymentMethod: string(emp.PaymentMethod),
			Branch:        titleCase(string(emp.Branch)),
		})
	}
	return rows
}

func WriteRosterPDF(w io.Writer, employees []Employee) error {
	widths := []float64{55, 45, 30, 25, 25}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Roster")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	for i, title := range rosterHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range Roster(employees) {
		cells := []string{row.Name, row.Position, row.HourlyWage, row.PaymentMethod, row.Branch}
		for i, value := range cells {
			align := "L"
			if i == 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%d employees", len(employees)))

	return pdf.Output(w)
}

func WriteRosterXLSX(w io.Writer, employees []Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return err
	}
	header := make([]any, len(rosterHeader))
	for i, title := range rosterHeader {
		header[i] = title
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range Roster(employees) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Name, row.Position, row.HourlyWage, row.PaymentMethod, row.Branch}
		if err := f.SetSheetRow(rosterSheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
