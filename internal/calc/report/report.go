package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"Helmholtz/internal/calc/helmholtz"
)

// Input describes a report. Coil is evaluated as a summary; Custom, when set, is evaluated too.
type Input struct {
	Project string                 `json:"project"`
	Author  string                 `json:"author"`
	Title   string                 `json:"title"`
	Notes   string                 `json:"notes"`
	Coil    helmholtz.Input        `json:"coil"`
	Custom  *helmholtz.CustomInput `json:"custom,omitempty"`
}

// Write renders a one page PDF with the coil parameters and results.
func Write(w io.Writer, in Input, now time.Time) error {
	summary, err := helmholtz.Calculate(in.Coil)
	if err != nil {
		return err
	}
	var custom *helmholtz.Result
	if in.Custom != nil {
		res, err := helmholtz.CalculateCustom(*in.Custom)
		if err != nil {
			return err
		}
		custom = &res
	}
	if in.Title == "" {
		in.Title = "Helmholtz Coil Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Coil Parameters", [][2]string{
		{"Turns per coil", strconv.Itoa(in.Coil.Turns)},
		{"Current per coil (A)", formatValue(in.Coil.CurrentA)},
		{"Coil radius (m)", formatValue(in.Coil.RadiusM)},
		{"Coil spacing (m)", formatValue(in.Coil.RadiusM)},
	})
	section(pdf, "Standard Results", entryRows(summary))
	if custom != nil {
		section(pdf, fmt.Sprintf("Custom Results (AWG %d)", in.Custom.AWG), entryRows(*custom))
	}
	if summary.Notes != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, summary.Notes, "", "L", false)
		pdf.Ln(2)
	}
	if in.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "render pdf")
	}
	return errors.Wrap(pdf.Output(w), "write pdf")
}

func section(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(110, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func entryRows(res helmholtz.Result) [][2]string {
	entries := res.Entries()
	rows := make([][2]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, [2]string{e.Label, formatValue(e.Value)})
	}
	return rows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
