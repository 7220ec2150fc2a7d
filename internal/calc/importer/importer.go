package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"Helmholtz/internal/calc/helmholtz"
)

// Columns of an import sheet; the first row is a header and position is optional.
var inputHeader = []interface{}{"turns", "current_a", "radius_m", "position_m"}

var resultHeader = []interface{}{
	"turns", "current_a", "radius_m", "position_m",
	"field_a_per_m", "flux_density_mt", "flux_density_mg",
	"wire_length_m", "recommended_awg", "voltage_required_v",
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// SheetRow is a parsed input with its 1-based sheet row.
type SheetRow struct {
	Row   int
	Input helmholtz.Input
}

type ImportResult struct {
	Count   int                `json:"count"`
	Skipped []RowError         `json:"skipped,omitempty"`
	Results []helmholtz.Result `json:"results"`
}

// ReadInputs parses the first sheet of an XLSX workbook. Unparseable rows are
// reported in the returned RowErrors and left out of the inputs.
func ReadInputs(r io.Reader) ([]SheetRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, errors.Wrap(err, "read rows")
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("empty sheet")
	}

	var inputs []SheetRow
	var skipped []RowError
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		inputs = append(inputs, SheetRow{Row: i + 1, Input: in})
	}
	return inputs, skipped, nil
}

// Import reads a workbook and evaluates every valid row. Rows that fail the
// calculation are skipped like unparseable ones.
func Import(r io.Reader) (ImportResult, error) {
	inputs, skipped, err := ReadInputs(r)
	if err != nil {
		return ImportResult{}, err
	}
	out := ImportResult{Skipped: skipped, Results: []helmholtz.Result{}}
	for _, row := range inputs {
		res, err := helmholtz.Calculate(row.Input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: row.Row, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

// Export writes inputs and their results side by side.
func Export(w io.Writer, inputs []helmholtz.Input, results []helmholtz.Result) error {
	if len(inputs) != len(results) {
		return errors.Errorf("inputs and results differ in length: %d != %d", len(inputs), len(results))
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, in := range inputs {
		res := results[i]
		row := []interface{}{
			in.Turns, in.CurrentA, in.RadiusM, in.PositionM,
			res.FieldAPerM, res.FluxDensityMT, res.FluxDensityMG,
			res.WireLengthM, nil, nil,
		}
		if res.RecommendedAWG != nil {
			row[8] = *res.RecommendedAWG
		}
		if res.VoltageRequiredV != nil {
			row[9] = *res.VoltageRequiredV
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}
	return errors.Wrap(f.Write(w), "write workbook")
}

// Template writes an empty import sheet with the expected header.
func Template(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &inputHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	return errors.Wrap(f.Write(w), "write workbook")
}

func parseRow(row []string) (helmholtz.Input, error) {
	if len(row) < 3 {
		return helmholtz.Input{}, errors.New("expected turns, current_a, radius_m")
	}
	turns, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return helmholtz.Input{}, errors.Wrap(err, "turns")
	}
	current, err := toFloat(row[1])
	if err != nil {
		return helmholtz.Input{}, errors.Wrap(err, "current_a")
	}
	radius, err := toFloat(row[2])
	if err != nil {
		return helmholtz.Input{}, errors.Wrap(err, "radius_m")
	}
	position := 0.0
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		if position, err = toFloat(row[3]); err != nil {
			return helmholtz.Input{}, errors.Wrap(err, "position_m")
		}
	}
	return helmholtz.Input{Turns: turns, CurrentA: current, RadiusM: radius, PositionM: position}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
