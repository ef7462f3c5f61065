package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	coil "Coil/internal/calc/coil"

	"github.com/xuri/excelize/v2"
)

// Column order of an import sheet. The header row is skipped.
var Columns = []string{
	coil.FieldFlow,
	coil.FieldRetentionTime,
	coil.FieldDiameter,
	coil.FieldRoughness,
	coil.FieldDensity,
	coil.FieldViscosity,
	coil.FieldStraightSegment,
	coil.FieldElbowK,
	"include_inlet_outlet_loss",
}

const requiredColumns = 8

var ErrEmptySheet = errors.New("empty sheet")

type Row struct {
	Row   int        `json:"row"`
	Input coil.Input `json:"input"`
}

type Skipped struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParseSheet reads coil inputs from the first sheet of f. Rows that do not
// parse or fall outside coil.DefaultLimits are returned in skipped.
func ParseSheet(f *excelize.File) (rows []Row, skipped []Skipped, err error) {
	sheet := f.GetSheetName(0)
	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, ErrEmptySheet
	}
	for i := 1; i < len(all); i++ {
		line := i + 1
		if blank(all[i]) {
			continue
		}
		in, err := parseCoilRow(all[i])
		if err == nil {
			err = coil.DefaultLimits.Check(in)
		}
		if err != nil {
			skipped = append(skipped, Skipped{Row: line, Reason: err.Error()})
			continue
		}
		rows = append(rows, Row{Row: line, Input: in})
	}
	return rows, skipped, nil
}

func parseCoilRow(row []string) (coil.Input, error) {
	if len(row) < requiredColumns {
		return coil.Input{}, fmt.Errorf("expected %d columns, got %d", requiredColumns, len(row))
	}
	vals := make([]float64, requiredColumns)
	for i := 0; i < requiredColumns; i++ {
		v, err := toFloat(row[i])
		if err != nil {
			return coil.Input{}, fmt.Errorf("%s: %w", Columns[i], err)
		}
		vals[i] = v
	}
	inletOutlet := true
	if len(row) > requiredColumns && strings.TrimSpace(row[requiredColumns]) != "" {
		b, err := toBool(row[requiredColumns])
		if err != nil {
			return coil.Input{}, fmt.Errorf("%s: %w", Columns[requiredColumns], err)
		}
		inletOutlet = b
	}
	return coil.Input{
		FlowM3H:                vals[0],
		RetentionTimeS:         vals[1],
		DiameterMM:             vals[2],
		RoughnessMM:            vals[3],
		DensityKgM3:            vals[4],
		ViscosityMPaS:          vals[5],
		StraightSegmentM:       vals[6],
		ElbowKFactor:           vals[7],
		IncludeInletOutletLoss: inletOutlet,
	}, nil
}

// toFloat accepts both decimal point and decimal comma.
func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func toBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "да":
		return true, nil
	case "0", "false", "no", "n", "не":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
