package importer

import (
	"fmt"

	coil "Coil/internal/calc/coil"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Coil"

var resultColumns = []string{
	"flow_m3_s", "velocity", "required_volume_m3", "length_m",
	"n_straights", "n_uturns", "elbows_90", "re", "regime", "f", "k_total",
	"dp_distributed_kpa", "dp_local_kpa", "dp_total_kpa",
}

// Export writes inputs and their results side by side, one row per item.
// The input columns match Columns so the sheet can be imported again.
func Export(items []coil.Input, results []coil.Result) (*excelize.File, error) {
	if len(items) != len(results) {
		return nil, fmt.Errorf("%d inputs but %d results", len(items), len(results))
	}
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, 0, len(Columns)+len(resultColumns))
	for _, c := range Columns {
		header = append(header, c)
	}
	for _, c := range resultColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, in := range items {
		res := results[i]
		row := []any{
			in.FlowM3H, in.RetentionTimeS, in.DiameterMM, in.RoughnessMM,
			in.DensityKgM3, in.ViscosityMPaS, in.StraightSegmentM, in.ElbowKFactor,
			in.IncludeInletOutletLoss,
			res.FlowM3S, res.Velocity, res.RequiredVolumeM3, res.LengthM,
			res.NStraights, res.NUturns, res.Elbows90, res.Re, string(res.Regime), res.F, res.KTotal,
			res.DpDistributedPa / 1000.0, res.DpLocalPa / 1000.0, res.DpTotalPa / 1000.0,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
