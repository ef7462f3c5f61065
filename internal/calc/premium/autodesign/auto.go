package autodesign

import (
	"math"

	coil "Coil/internal/calc/coil"
)

type LayoutAutoInput struct {
	coil.Input
	MaxStraights int `json:"max_straights"`
}

type LayoutAutoResult struct {
	StraightSegmentM float64     `json:"straight_segment_m"`
	Result           coil.Result `json:"result"`
	Notes            string      `json:"notes"`
}

// segmentStep is the cut-length resolution of straight tube sections.
const segmentStep = 0.1

// Layout picks the shortest straight segment, in 0.1 m steps, that fits the
// required length into at most MaxStraights passes. The segment length in
// the embedded input is ignored.
func Layout(in LayoutAutoInput) (LayoutAutoResult, error) {
	if in.MaxStraights < 1 {
		return LayoutAutoResult{}, &coil.FieldError{Field: "max_straights", Value: float64(in.MaxStraights), Reason: coil.ReasonNotPositive}
	}
	// Any positive segment gives the same length; only the layout depends on it.
	probe := in.Input
	probe.StraightSegmentM = coil.DefaultLimits.StraightSegment.Max
	res, err := coil.DefaultLimits.CalculateChecked(probe)
	if err != nil {
		return LayoutAutoResult{}, err
	}

	seg := math.Ceil(res.LengthM/float64(in.MaxStraights)/segmentStep) * segmentStep
	seg = math.Round(seg*10) / 10
	seg = math.Max(seg, coil.DefaultLimits.StraightSegment.Min)
	for int(math.Ceil(res.LengthM/seg)) > in.MaxStraights {
		seg = math.Round((seg+segmentStep)*10) / 10
	}

	probe.StraightSegmentM = seg
	res, err = coil.DefaultLimits.CalculateChecked(probe)
	if err != nil {
		return LayoutAutoResult{}, err
	}
	return LayoutAutoResult{
		StraightSegmentM: seg,
		Result:           res,
		Notes:            "Shortest straight segment that fits the coil into the allowed number of passes.",
	}, nil
}
