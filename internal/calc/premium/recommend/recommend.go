package recommend

import (
	coil "Coil/internal/calc/coil"
)

// Tube is a DIN 11850 series 2 hygienic tube size.
type Tube struct {
	DN         int     `json:"dn"`
	InnerDiaMM float64 `json:"inner_diameter_mm"`
}

var StandardTubes = []Tube{
	{10, 10}, {15, 16}, {20, 20}, {25, 26}, {32, 32},
	{40, 38}, {50, 50}, {65, 66}, {80, 81}, {100, 100},
}

type DiameterRecommendInput struct {
	coil.Input
	MaxDpKPa      float64 `json:"max_dp_kpa"`
	MinVelocityMS float64 `json:"min_velocity_m_s"`
}

type Candidate struct {
	Tube       Tube    `json:"tube"`
	Velocity   float64 `json:"velocity"`
	Re         float64 `json:"re"`
	DpTotalKPa float64 `json:"dp_total_kpa"`
	OK         bool    `json:"ok"`
}

type DiameterRecommendResult struct {
	Found      bool         `json:"found"`
	Tube       Tube         `json:"tube"`
	Result     *coil.Result `json:"result,omitempty"`
	Candidates []Candidate  `json:"candidates"`
	Notes      string       `json:"notes"`
}

// Diameter evaluates StandardTubes from smallest to largest and picks the
// first one whose total pressure drop stays within MaxDpKPa while the velocity
// is at least MinVelocityMS. The diameter in the embedded input is ignored.
func Diameter(in DiameterRecommendInput) (DiameterRecommendResult, error) {
	if in.MaxDpKPa <= 0 {
		return DiameterRecommendResult{}, &coil.FieldError{Field: "max_dp_kpa", Value: in.MaxDpKPa, Reason: coil.ReasonNotPositive}
	}
	out := DiameterRecommendResult{Candidates: make([]Candidate, 0, len(StandardTubes))}
	for _, tube := range StandardTubes {
		probe := in.Input
		probe.DiameterMM = tube.InnerDiaMM
		res, err := coil.DefaultLimits.CalculateChecked(probe)
		if err != nil {
			return DiameterRecommendResult{}, err
		}
		dpKPa := res.DpTotalPa / 1000.0
		ok := dpKPa <= in.MaxDpKPa && res.Velocity >= in.MinVelocityMS
		out.Candidates = append(out.Candidates, Candidate{
			Tube:       tube,
			Velocity:   res.Velocity,
			Re:         res.Re,
			DpTotalKPa: dpKPa,
			OK:         ok,
		})
		if ok && !out.Found {
			out.Found = true
			out.Tube = tube
			r := res
			out.Result = &r
		}
	}
	if out.Found {
		out.Notes = "Smallest DIN 11850 series 2 tube within the pressure-drop and velocity limits."
	}
	return out, nil
}
