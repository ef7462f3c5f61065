package coil

type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Bound) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Limits are the operator-facing input ranges. Calculate never applies them.
type Limits struct {
	Flow            Bound `json:"flow_m3_h"`
	RetentionTime   Bound `json:"retention_time_s"`
	Diameter        Bound `json:"diameter_mm"`
	Roughness       Bound `json:"roughness_mm"`
	Density         Bound `json:"density_kg_m3"`
	Viscosity       Bound `json:"viscosity_mpa_s"`
	StraightSegment Bound `json:"straight_segment_m"`
	ElbowK          Bound `json:"elbow_k_factor"`
}

var DefaultLimits = Limits{
	Flow:            Bound{0.01, 200},
	RetentionTime:   Bound{1, 3600},
	Diameter:        Bound{5, 300},
	Roughness:       Bound{0.0001, 1},
	Density:         Bound{800, 1300},
	Viscosity:       Bound{0.2, 500},
	StraightSegment: Bound{0.2, 20},
	ElbowK:          Bound{0.1, 2},
}

// Check returns a *FieldError for the first input outside its bound.
func (l Limits) Check(in Input) error {
	bounds := map[string]Bound{
		FieldFlow:            l.Flow,
		FieldRetentionTime:   l.RetentionTime,
		FieldDiameter:        l.Diameter,
		FieldRoughness:       l.Roughness,
		FieldDensity:         l.Density,
		FieldViscosity:       l.Viscosity,
		FieldStraightSegment: l.StraightSegment,
		FieldElbowK:          l.ElbowK,
	}
	for _, f := range in.fields() {
		b := bounds[f.name]
		if !b.contains(f.value) {
			return &FieldError{Field: f.name, Value: f.value, Reason: ReasonOutOfRange, Min: b.Min, Max: b.Max}
		}
	}
	return nil
}

// CalculateChecked applies l before calling Calculate.
func (l Limits) CalculateChecked(in Input) (Result, error) {
	if err := l.Check(in); err != nil {
		return Result{}, err
	}
	return Calculate(in)
}
