package coil

import (
	"fmt"
	"math"
)

type Input struct {
	FlowM3H                float64 `json:"flow_m3_h"`
	RetentionTimeS         float64 `json:"retention_time_s"`
	DiameterMM             float64 `json:"diameter_mm"`
	RoughnessMM            float64 `json:"roughness_mm"`
	DensityKgM3            float64 `json:"density_kg_m3"`
	ViscosityMPaS          float64 `json:"viscosity_mpa_s"`
	StraightSegmentM       float64 `json:"straight_segment_m"`
	ElbowKFactor           float64 `json:"elbow_k_factor"`
	IncludeInletOutletLoss bool    `json:"include_inlet_outlet_loss"`
}

type Result struct {
	FlowM3S          float64 `json:"flow_m3_s"`
	AreaM2           float64 `json:"area_m2"`
	Velocity         float64 `json:"velocity"`
	RequiredVolumeM3 float64 `json:"required_volume_m3"`
	LengthM          float64 `json:"length_m"`
	NStraights       int     `json:"n_straights"`
	NUturns          int     `json:"n_uturns"`
	Elbows90         int     `json:"elbows_90"`
	Re               float64 `json:"re"`
	Regime           Regime  `json:"regime"`
	F                float64 `json:"f"`
	KTotal           float64 `json:"k_total"`
	DpDistributedPa  float64 `json:"dp_distributed_pa"`
	DpLocalPa        float64 `json:"dp_local_pa"`
	DpTotalPa        float64 `json:"dp_total_pa"`
}

// InletOutletK is the combined local-loss coefficient of the coil inlet and outlet.
const InletOutletK = 1.5

// Calculate sizes a serpentine retention coil for one steady-state operating point.
func Calculate(in Input) (Result, error) {
	if err := in.guard(); err != nil {
		return Result{}, err
	}

	qM3S := in.FlowM3H / 3600.0
	diameterM := in.DiameterMM / 1000.0
	roughnessM := in.RoughnessMM / 1000.0
	muPaS := in.ViscosityMPaS / 1000.0

	if muPaS == 0 {
		return Result{}, &FieldError{Field: FieldViscosity, Value: in.ViscosityMPaS, Reason: ReasonNotPositive}
	}

	area := math.Pi * diameterM * diameterM / 4.0
	if area == 0 {
		return Result{}, &FieldError{Field: FieldDiameter, Value: in.DiameterMM, Reason: ReasonNotPositive}
	}
	velocity := qM3S / area
	if err := finite(FieldVelocity, velocity); err != nil {
		return Result{}, err
	}

	volume := qM3S * in.RetentionTimeS
	length := volume / area
	if err := finite(FieldLength, length); err != nil {
		return Result{}, err
	}

	nStraights := int(math.Ceil(length / in.StraightSegmentM))
	if nStraights < 1 {
		nStraights = 1
	}
	nUturns := max(0, nStraights-1)
	elbows := 2 * nUturns

	re := ReynoldsNumber(in.DensityKgM3, velocity, diameterM, muPaS)
	if err := finite(FieldReynolds, re); err != nil {
		return Result{}, err
	}
	f := DarcyFrictionFactor(re, roughnessM, diameterM)

	kTotal := float64(elbows) * in.ElbowKFactor
	if in.IncludeInletOutletLoss {
		kTotal += InletOutletK
	}

	qDyn := in.DensityKgM3 * velocity * velocity / 2.0
	// The conversions round each term before the sum so dp_total is exactly
	// dp_distributed + dp_local on FMA-capable targets too.
	dpDistributed := float64(f * (length / diameterM) * qDyn)
	dpLocal := float64(kTotal * qDyn)
	dpTotal := dpDistributed + dpLocal
	if err := finite(FieldDpTotal, dpTotal); err != nil {
		return Result{}, err
	}

	return Result{
		FlowM3S:          qM3S,
		AreaM2:           area,
		Velocity:         velocity,
		RequiredVolumeM3: volume,
		LengthM:          length,
		NStraights:       nStraights,
		NUturns:          nUturns,
		Elbows90:         elbows,
		Re:               re,
		Regime:           ClassifyRegime(re),
		F:                f,
		KTotal:           kTotal,
		DpDistributedPa:  dpDistributed,
		DpLocalPa:        dpLocal,
		DpTotalPa:        dpTotal,
	}, nil
}

// guard rejects inputs that would divide by zero or poison the arithmetic
// chain with NaN/Inf. Underflow after unit conversion is caught in Calculate.
// Range policy belongs to Limits.
func (in Input) guard() error {
	for _, v := range in.fields() {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return &FieldError{Field: v.name, Value: v.value, Reason: ReasonNotFinite}
		}
	}
	positive := []namedValue{
		{FieldDiameter, in.DiameterMM},
		{FieldViscosity, in.ViscosityMPaS},
		{FieldStraightSegment, in.StraightSegmentM},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &FieldError{Field: p.name, Value: p.value, Reason: ReasonNotPositive}
		}
	}
	return nil
}

// finite rejects a derived quantity that overflowed even though every input
// was finite.
func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Field: field, Value: v, Reason: ReasonNotFinite}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

func (in Input) fields() []namedValue {
	return []namedValue{
		{FieldFlow, in.FlowM3H},
		{FieldRetentionTime, in.RetentionTimeS},
		{FieldDiameter, in.DiameterMM},
		{FieldRoughness, in.RoughnessMM},
		{FieldDensity, in.DensityKgM3},
		{FieldViscosity, in.ViscosityMPaS},
		{FieldStraightSegment, in.StraightSegmentM},
		{FieldElbowK, in.ElbowKFactor},
	}
}

func (r Result) String() string {
	return fmt.Sprintf("L=%.2f m, %d straights, %d elbows, Re=%.0f, f=%.4f, dp=%.2f kPa",
		r.LengthM, r.NStraights, r.Elbows90, r.Re, r.F, r.DpTotalPa/1000.0)
}
