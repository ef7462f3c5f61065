package coil

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseline() Input {
	return Input{
		FlowM3H:                5.0,
		RetentionTimeS:         60.0,
		DiameterMM:             25.0,
		RoughnessMM:            0.0015,
		DensityKgM3:            998.0,
		ViscosityMPaS:          1.00,
		StraightSegmentM:       2.0,
		ElbowKFactor:           0.9,
		IncludeInletOutletLoss: true,
	}
}

func TestCalculate_Baseline(t *testing.T) {
	res, err := Calculate(baseline())
	require.NoError(t, err)

	assert.InEpsilon(t, 0.001388888888888889, res.FlowM3S, 1e-12)
	assert.InEpsilon(t, 4.908738521234052e-4, res.AreaM2, 1e-12)
	assert.InEpsilon(t, 2.8294212105225838, res.Velocity, 1e-12)
	assert.InEpsilon(t, 0.08333333333333334, res.RequiredVolumeM3, 1e-12)
	assert.InEpsilon(t, 169.76527263135503, res.LengthM, 1e-12)
	assert.Equal(t, 85, res.NStraights)
	assert.Equal(t, 84, res.NUturns)
	assert.Equal(t, 168, res.Elbows90)
	assert.InEpsilon(t, 70594.05920253845, res.Re, 1e-10)
	assert.Equal(t, RegimeTurbulent, res.Regime)
	assert.InEpsilon(t, 0.019533457999752566, res.F, 1e-10)
	assert.InEpsilon(t, 152.7, res.KTotal, 1e-12)
	assert.InEpsilon(t, 529887.5735793621, res.DpDistributedPa, 1e-9)
	assert.InEpsilon(t, 610006.9630696537, res.DpLocalPa, 1e-9)
	assert.InEpsilon(t, 1139894.5366490157, res.DpTotalPa, 1e-9)
}

func TestCalculate_Laminar(t *testing.T) {
	in := baseline()
	in.FlowM3H = 0.5
	in.ViscosityMPaS = 50
	in.IncludeInletOutletLoss = false

	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, RegimeLaminar, res.Regime)
	assert.InEpsilon(t, 141.18811840507692, res.Re, 1e-10)
	assert.InEpsilon(t, 64.0/res.Re, res.F, 1e-12)
	assert.Equal(t, 9, res.NStraights)
	assert.Equal(t, 16, res.Elbows90)
	assert.InEpsilon(t, 14.4, res.KTotal, 1e-12)
	assert.InEpsilon(t, 12871.891203668905, res.DpTotalPa, 1e-9)
}

func TestCalculate_Properties(t *testing.T) {
	flows := []float64{0.01, 0.3, 1, 5, 27.5, 200}
	diameters := []float64{5, 12.7, 25, 76.1, 300}
	for _, q := range flows {
		for _, d := range diameters {
			in := baseline()
			in.FlowM3H = q
			in.DiameterMM = d

			res, err := Calculate(in)
			require.NoError(t, err)

			area := math.Pi * (d / 1000) * (d / 1000) / 4
			assert.InDelta(t, q/3600, res.FlowM3S, 1e-12)
			assert.InDelta(t, res.FlowM3S, res.Velocity*area, 1e-12)
			assert.GreaterOrEqual(t, res.NStraights, 1)
			assert.Equal(t, max(0, res.NStraights-1), res.NUturns)
			assert.Equal(t, 2*res.NUturns, res.Elbows90)
			assert.Zero(t, res.Elbows90%2)
			assert.Equal(t, res.DpDistributedPa+res.DpLocalPa, res.DpTotalPa)
			assert.GreaterOrEqual(t, res.KTotal, 0.0)
		}
	}
}

func TestCalculate_RetentionMonotonic(t *testing.T) {
	prev := Result{}
	for ts := 1.0; ts <= 3600; ts += 7 {
		in := baseline()
		in.RetentionTimeS = ts
		res, err := Calculate(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.NStraights, prev.NStraights)
		assert.GreaterOrEqual(t, res.LengthM, prev.LengthM)
		assert.GreaterOrEqual(t, res.Elbows90, prev.Elbows90)
		prev = res
	}
}

func TestCalculate_InletOutletToggle(t *testing.T) {
	in := baseline()
	in.IncludeInletOutletLoss = false
	without, err := Calculate(in)
	require.NoError(t, err)

	in.IncludeInletOutletLoss = true
	with, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, without.KTotal+InletOutletK, with.KTotal, 1e-12)
	assert.Equal(t, without.DpDistributedPa, with.DpDistributedPa)
	assert.Greater(t, with.DpLocalPa, without.DpLocalPa)
}

func TestCalculate_ZeroFlow(t *testing.T) {
	for _, q := range []float64{0, -1} {
		in := baseline()
		in.FlowM3H = q
		res, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, RegimeNone, res.Regime)
		assert.Zero(t, res.F)
		assert.Equal(t, 1, res.NStraights)
		assert.Zero(t, res.NUturns)
		assert.Zero(t, res.Elbows90)
		assert.Zero(t, res.DpDistributedPa)
	}

	in := baseline()
	in.FlowM3H = 1e-9
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NStraights)
	assert.Less(t, res.Velocity, 1e-8)
	assert.Less(t, res.DpTotalPa, 1e-6)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
		reason Reason
	}{
		{"zero diameter", func(in *Input) { in.DiameterMM = 0 }, FieldDiameter, ReasonNotPositive},
		{"negative diameter", func(in *Input) { in.DiameterMM = -25 }, FieldDiameter, ReasonNotPositive},
		{"zero viscosity", func(in *Input) { in.ViscosityMPaS = 0 }, FieldViscosity, ReasonNotPositive},
		{"zero segment", func(in *Input) { in.StraightSegmentM = 0 }, FieldStraightSegment, ReasonNotPositive},
		{"NaN flow", func(in *Input) { in.FlowM3H = math.NaN() }, FieldFlow, ReasonNotFinite},
		{"infinite density", func(in *Input) { in.DensityKgM3 = math.Inf(1) }, FieldDensity, ReasonNotFinite},
		{"diameter underflows area", func(in *Input) { in.DiameterMM = 1e-160 }, FieldDiameter, ReasonNotPositive},
		{"viscosity underflows", func(in *Input) { in.ViscosityMPaS = 1e-322 }, FieldViscosity, ReasonNotPositive},
		{"velocity overflows", func(in *Input) { in.DiameterMM = 1e-155 }, FieldVelocity, ReasonNotFinite},
		{"length overflows", func(in *Input) { in.FlowM3H, in.RetentionTimeS = 1e308, 1e308 }, FieldLength, ReasonNotFinite},
		{"Reynolds overflows", func(in *Input) { in.DensityKgM3 = 1e308 }, FieldReynolds, ReasonNotFinite},
		{"pressure drop overflows", func(in *Input) { in.ElbowKFactor = 1e308 }, FieldDpTotal, ReasonNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseline()
			tt.mutate(&in)
			res, err := Calculate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, Result{}, res)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.reason, fe.Reason)
		})
	}
}

func TestCalculate_Concurrent(t *testing.T) {
	want, err := Calculate(baseline())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Calculate(baseline())
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
