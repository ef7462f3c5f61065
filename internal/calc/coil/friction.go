package coil

import "math"

type Regime string

const (
	RegimeNone      Regime = "none"
	RegimeLaminar   Regime = "laminar"
	RegimeTurbulent Regime = "turbulent"
)

// LaminarLimit is the Reynolds number at which flow is treated as turbulent.
// The transitional band above it gets Swamee-Jain without blending.
const LaminarLimit = 2300.0

func ReynoldsNumber(density, velocity, diameterM, viscosityPaS float64) float64 {
	return density * velocity * diameterM / viscosityPaS
}

func ClassifyRegime(re float64) Regime {
	switch {
	case re <= 0:
		return RegimeNone
	case re < LaminarLimit:
		return RegimeLaminar
	default:
		return RegimeTurbulent
	}
}

// DarcyFrictionFactor returns 0 for no flow, 64/Re in laminar flow and the
// Swamee-Jain approximation of Colebrook otherwise.
func DarcyFrictionFactor(re, roughnessM, diameterM float64) float64 {
	switch ClassifyRegime(re) {
	case RegimeNone:
		return 0
	case RegimeLaminar:
		return 64.0 / re
	}
	relRoughness := roughnessM / diameterM
	l := math.Log10(relRoughness/3.7 + 5.74/math.Pow(re, 0.9))
	return 0.25 / (l * l)
}
