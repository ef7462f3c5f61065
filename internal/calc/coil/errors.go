package coil

import (
	"errors"
	"fmt"
	"net/http"

	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"

	"golang.org/x/text/language"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	FieldFlow            = "flow_m3_h"
	FieldRetentionTime   = "retention_time_s"
	FieldDiameter        = "diameter_mm"
	FieldRoughness       = "roughness_mm"
	FieldDensity         = "density_kg_m3"
	FieldViscosity       = "viscosity_mpa_s"
	FieldStraightSegment = "straight_segment_m"
	FieldElbowK          = "elbow_k_factor"
)

// Derived quantities named by a FieldError when they overflow.
const (
	FieldVelocity = "velocity"
	FieldLength   = "length_m"
	FieldReynolds = "re"
	FieldDpTotal  = "dp_total_pa"
)

type Reason string

const (
	ReasonNotPositive Reason = "not_positive"
	ReasonNotFinite   Reason = "not_finite"
	ReasonOutOfRange  Reason = "out_of_range"
)

// FieldError describes the first offending input. It matches ErrInvalidInput
// under errors.Is.
type FieldError struct {
	Field  string
	Value  float64
	Reason Reason
	Min    float64
	Max    float64
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case ReasonOutOfRange:
		return fmt.Sprintf("%s: %s=%g outside [%g, %g]", ErrInvalidInput, e.Field, e.Value, e.Min, e.Max)
	case ReasonNotFinite:
		return fmt.Sprintf("%s: %s is not a finite number", ErrInvalidInput, e.Field)
	default:
		return fmt.Sprintf("%s: %s=%g must be positive", ErrInvalidInput, e.Field, e.Value)
	}
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func (e *FieldError) FieldName() string {
	return e.Field
}

// Localize renders the error for an operator in the given language.
func (e *FieldError) Localize(tag language.Tag) string {
	label := i18n.Field(tag, e.Field)
	switch e.Reason {
	case ReasonOutOfRange:
		return i18n.T(tag, i18n.KeyOutOfRange, label, e.Min, e.Max)
	case ReasonNotFinite:
		return i18n.T(tag, i18n.KeyNotFinite, label)
	default:
		return i18n.T(tag, i18n.KeyNotPositive, label)
	}
}

// AppError maps calculation errors to a 400 with a localized message.
// Anything that is not invalid input becomes a 500.
func AppError(tag language.Tag, err error) *errx.AppError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return errx.New(err, http.StatusBadRequest, fe.Localize(tag))
	}
	if errors.Is(err, ErrInvalidInput) {
		return errx.New(err, http.StatusBadRequest, i18n.T(tag, i18n.KeyInvalidInput))
	}
	return errx.Internal(tag, err)
}
