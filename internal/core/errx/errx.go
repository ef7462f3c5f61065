package errx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Coil/internal/core/i18n"
	logx "Coil/pkg/logger"

	"golang.org/x/text/language"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func BadRequest(tag language.Tag, key i18n.Key, args ...any) *AppError {
	return New(nil, http.StatusBadRequest, i18n.T(tag, key, args...))
}

func Internal(tag language.Tag, err error) *AppError {
	return New(err, http.StatusInternalServerError, i18n.T(tag, i18n.KeyInternal))
}

// fielder is implemented by validation errors that name an input field.
type fielder interface {
	FieldName() string
}

type body struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Write sends err as a JSON error body. Errors that are not *AppError are
// reported as 500 without leaking their text.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var app *AppError
	if !errors.As(err, &app) {
		app = Internal(i18n.FromRequest(r), err)
	}
	if app.Status >= http.StatusInternalServerError {
		logx.Error().Err(app.Err).Str("path", r.URL.Path).Msg(app.Message)
	}
	b := body{Error: app.Message}
	var fe fielder
	if errors.As(app.Err, &fe) {
		b.Field = fe.FieldName()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(app.Status)
	_ = json.NewEncoder(w).Encode(b)
}

// WriteJSON encodes v with a 200 status.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Warn().Err(err).Msg("encode response")
	}
}
