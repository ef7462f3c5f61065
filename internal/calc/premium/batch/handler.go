package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	coil "Coil/internal/calc/coil"
	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"

	"golang.org/x/text/language"
)

type Handler struct{}

func (h *Handler) Coil(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input CoilBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	res, err := CalculateCoil(input)
	if err != nil {
		errx.Write(w, r, AppError(tag, err))
		return
	}
	errx.WriteJSON(w, res)
}

// AppError localizes a CalculateCoil error. Item errors are prefixed with
// the 1-based item number.
func AppError(tag language.Tag, err error) *errx.AppError {
	switch {
	case errors.Is(err, ErrNoItems):
		return errx.BadRequest(tag, i18n.KeyNoItems)
	case errors.Is(err, ErrTooManyItems):
		return errx.BadRequest(tag, i18n.KeyTooManyItems, MaxItems)
	}
	app := coil.AppError(tag, err)
	var ie *ItemError
	if errors.As(err, &ie) {
		app.Message = fmt.Sprintf("#%d: %s", ie.Index+1, app.Message)
	}
	return app
}
