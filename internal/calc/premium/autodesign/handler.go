package autodesign

import (
	"encoding/json"
	"net/http"

	coil "Coil/internal/calc/coil"
	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
)

type Handler struct{}

func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input LayoutAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	res, err := Layout(input)
	if err != nil {
		errx.Write(w, r, coil.AppError(tag, err))
		return
	}
	errx.WriteJSON(w, res)
}
