package recommend

import (
	"encoding/json"
	"net/http"

	coil "Coil/internal/calc/coil"
	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
)

type Handler struct{}

func (h *Handler) Diameter(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input DiameterRecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	res, err := Diameter(input)
	if err != nil {
		errx.Write(w, r, coil.AppError(tag, err))
		return
	}
	if !res.Found {
		res.Notes = i18n.T(tag, i18n.KeyNoDiameter)
	}
	errx.WriteJSON(w, res)
}
