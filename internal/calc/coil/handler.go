package coil

import (
	"encoding/json"
	"net/http"

	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
)

type Handler struct {
	Limits Limits
}

func NewHandler() *Handler {
	return &Handler{Limits: DefaultLimits}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	res, err := h.Limits.CalculateChecked(input)
	if err != nil {
		errx.Write(w, r, AppError(tag, err))
		return
	}
	errx.WriteJSON(w, res)
}

type PresetsResponse struct {
	Fluids []Fluid `json:"fluids"`
	Pipes  []Pipe  `json:"pipes"`
	Limits Limits  `json:"limits"`
}

func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	errx.WriteJSON(w, PresetsResponse{Fluids: Fluids(), Pipes: Pipes(), Limits: h.Limits})
}
