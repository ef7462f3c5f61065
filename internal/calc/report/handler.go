package report

import (
	"encoding/json"
	"net/http"
	"time"

	coil "Coil/internal/calc/coil"
	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
	logx "Coil/pkg/logger"
)

type Handler struct {
	// FontPath is an optional UTF-8 TrueType font for non-Latin text.
	FontPath string
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}

	pdf, _, err := Build(input, time.Now(), h.FontPath)
	if err != nil {
		errx.Write(w, r, coil.AppError(tag, err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"coil-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		logx.Error().Err(err).Msg("report generation")
	}
}
