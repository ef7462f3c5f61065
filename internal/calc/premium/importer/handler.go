package importer

import (
	"encoding/json"
	"errors"
	"net/http"

	coil "Coil/internal/calc/coil"
	"Coil/internal/calc/premium/batch"
	"Coil/internal/core/errx"
	"Coil/internal/core/i18n"
	logx "Coil/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

type ImportedItem struct {
	Row    int         `json:"row"`
	Input  coil.Input  `json:"input"`
	Result coil.Result `json:"result"`
}

type CoilImportResult struct {
	Count   int            `json:"count"`
	Items   []ImportedItem `json:"items"`
	Skipped []Skipped      `json:"skipped"`
}

func (h *Handler) Coil(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyFileRequired))
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidFile))
		return
	}
	defer f.Close()

	rows, skipped, err := ParseSheet(f)
	if errors.Is(err, ErrEmptySheet) {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyEmptySheet))
		return
	}
	if err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidFile))
		return
	}

	out := CoilImportResult{Items: make([]ImportedItem, 0, len(rows)), Skipped: skipped}
	for _, row := range rows {
		res, err := coil.Calculate(row.Input)
		if err != nil {
			out.Skipped = append(out.Skipped, Skipped{Row: row.Row, Reason: err.Error()})
			continue
		}
		out.Items = append(out.Items, ImportedItem{Row: row.Row, Input: row.Input, Result: res})
	}
	out.Count = len(out.Items)
	logx.Debug().Int("imported", out.Count).Int("skipped", len(out.Skipped)).Msg("coil sheet import")
	errx.WriteJSON(w, out)
}

// Export calculates a batch and returns it as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)
	var input batch.CoilBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errx.Write(w, r, errx.BadRequest(tag, i18n.KeyInvalidPayload))
		return
	}
	res, err := batch.CalculateCoil(input)
	if err != nil {
		errx.Write(w, r, batch.AppError(tag, err))
		return
	}
	f, err := Export(input.Items, res.Results)
	if err != nil {
		errx.Write(w, r, errx.Internal(tag, err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"coil.xlsx\"")
	if _, err := f.WriteTo(w); err != nil {
		logx.Error().Err(err).Msg("write xlsx")
	}
}
