package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"Helmholtz/internal/calc/helmholtz"
)

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	// Render fully before writing so calculation errors still get a status code.
	var buf bytes.Buffer
	if err := Write(&buf, input, time.Now()); err != nil {
		http.Error(w, err.Error(), helmholtz.StatusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"helmholtz-report.pdf\"")
	w.Write(buf.Bytes())
}
