package importer

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"Helmholtz/internal/calc/batch"
	"Helmholtz/internal/calc/helmholtz"
	"Helmholtz/internal/repo"
)

const (
	MaxUploadSize = 10 << 20 // 10MB
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	History repo.CalculationRepository
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	helmholtz.Record(r.Context(), h.History, "import", map[string]int{"rows": res.Count + len(res.Skipped)}, res)
	helmholtz.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), helmholtz.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", "attachment; filename=\"helmholtz.xlsx\"")
	if err := Export(w, input.Items, res.Results); err != nil {
		logrus.WithError(err).Error("xlsx export failed")
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}

func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", "attachment; filename=\"helmholtz-template.xlsx\"")
	if err := Template(w); err != nil {
		logrus.WithError(err).Error("xlsx template failed")
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
