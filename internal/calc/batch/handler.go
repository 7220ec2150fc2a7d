package batch

import (
	"encoding/json"
	"net/http"

	"Helmholtz/internal/calc/helmholtz"
	"Helmholtz/internal/repo"
)

type Handler struct {
	History repo.CalculationRepository
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), helmholtz.StatusFor(err))
		return
	}
	helmholtz.Record(r.Context(), h.History, "batch", input, res)
	helmholtz.WriteJSON(w, http.StatusOK, res)
}
