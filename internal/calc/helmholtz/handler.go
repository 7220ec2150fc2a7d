package helmholtz

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"Helmholtz/internal/auth"
	"Helmholtz/internal/repo"
)

const defaultHistoryLimit = 50

// Handler serves the coil tools. History is optional; without it nothing is stored.
type Handler struct {
	History      repo.CalculationRepository
	HistoryLimit int
}

type RecommendInput struct {
	CurrentA float64 `json:"current_a"`
}

type RecommendResult struct {
	AWG         int     `json:"awg"`
	MaxCurrentA float64 `json:"max_current_a"`
	DiameterM   float64 `json:"diameter_m,omitempty"`
}

type GaugeTables struct {
	Ratings   []GaugeRating   `json:"ratings"`
	Diameters []GaugeDiameter `json:"diameters"`
}

// StatusFor maps a calculation error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidGauge), errors.Is(err, ErrNoGaugeRecommendation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Record stores a calculation for the authenticated user. Failures are logged only.
func Record(ctx context.Context, history repo.CalculationRepository, kind string, input, result any) {
	if history == nil {
		return
	}
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return
	}
	calc, err := repo.NewCalculation(userID, kind, input, result)
	if err == nil {
		err = history.SaveCalculation(ctx, calc)
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user": userID,
			"kind": kind,
		}).Warn("failed to record calculation")
	}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	Record(r.Context(), h.History, "summary", input, res)
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Custom(w http.ResponseWriter, r *http.Request) {
	var input CustomInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateCustom(input)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	Record(r.Context(), h.History, "custom", input, res)
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input RecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rating, err := RecommendGauge(input.CurrentA)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	d, _ := DiameterForGauge(rating.AWG)
	WriteJSON(w, http.StatusOK, RecommendResult{AWG: rating.AWG, MaxCurrentA: rating.MaxCurrent, DiameterM: d})
}

func (h *Handler) Resistance(w http.ResponseWriter, r *http.Request) {
	var input ResistanceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateResistance(input)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Gauges(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, GaugeTables{Ratings: GaugeRatings(), Diameters: GaugeDiameters()})
}

func (h *Handler) Gauge(w http.ResponseWriter, r *http.Request) {
	awg, err := strconv.Atoi(mux.Vars(r)["awg"])
	if err != nil {
		http.Error(w, "Invalid gauge", http.StatusBadRequest)
		return
	}
	d, ok := DiameterForGauge(awg)
	if !ok {
		http.Error(w, "Gauge not found", http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, GaugeDiameter{AWG: awg, DiameterM: d})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if h.History == nil {
		WriteJSON(w, http.StatusOK, []repo.Calculation{})
		return
	}
	limit := h.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	items, err := h.History.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		logrus.WithError(err).WithField("user", userID).Error("failed to list calculations")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}
