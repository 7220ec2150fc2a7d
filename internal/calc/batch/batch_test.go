package batch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"Helmholtz/internal/calc/helmholtz"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{Items: []helmholtz.Input{
		{Turns: 20, CurrentA: 5, RadiusM: 0.025},
		{Turns: 20, CurrentA: 2.4, RadiusM: 0.025},
		{Turns: 20, CurrentA: 16, RadiusM: 0.025},
	}})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{14, 17, helmholtz.NoGauge}
	if len(res.Results) != len(want) {
		t.Fatalf("results len = %d, want %d", len(res.Results), len(want))
	}
	for i, r := range res.Results {
		if r.RecommendedAWG == nil || *r.RecommendedAWG != want[i] {
			t.Errorf("results[%d].RecommendedAWG = %v, want %d", i, r.RecommendedAWG, want[i])
		}
	}
}

func TestCalculateErrors(t *testing.T) {
	if _, err := Calculate(Input{}); !errors.Is(err, ErrNoItems) {
		t.Errorf("empty batch error = %v, want ErrNoItems", err)
	}

	_, err := Calculate(Input{Items: []helmholtz.Input{
		{Turns: 20, CurrentA: 5, RadiusM: 0.025},
		{Turns: 20, CurrentA: 5, RadiusM: 0},
	}})
	if !errors.Is(err, helmholtz.ErrInvalidDimension) || !strings.Contains(err.Error(), "item 2") {
		t.Errorf("invalid item error = %v", err)
	}

	_, err = Calculate(Input{Items: make([]helmholtz.Input, MaxItems+1)})
	if err == nil {
		t.Error("oversized batch accepted")
	}
}

func TestHandlerCalc(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "valid", body: `{"items":[{"turns":20,"current_a":5,"radius_m":0.025}]}`, want: http.StatusOK},
		{name: "empty", body: `{"items":[]}`, want: http.StatusBadRequest},
		{name: "malformed", body: `{"items":`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			(&Handler{}).Calc(w, httptest.NewRequest("POST", "/", strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
