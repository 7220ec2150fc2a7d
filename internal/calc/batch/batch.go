package batch

import (
	"github.com/pkg/errors"

	"Helmholtz/internal/calc/helmholtz"
)

const MaxItems = 500

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []helmholtz.Input `json:"items"`
}

type Result struct {
	Results []helmholtz.Result `json:"results"`
}

// Calculate evaluates every item and stops at the first invalid one.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return Result{}, errors.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]helmholtz.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := helmholtz.Calculate(item)
		if err != nil {
			return Result{}, errors.WithMessagef(err, "item %d", i+1)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
