package helmholtz

import "github.com/pkg/errors"

var (
	// ErrInvalidGauge is returned when an AWG value has no diameter entry.
	ErrInvalidGauge = errors.New("invalid gauge")
	// ErrInvalidDimension is returned for non-positive turns, radius or wire diameter.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrNoGaugeRecommendation means the current is outside the rated range.
	ErrNoGaugeRecommendation = errors.New("no gauge recommendation")
)
