package helmholtz

import (
	"sort"

	"github.com/pkg/errors"
)

// Rated current range for gauge recommendations (A).
const (
	MinRatedCurrent = 0.0125
	MaxRatedCurrent = 15.0
)

// NoGauge is the sentinel returned by Coil.RecommendedGauge when nothing fits.
const NoGauge = 0

type GaugeRating struct {
	AWG        int     `json:"awg"`
	MaxCurrent float64 `json:"max_current_a"`
}

type GaugeDiameter struct {
	AWG       int     `json:"awg"`
	DiameterM float64 `json:"diameter_m"`
}

// Conservative chassis-wiring ratings, ordered by rating ascending.
var gaugeRatings = sortedRatings([]GaugeRating{
	{10, 15}, {11, 10}, {14, 5}, {16, 3.5}, {17, 2.5}, {18, 2},
	{20, 1.5}, {21, 1.0}, {22, 0.75}, {24, 0.5}, {27, 0.25},
	{30, 0.125}, {31, 0.100}, {32, 0.075}, {34, 0.050},
	{37, 0.025}, {40, 0.0125},
})

// Bare copper diameters, only gauges 10-22 are tabulated.
var gaugeDiameters = map[int]float64{
	10: 0.002588,
	11: 0.002305,
	12: 0.002053,
	13: 0.001828,
	14: 0.001628,
	15: 0.001450,
	16: 0.001291,
	17: 0.001150,
	18: 0.001024,
	19: 0.0009116,
	20: 0.0008128,
	21: 0.0007229,
	22: 0.0006438,
}

func sortedRatings(in []GaugeRating) []GaugeRating {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].MaxCurrent != in[j].MaxCurrent {
			return in[i].MaxCurrent < in[j].MaxCurrent
		}
		return in[i].AWG < in[j].AWG
	})
	return in
}

// RecommendGauge picks the gauge with the smallest rating that still carries current.
// Ratings are scanned ascending, so ties resolve to the lower rating and then the lower AWG.
func RecommendGauge(current float64) (GaugeRating, error) {
	if !(current >= MinRatedCurrent && current <= MaxRatedCurrent) {
		return GaugeRating{}, errors.Wrapf(ErrNoGaugeRecommendation,
			"current %g A outside [%g, %g] A", current, MinRatedCurrent, MaxRatedCurrent)
	}
	for _, r := range gaugeRatings {
		if r.MaxCurrent-current >= 0 {
			return r, nil
		}
	}
	return GaugeRating{}, errors.Wrapf(ErrNoGaugeRecommendation, "no gauge rated for %g A", current)
}

// DiameterForGauge returns the wire diameter in meters and whether the gauge is tabulated.
func DiameterForGauge(awg int) (float64, bool) {
	d, ok := gaugeDiameters[awg]
	return d, ok
}

// Diameter is DiameterForGauge with an ErrInvalidGauge failure.
func Diameter(awg int) (float64, error) {
	d, ok := DiameterForGauge(awg)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidGauge, "AWG %d is not in the available list", awg)
	}
	return d, nil
}

// GaugeRatings returns a copy of the rating table.
func GaugeRatings() []GaugeRating {
	out := make([]GaugeRating, len(gaugeRatings))
	copy(out, gaugeRatings)
	return out
}

// GaugeDiameters returns the diameter table ordered by AWG.
func GaugeDiameters() []GaugeDiameter {
	out := make([]GaugeDiameter, 0, len(gaugeDiameters))
	for awg, d := range gaugeDiameters {
		out = append(out, GaugeDiameter{AWG: awg, DiameterM: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AWG < out[j].AWG })
	return out
}
