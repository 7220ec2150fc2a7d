// Package helmholtz computes the field, flux density and wiring of a Helmholtz coil pair.
package helmholtz

import (
	"math"

	"github.com/pkg/errors"
)

const (
	Mu0                = 4 * math.Pi * 1e-7 // vacuum permeability (H/m)
	ResistivityCopper  = 1.68e-8            // Ohm*m at room temperature
	MilligaussPerMilli = 1e4                // mG per mT
)

// (4/5)^(3/2), the on-axis geometry factor at the pair midpoint.
var fieldFactor = math.Pow(4.0/5.0, 1.5)

// Coil is a pair of identical coils of radius a spaced a apart.
// It is a value: operations never modify it.
type Coil struct {
	turns   int
	current float64
	radius  float64
}

func New(turnsPerCoil int, currentPerCoil, coilRadius float64) (Coil, error) {
	if turnsPerCoil <= 0 {
		return Coil{}, errors.Wrapf(ErrInvalidDimension, "turns must be positive, got %d", turnsPerCoil)
	}
	if !(coilRadius > 0) || math.IsInf(coilRadius, 0) {
		return Coil{}, errors.Wrapf(ErrInvalidDimension, "radius must be positive, got %g m", coilRadius)
	}
	if math.IsNaN(currentPerCoil) || math.IsInf(currentPerCoil, 0) {
		return Coil{}, errors.Wrapf(ErrInvalidDimension, "current must be finite, got %g A", currentPerCoil)
	}
	return Coil{turns: turnsPerCoil, current: currentPerCoil, radius: coilRadius}, nil
}

func (c Coil) Turns() int { return c.turns }
func (c Coil) Current() float64 { return c.current }
func (c Coil) Radius() float64 { return c.radius }
func (c Coil) LeftCoilPosition() float64 { return -c.radius / 2 }
func (c Coil) RightCoilPosition() float64 { return c.radius / 2 }

// Field returns H in A/m.
//
// The value is the midpoint field and does not vary with position; callers that
// need the off-centre profile must not rely on it.
func (c Coil) Field(position float64) float64 {
	return fieldFactor * float64(c.turns) * c.current / c.radius
}

func (c Coil) CenterField() float64 {
	return c.Field(0)
}

// FluxDensity returns B in mT.
func (c Coil) FluxDensity(position float64) float64 {
	return Mu0 * c.Field(position) * 1000
}

func (c Coil) CenterFluxDensity() float64 {
	return c.FluxDensity(0)
}

// FluxDensityMilligauss returns B in mG.
func (c Coil) FluxDensityMilligauss(position float64) float64 {
	return c.FluxDensity(position) * MilligaussPerMilli
}

// WireLength is the wire needed for both coils, in meters.
func (c Coil) WireLength() float64 {
	circumference := 2 * math.Pi * c.radius
	return 2 * float64(c.turns) * circumference
}

// WireResistance returns the total copper resistance for a wire diameter in meters.
func (c Coil) WireResistance(wireDiameter float64) (float64, error) {
	if !(wireDiameter > 0) || math.IsInf(wireDiameter, 0) {
		return 0, errors.Wrapf(ErrInvalidDimension, "wire diameter must be positive, got %g m", wireDiameter)
	}
	area := math.Pi * math.Pow(wireDiameter/2, 2)
	return ResistivityCopper * c.WireLength() / area, nil
}

// VoltageRequired is the drive voltage for the coil current (V = IR).
func (c Coil) VoltageRequired(wireDiameter float64) (float64, error) {
	r, err := c.WireResistance(wireDiameter)
	if err != nil {
		return 0, err
	}
	return c.current * r, nil
}

// RecommendedGauge returns NoGauge when the current is outside the rated range.
func (c Coil) RecommendedGauge() int {
	r, err := RecommendGauge(c.current)
	if err != nil {
		return NoGauge
	}
	return r.AWG
}

// Summary bundles the field values at position with the wiring for the recommended gauge.
// The voltage is left out when no gauge is recommended or its diameter is not tabulated.
func (c Coil) Summary(position float64) Result {
	res := c.fieldResult(position)
	awg := c.RecommendedGauge()
	res.RecommendedAWG = &awg

	if awg == NoGauge {
		res.Notes = "No gauge recommendation for this current; voltage not computed."
		return res
	}
	d, ok := DiameterForGauge(awg)
	if !ok {
		res.Notes = "No diameter tabulated for the recommended gauge; voltage not computed."
		return res
	}
	v, err := c.VoltageRequired(d)
	if err != nil {
		res.Notes = err.Error()
		return res
	}
	res.WireDiameterM = d
	res.VoltageRequiredV = &v
	res.Notes = "Helmholtz pair midpoint field; wire sized by recommended gauge."
	return res
}

// Custom evaluates a new coil built from the given parameters, wound with the given gauge.
// The receiver is left unchanged; on error the zero Coil is returned.
func (c Coil) Custom(gauge, turns int, radius, current, position float64) (Coil, Result, error) {
	d, err := Diameter(gauge)
	if err != nil {
		return Coil{}, Result{}, err
	}
	next, err := New(turns, current, radius)
	if err != nil {
		return Coil{}, Result{}, err
	}
	v, err := next.VoltageRequired(d)
	if err != nil {
		return Coil{}, Result{}, err
	}
	res := next.fieldResult(position)
	res.WireAWG = gauge
	res.WireDiameterM = d
	res.VoltageRequiredV = &v
	res.Notes = "Helmholtz pair midpoint field; wire sized by requested gauge."
	return next, res, nil
}

func (c Coil) fieldResult(position float64) Result {
	return Result{
		PositionM:           position,
		FieldAPerM:          c.Field(position),
		FluxDensityMT:       c.FluxDensity(position),
		FluxDensityMG:       c.FluxDensityMilligauss(position),
		CenterFieldAPerM:    c.CenterField(),
		CenterFluxDensityMT: c.CenterFluxDensity(),
		WireLengthM:         c.WireLength(),
	}
}
