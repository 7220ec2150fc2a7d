package helmholtz

import (
	"strconv"
)

type Input struct {
	Turns     int     `json:"turns"`
	CurrentA  float64 `json:"current_a"`
	RadiusM   float64 `json:"radius_m"`
	PositionM float64 `json:"position_m"`
}

type CustomInput struct {
	AWG       int     `json:"awg"`
	Turns     int     `json:"turns"`
	CurrentA  float64 `json:"current_a"`
	RadiusM   float64 `json:"radius_m"`
	PositionM float64 `json:"position_m"`
}

type ResistanceInput struct {
	Turns         int     `json:"turns"`
	CurrentA      float64 `json:"current_a"`
	RadiusM       float64 `json:"radius_m"`
	WireDiameterM float64 `json:"wire_diameter_m"`
}

type Result struct {
	PositionM           float64  `json:"position_m"`
	FieldAPerM          float64  `json:"field_a_per_m"`
	FluxDensityMT       float64  `json:"flux_density_mt"`
	FluxDensityMG       float64  `json:"flux_density_mg"`
	CenterFieldAPerM    float64  `json:"center_field_a_per_m"`
	CenterFluxDensityMT float64  `json:"center_flux_density_mt"`
	WireLengthM         float64  `json:"wire_length_m"`
	RecommendedAWG      *int     `json:"recommended_awg,omitempty"`
	WireAWG             int      `json:"wire_awg,omitempty"`
	WireDiameterM       float64  `json:"wire_diameter_m,omitempty"`
	VoltageRequiredV    *float64 `json:"voltage_required_v,omitempty"`
	Notes               string   `json:"notes"`
}

type ResistanceResult struct {
	WireLengthM      float64 `json:"wire_length_m"`
	ResistanceOhm    float64 `json:"resistance_ohm"`
	VoltageRequiredV float64 `json:"voltage_required_v"`
}

// Entry is one labelled quantity of a Result, in report order.
type Entry struct {
	Label string
	Value float64
}

// Entries lists the result under human readable labels. Missing quantities are skipped.
func (r Result) Entries() []Entry {
	pos := strconv.FormatFloat(r.PositionM, 'g', -1, 64)
	out := []Entry{
		{"Magnetic Field at Position " + pos + " (A/m)", r.FieldAPerM},
		{"Flux Density at Position " + pos + " (mT)", r.FluxDensityMT},
		{"Flux Density at Position " + pos + " (mG)", r.FluxDensityMG},
		{"Magnetic Field at Center (A/m)", r.CenterFieldAPerM},
		{"Flux Density at Center (mT)", r.CenterFluxDensityMT},
		{"Wire Length (m)", r.WireLengthM},
	}
	if r.RecommendedAWG != nil {
		out = append(out, Entry{"AWG Recommendation", float64(*r.RecommendedAWG)})
	}
	if r.VoltageRequiredV != nil {
		out = append(out, Entry{"Voltage Required (V)", *r.VoltageRequiredV})
	}
	return out
}

func Calculate(in Input) (Result, error) {
	c, err := New(in.Turns, in.CurrentA, in.RadiusM)
	if err != nil {
		return Result{}, err
	}
	return c.Summary(in.PositionM), nil
}

func CalculateCustom(in CustomInput) (Result, error) {
	_, res, err := Coil{}.Custom(in.AWG, in.Turns, in.RadiusM, in.CurrentA, in.PositionM)
	return res, err
}

func CalculateResistance(in ResistanceInput) (ResistanceResult, error) {
	c, err := New(in.Turns, in.CurrentA, in.RadiusM)
	if err != nil {
		return ResistanceResult{}, err
	}
	r, err := c.WireResistance(in.WireDiameterM)
	if err != nil {
		return ResistanceResult{}, err
	}
	return ResistanceResult{
		WireLengthM:      c.WireLength(),
		ResistanceOhm:    r,
		VoltageRequiredV: in.CurrentA * r,
	}, nil
}
