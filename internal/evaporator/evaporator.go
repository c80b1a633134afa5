// Package evaporator models the air-side heat and mass transfer of the
// evaporator coil with the NTU-effectiveness method. One TransferResult is
// produced per candidate dry-air mass flow.
package evaporator

import (
	"math"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/cycle"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

// FlowRegime classifies the air flow through the evaporator tubes.
type FlowRegime string

const (
	RegimeLaminar      FlowRegime = "Laminar"
	RegimeTransitional FlowRegime = "Transitional"
	RegimeTurbulent    FlowRegime = "Turbulent"
)

// Reynolds number regime boundaries; intervals are half-open, so exactly
// 2300 is transitional and exactly 4000 is turbulent.
const (
	reLaminarMax    = 2300.0
	reTurbulentFrom = 4000.0
)

// ClassifyRegime maps a Reynolds number to its flow regime.
func ClassifyRegime(re float64) FlowRegime {
	switch {
	case re < reLaminarMax:
		return RegimeLaminar
	case re < reTurbulentFrom:
		return RegimeTransitional
	default:
		return RegimeTurbulent
	}
}

// specific heat of dry air, J/(kg K)
const cpDryAir = 1005.0

// specific heat of water vapor, J/(kg K)
const cpVapor = 1860.0

// TransferResult is one row of the sweep table. COP and water-per-energy
// are nil whenever the compressor work is not positive: a degenerate
// operating point is reported, never mistaken for a real zero efficiency.
type TransferResult struct {
	MassFlowDryAir  float64    `csv:"m_dot_da_kg_s"`
	HeatTransferW   float64    `csv:"q_actual_w"`
	RefrigerantFlow float64    `csv:"m_ref_kg_s"`
	CompressorW     float64    `csv:"w_comp_w"`
	COP             *float64   `csv:"cop"`
	WaterKgPerHr    float64    `csv:"water_kg_hr"`
	WaterKgPerKWh   *float64   `csv:"water_kg_per_kwh"`
	NTU             float64    `csv:"ntu"`
	Effectiveness   float64    `csv:"effectiveness"`
	Reynolds        float64    `csv:"reynolds"`
	FlowRegime      FlowRegime `csv:"flow_regime"`
}

// Model holds the fixed heat exchanger and air-side parameters of the
// evaporator. It is immutable across the sweep.
type Model struct {
	// Overall heat transfer coefficient, W/(m2 K), times area, m2.
	U float64
	A float64

	// Tube inner diameter, m, and parallel tube count; together they
	// set the superficial flow area for the Reynolds number.
	TubeDiameter float64
	TubeCount    int

	// Dynamic viscosity of air, Pa s.
	AirViscosity float64

	// Latent heat of vaporization of water, J/kg.
	LatentHeat float64

	// Sensible-cooling target below the dew point, degree C.
	TargetApproach float64
}

// FlowArea returns the total internal flow area of the tube bank, m2.
func (m *Model) FlowArea() float64 {
	return math.Pi * m.TubeDiameter * m.TubeDiameter / 4.0 * float64(m.TubeCount)
}

/*
Evaluate computes the transfer result for one candidate dry-air mass flow.

	Args:
	    m_da: dry-air mass flow, kg/s
	    amb: ambient conditions
	    c: the solved cycle (shared by every candidate)
	    psy: psychrometric oracle, used for the moist air density

	Returns:
	    one TransferResult

	Notes:
	    The refrigerant side changes phase at constant temperature, so
	    its capacity rate is effectively infinite and the single-fluid
	    relation eps = 1 - exp(-NTU) applies.

	    Degenerate inputs never error: C_air -> 0 yields NTU = 0 and
	    zeroed duties, and non-positive q_evap or compressor work yields
	    zero refrigerant flow and undefined (nil) efficiency metrics.
*/
func (m *Model) Evaluate(
	m_da float64,
	amb weather.Conditions,
	c *cycle.Cycle,
	psy psychro.Evaluator,
) TransferResult {
	res := TransferResult{MassFlowDryAir: m_da}

	// air-side capacity rate with the vapor content included
	cp_moist := cpDryAir + c.HumRatioIn*cpVapor
	c_air := m_da * cp_moist

	// condensed water rate is set by the humidity ratio drop alone
	water := math.Max(0.0, m_da*(c.HumRatioIn-c.HumRatioOut))
	res.WaterKgPerHr = water * 3600.0

	// Reynolds number from the superficial velocity through the tubes
	rho := psy.MoistAirDensity(amb.TemperatureC, c.HumRatioIn, amb.PressurePa)
	area := m.FlowArea()
	if rho > 0 && area > 0 && m.AirViscosity > 0 {
		velocity := m_da / (rho * area)
		res.Reynolds = rho * velocity * m.TubeDiameter / m.AirViscosity
	}
	res.FlowRegime = ClassifyRegime(res.Reynolds)

	if c_air <= 0 {
		// zero-flow candidate: nothing is exchanged, metrics undefined
		return res
	}

	ntu := m.U * m.A / c_air
	eps := 1.0 - math.Exp(-ntu)
	res.NTU = ntu
	res.Effectiveness = eps

	// thermodynamically required duty: drive the air to the target
	// below the dew point and condense the humidity ratio difference
	t_target := c.DewPointC - m.TargetApproach
	q_sensible := c_air * (amb.TemperatureC - t_target)
	q_latent := water * m.LatentHeat
	q_required := q_sensible + q_latent

	// heat-exchanger-limited duty toward the evaporator air temperature
	q_max := c_air * (amb.TemperatureC - c.EvapAirC)
	q_hx := eps * q_max

	q_actual := math.Min(q_required, q_hx)
	if q_actual < 0 {
		q_actual = 0
	}
	res.HeatTransferW = q_actual

	if c.QEvapJkg > 0 {
		res.RefrigerantFlow = q_actual / c.QEvapJkg
	}
	res.CompressorW = res.RefrigerantFlow * (c.State2.EnthalpyJkg - c.State1.EnthalpyJkg)

	if res.CompressorW > 0 {
		cop := q_actual / res.CompressorW
		res.COP = &cop

		perKWh := res.WaterKgPerHr / (res.CompressorW / 1000.0)
		res.WaterKgPerKWh = &perKWh
	}

	return res
}
