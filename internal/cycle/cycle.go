// Package cycle solves the corner states of the vapor-compression
// refrigeration cycle from ambient boundary conditions. The cycle is
// independent of the swept air mass flow, so it is solved exactly once
// per run.
package cycle

import (
	"fmt"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/refprop"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

// Offsets are the fixed approach temperatures of the cycle. They are
// engineering margins, not derived quantities.
type Offsets struct {
	// Evaporator air temperature relative to the ambient dew point,
	// degree C. Negative: the air leaves below the dew point.
	EvapDew float64
	// Condenser saturation temperature above ambient, degree C.
	CondAmb float64
}

// State is one corner of the cycle.
type State struct {
	PressurePa   float64
	EnthalpyJkg  float64
	EntropyJkgK  float64 // 0 where not evaluated
	TemperatureC float64
}

// Cycle holds the four corner states and the derived quantities shared by
// every candidate of the sweep.
//
// Corner numbering follows the standard cycle:
//
//	1 evaporator exit (saturated vapor)
//	2 compressor exit (superheated vapor)
//	3 condenser exit (saturated liquid)
//	4 expansion valve exit (two-phase, h4 = h3)
type Cycle struct {
	Refrigerant string

	DewPointC    float64
	EvapAirC     float64 // air temperature leaving the evaporator
	CondTempC    float64 // condenser saturation temperature
	HumRatioIn   float64 // ambient humidity ratio, kg/kg(DA)
	HumRatioOut  float64 // saturated humidity ratio at EvapAirC, kg/kg(DA)
	AirEnthalpy  float64 // moist air enthalpy entering, J/kg(DA)
	AirEnthalpy2 float64 // saturated moist air enthalpy leaving, J/kg(DA)

	State1 State
	State2 State
	State3 State
	State4 State

	PressureRatio float64
	IsentropicEff float64

	// Specific evaporator heat absorption h1 - h4, J/kg refrigerant.
	QEvapJkg float64
}

// isentropic efficiency model bounds
const (
	etaBase    = 0.78
	etaSlope   = 0.03
	etaMin     = 0.60
	etaMax     = 0.85
	etaKneePR  = 2.0
	minQuality = 0.0
	maxQuality = 1.0
)

/*
IsentropicEfficiency estimates the compressor isentropic efficiency from
the cycle pressure ratio.

	Args:
	    pressureRatio: condenser pressure / evaporator pressure

	Returns:
	    efficiency clamped to [0.60, 0.85]

	Notes:
	    Baseline 0.78 up to PR 2, degrading 0.03 per unit of PR beyond
	    that.
*/
func IsentropicEfficiency(pressureRatio float64) float64 {
	eta := etaBase
	if pressureRatio > etaKneePR {
		eta -= etaSlope * (pressureRatio - etaKneePR)
	}
	if eta < etaMin {
		return etaMin
	}
	if eta > etaMax {
		return etaMax
	}
	return eta
}

/*
Solve computes the cycle corner states for the given ambient snapshot.

	Args:
	    amb: ambient conditions fetched at the start of the run
	    refrigerant: working fluid name, e.g. "R134a"
	    off: fixed approach temperature offsets
	    psy: psychrometric oracle
	    props: refrigerant property oracle

	Returns:
	    the solved Cycle

	Notes:
	    Any property oracle failure (temperature outside the fluid's
	    range, entropy inside the dome) aborts the run: there is no
	    meaningful fallback for an unsolvable cycle.
*/
func Solve(
	amb weather.Conditions,
	refrigerant string,
	off Offsets,
	psy psychro.Evaluator,
	props refprop.PropertyEvaluator,
) (*Cycle, error) {
	t_dew, err := psy.DewPoint(amb.TemperatureC, amb.RelHumidity)
	if err != nil {
		return nil, fmt.Errorf("dew point: %w", err)
	}

	// boundary temperatures from the fixed offsets
	t_evap_air := t_dew + off.EvapDew
	t_cond := amb.TemperatureC + off.CondAmb

	omega_in, err := psy.HumidityRatio(amb.TemperatureC, amb.RelHumidity, amb.PressurePa)
	if err != nil {
		return nil, fmt.Errorf("inlet humidity ratio: %w", err)
	}
	omega_out, err := psy.HumidityRatio(t_evap_air, 1.0, amb.PressurePa)
	if err != nil {
		return nil, fmt.Errorf("saturated outlet humidity ratio: %w", err)
	}

	// state 1: saturated vapor leaving the evaporator
	p_evap, err := props.SaturationPressure(refrigerant, t_evap_air, maxQuality)
	if err != nil {
		return nil, fmt.Errorf("evaporator pressure: %w", err)
	}
	h1, err := props.SaturationEnthalpy(refrigerant, t_evap_air, maxQuality)
	if err != nil {
		return nil, fmt.Errorf("evaporator exit enthalpy: %w", err)
	}
	s1, err := props.SaturationEntropy(refrigerant, t_evap_air, maxQuality)
	if err != nil {
		return nil, fmt.Errorf("evaporator exit entropy: %w", err)
	}

	// state 3: saturated liquid leaving the condenser
	p_cond, err := props.SaturationPressure(refrigerant, t_cond, minQuality)
	if err != nil {
		return nil, fmt.Errorf("condenser pressure: %w", err)
	}
	h3, err := props.SaturationEnthalpy(refrigerant, t_cond, minQuality)
	if err != nil {
		return nil, fmt.Errorf("condenser exit enthalpy: %w", err)
	}

	if p_evap <= 0 {
		return nil, fmt.Errorf("non-positive evaporator pressure %g Pa", p_evap)
	}
	pr := p_cond / p_evap
	if pr < 1.0 {
		return nil, fmt.Errorf("pressure ratio %g below 1: condenser must run above the evaporator", pr)
	}
	eta := IsentropicEfficiency(pr)

	// state 2: isentropic compression to condenser pressure, then the
	// efficiency correction h2 = h1 + (h2s - h1)/eta
	h2s, err := props.EnthalpyPS(refrigerant, p_cond, s1)
	if err != nil {
		return nil, fmt.Errorf("isentropic compressor exit enthalpy: %w", err)
	}
	h2 := h1 + (h2s-h1)/eta

	t2, err := props.SaturationTemperature(refrigerant, p_cond)
	if err != nil {
		return nil, fmt.Errorf("compressor exit temperature: %w", err)
	}

	// state 4: isenthalpic expansion
	h4 := h3

	c := &Cycle{
		Refrigerant:  refrigerant,
		DewPointC:    t_dew,
		EvapAirC:     t_evap_air,
		CondTempC:    t_cond,
		HumRatioIn:   omega_in,
		HumRatioOut:  omega_out,
		AirEnthalpy:  psy.MoistAirEnthalpy(amb.TemperatureC, omega_in),
		AirEnthalpy2: psy.MoistAirEnthalpy(t_evap_air, omega_out),
		State1: State{
			PressurePa:   p_evap,
			EnthalpyJkg:  h1,
			EntropyJkgK:  s1,
			TemperatureC: t_evap_air,
		},
		State2: State{
			PressurePa:   p_cond,
			EnthalpyJkg:  h2,
			TemperatureC: t2, // saturation temperature; actual exit is superheated above this
		},
		State3: State{
			PressurePa:   p_cond,
			EnthalpyJkg:  h3,
			TemperatureC: t_cond,
		},
		State4: State{
			PressurePa:   p_evap,
			EnthalpyJkg:  h4,
			TemperatureC: t_evap_air,
		},
		PressureRatio: pr,
		IsentropicEff: eta,
		QEvapJkg:      h1 - h4,
	}

	return c, nil
}
