// Package psychro evaluates moist air properties. The correlations are
// closed-form; the Evaluator interface exists so the cycle and evaporator
// models can be tested against deterministic stubs.
package psychro

import (
	"fmt"
	"math"
)

// Evaluator is the psychrometric oracle used by the cycle solver and the
// evaporator transfer model.
type Evaluator interface {
	// DewPoint returns the dew point temperature, degree C, for a
	// dry-bulb temperature (degree C) and relative humidity fraction.
	DewPoint(tdbC, relHum float64) (float64, error)
	// HumidityRatio returns kg water / kg dry air.
	HumidityRatio(tdbC, relHum, pressurePa float64) (float64, error)
	// MoistAirDensity returns kg/m3 for moist air at the given state.
	MoistAirDensity(tdbC, humRatio, pressurePa float64) float64
	// MoistAirEnthalpy returns J/kg dry air.
	MoistAirEnthalpy(tdbC, humRatio float64) float64
	// SaturationPressure returns the saturation vapor pressure, Pa.
	SaturationPressure(tdbC float64) float64
}

// SI implements Evaluator with standard SI correlations.
type SI struct{}

// gas constant of dry air, J/(kg K)
const r_da = 287.055

// ratio of molecular weights of water vapor and dry air
const epsilon = 0.621945

/*
SaturationPressure computes the saturation vapor pressure over water
(t >= 0) or ice (t < 0).

	Args:
	    tdbC: air temperature, degree C

	Returns:
	    saturation vapor pressure, Pa
*/
func (SI) SaturationPressure(tdbC float64) float64 {
	t := tdbC + 273.15

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	if tdbC >= 0.0 {
		return math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*math.Log(t))
	}
	return math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*math.Log(t))
}

/*
HumidityRatio computes the humidity ratio of moist air.

	Args:
	    tdbC: dry-bulb temperature, degree C
	    relHum: relative humidity, [0, 1]
	    pressurePa: total pressure, Pa

	Returns:
	    humidity ratio, kg/kg(DA)
*/
func (s SI) HumidityRatio(tdbC, relHum, pressurePa float64) (float64, error) {
	if relHum < 0.0 || relHum > 1.0 {
		return 0, fmt.Errorf("relative humidity %g outside [0, 1]", relHum)
	}
	p_v := relHum * s.SaturationPressure(tdbC)
	if p_v >= pressurePa {
		return 0, fmt.Errorf("vapor pressure %g Pa exceeds total pressure %g Pa", p_v, pressurePa)
	}
	return epsilon * p_v / (pressurePa - p_v), nil
}

/*
DewPoint computes the dew point temperature from dry-bulb temperature and
relative humidity.

	Returns:
	    dew point, degree C

	Notes:
	    Inverts the vapor pressure with the Udagawa cubic fits, one for
	    partial pressures below 6.112 hPa (dew point below 0 degC) and
	    one for 6.112..123.5 hPa (0..50 degC).
*/
func (s SI) DewPoint(tdbC, relHum float64) (float64, error) {
	if relHum <= 0.0 || relHum > 1.0 {
		return 0, fmt.Errorf("relative humidity %g outside (0, 1]", relHum)
	}
	p_v := relHum * s.SaturationPressure(tdbC) // Pa

	p_v_hpa := p_v / 100.0
	if p_v_hpa < 0.039 || p_v_hpa > 123.5 {
		return 0, fmt.Errorf("vapor pressure %g hPa outside dew point fit range", p_v_hpa)
	}

	y := math.Log(p_v)
	if p_v_hpa < 6.112 {
		return -60.662 + 7.4624*y + 0.20594*y*y + 0.016321*y*y*y, nil
	}
	return -77.199 + 13.198*y - 0.63772*y*y + 0.071098*y*y*y, nil
}

/*
MoistAirDensity computes the density of moist air.

	Args:
	    tdbC: dry-bulb temperature, degree C
	    humRatio: humidity ratio, kg/kg(DA)
	    pressurePa: total pressure, Pa

	Returns:
	    moist air density, kg/m3
*/
func (SI) MoistAirDensity(tdbC, humRatio, pressurePa float64) float64 {
	t := tdbC + 273.15
	// dry-air specific volume corrected for the vapor fraction
	v := r_da * t * (1.0 + 1.607858*humRatio) / pressurePa
	return (1.0 + humRatio) / v
}

/*
MoistAirEnthalpy computes the specific enthalpy of moist air.

	Args:
	    tdbC: dry-bulb temperature, degree C
	    humRatio: humidity ratio, kg/kg(DA)

	Returns:
	    enthalpy, J/kg(DA), zero at 0 degree C dry air
*/
func (SI) MoistAirEnthalpy(tdbC, humRatio float64) float64 {
	return 1006.0*tdbC + humRatio*(2501000.0+1860.0*tdbC)
}
