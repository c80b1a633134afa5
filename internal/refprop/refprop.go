// Package refprop evaluates refrigerant thermodynamic properties.
// The PropertyEvaluator interface is the seam between the cycle solver and
// the property data; the built-in implementation interpolates embedded
// saturation tables.
package refprop

// PropertyEvaluator is the property oracle of the refrigeration cycle.
// Quality is the vapor mass fraction: 0 saturated liquid, 1 saturated
// vapor. All quantities are SI (Pa, J/kg, J/(kg K), degree C).
//
// Any error returned here is a fatal configuration error for the run:
// cycle states are prerequisites for all downstream work and there is no
// retry.
type PropertyEvaluator interface {
	// SaturationPressure at (Temperature, Quality).
	SaturationPressure(fluid string, tC, quality float64) (float64, error)
	// SaturationEnthalpy at (Temperature, Quality).
	SaturationEnthalpy(fluid string, tC, quality float64) (float64, error)
	// SaturationEntropy at (Temperature, Quality).
	SaturationEntropy(fluid string, tC, quality float64) (float64, error)
	// SaturationTemperature inverts the saturation curve at a pressure.
	SaturationTemperature(fluid string, pPa float64) (float64, error)
	// EnthalpyPS evaluates vapor enthalpy at (Pressure, Entropy).
	EnthalpyPS(fluid string, pPa, sJkgK float64) (float64, error)
}
