// Package weather provides the ambient conditions snapshot the simulation
// starts from, either fetched from OpenWeatherMap or read from a local file.
package weather

import (
	"context"
	"fmt"
)

// Conditions is the immutable ambient snapshot. It is fetched exactly once
// per run; everything downstream reads it and nothing writes it back.
type Conditions struct {
	// Dry-bulb temperature, degree C.
	TemperatureC float64
	// Atmospheric pressure, Pa.
	PressurePa float64
	// Relative humidity as a fraction in [0, 1].
	RelHumidity float64
}

// Source abstracts where the ambient conditions come from
// (OpenWeatherMap, a local CSV file, a test stub).
type Source interface {
	Fetch(ctx context.Context) (Conditions, error)
}

/*
Validate rejects physically implausible snapshots before they reach the
cycle solver.

	Notes:
	    Pressure bounds are generous (500..1100 hPa) so high-altitude
	    sites still pass.
*/
func (c Conditions) Validate() error {
	if c.RelHumidity < 0.0 || c.RelHumidity > 1.0 {
		return fmt.Errorf("relative humidity %g outside [0, 1]", c.RelHumidity)
	}
	if c.PressurePa < 50000.0 || c.PressurePa > 110000.0 {
		return fmt.Errorf("ambient pressure %g Pa outside plausible range", c.PressurePa)
	}
	if c.TemperatureC < -60.0 || c.TemperatureC > 60.0 {
		return fmt.Errorf("ambient temperature %g degC outside plausible range", c.TemperatureC)
	}
	return nil
}
