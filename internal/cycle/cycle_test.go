package cycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/refprop"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

// stubPsychro is a deterministic psychrometric oracle for solver tests.
type stubPsychro struct {
	dewErr error
}

func (s stubPsychro) DewPoint(tdbC, _ float64) (float64, error) {
	if s.dewErr != nil {
		return 0, s.dewErr
	}
	return tdbC - 6.0, nil
}

func (stubPsychro) HumidityRatio(tdbC, relHum, _ float64) (float64, error) {
	return relHum * (0.004 + 0.0006*tdbC), nil
}

func (stubPsychro) MoistAirDensity(_, _, _ float64) float64 { return 1.15 }

func (stubPsychro) MoistAirEnthalpy(tdbC, humRatio float64) float64 {
	return 1006.0*tdbC + humRatio*2.5e6
}

func (stubPsychro) SaturationPressure(_ float64) float64 { return 2339.0 }

// stubProps is a linear-in-temperature property oracle. Saturation
// pressure increases with temperature unless inverted is set.
type stubProps struct {
	failPressure bool
	failPS       bool
	inverted     bool
}

func (s stubProps) SaturationPressure(_ string, tC, _ float64) (float64, error) {
	if s.failPressure {
		return 0, errors.New("temperature outside fluid range")
	}
	if s.inverted {
		return 1000.0 * (150.0 - tC), nil
	}
	return 1000.0 * (50.0 + tC), nil
}

func (stubProps) SaturationEnthalpy(_ string, tC, quality float64) (float64, error) {
	if quality == 0.0 {
		return 50e3 + 1200.0*tC, nil
	}
	return 250e3 + 500.0*tC, nil
}

func (stubProps) SaturationEntropy(_ string, tC, _ float64) (float64, error) {
	return 930.0 - 0.5*tC, nil
}

func (stubProps) SaturationTemperature(_ string, pPa float64) (float64, error) {
	return pPa/1000.0 - 50.0, nil
}

func (s stubProps) EnthalpyPS(_ string, pPa, _ float64) (float64, error) {
	if s.failPS {
		return 0, errors.New("entropy inside two-phase dome")
	}
	return 260e3 + 0.05*pPa, nil
}

var testAmbient = weather.Conditions{
	TemperatureC: 30.0,
	PressurePa:   101325.0,
	RelHumidity:  0.7,
}

var testOffsets = Offsets{EvapDew: -10.0, CondAmb: 3.0}

func TestIsentropicEfficiency(t *testing.T) {
	tests := []struct {
		pr   float64
		want float64
	}{
		{1.0, 0.78},
		{2.0, 0.78},
		{2.5, 0.765},
		{3.0, 0.75},
		{8.0, 0.60},  // exactly at the floor
		{20.0, 0.60}, // clamped
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, IsentropicEfficiency(tt.pr), 1e-12, "PR %g", tt.pr)
	}

	// clamped to [0.60, 0.85] everywhere
	for pr := 1.0; pr <= 30.0; pr += 0.5 {
		eta := IsentropicEfficiency(pr)
		assert.GreaterOrEqual(t, eta, 0.60)
		assert.LessOrEqual(t, eta, 0.85)
	}
}

func TestSolveWithStubOracles(t *testing.T) {
	c, err := Solve(testAmbient, "R134a", testOffsets, stubPsychro{}, stubProps{})
	require.NoError(t, err)

	// boundary temperatures from the fixed offsets
	assert.InDelta(t, 24.0, c.DewPointC, 1e-12)
	assert.InDelta(t, 14.0, c.EvapAirC, 1e-12)
	assert.InDelta(t, 33.0, c.CondTempC, 1e-12)

	// condenser above evaporator
	assert.Greater(t, c.State3.PressurePa, c.State1.PressurePa)
	assert.Greater(t, c.PressureRatio, 1.0)

	// compression raises the enthalpy, expansion preserves it
	assert.Greater(t, c.State2.EnthalpyJkg, c.State1.EnthalpyJkg)
	assert.Equal(t, c.State3.EnthalpyJkg, c.State4.EnthalpyJkg)

	assert.Greater(t, c.QEvapJkg, 0.0)
	assert.InDelta(t, c.State1.EnthalpyJkg-c.State4.EnthalpyJkg, c.QEvapJkg, 1e-9)

	// inlet air is wetter than the saturated outlet
	assert.Greater(t, c.HumRatioIn, c.HumRatioOut)
	assert.Greater(t, c.AirEnthalpy, c.AirEnthalpy2)
}

func TestSolveWithTableOracles(t *testing.T) {
	c, err := Solve(testAmbient, "R134a", testOffsets, psychro.SI{}, refprop.NewTable())
	require.NoError(t, err)

	assert.InDelta(t, 23.9, c.DewPointC, 0.3)
	assert.Greater(t, c.State3.PressurePa, c.State1.PressurePa)
	assert.Greater(t, c.QEvapJkg, 0.0)
	assert.GreaterOrEqual(t, c.IsentropicEff, 0.60)
	assert.LessOrEqual(t, c.IsentropicEff, 0.85)
}

func TestSolvePropagatesOracleFailures(t *testing.T) {
	_, err := Solve(testAmbient, "R134a", testOffsets, stubPsychro{dewErr: errors.New("bad state")}, stubProps{})
	assert.ErrorContains(t, err, "dew point")

	_, err = Solve(testAmbient, "R134a", testOffsets, stubPsychro{}, stubProps{failPressure: true})
	assert.ErrorContains(t, err, "pressure")

	_, err = Solve(testAmbient, "R134a", testOffsets, stubPsychro{}, stubProps{failPS: true})
	assert.ErrorContains(t, err, "isentropic compressor exit enthalpy")
}

func TestSolveRejectsInvertedPressures(t *testing.T) {
	_, err := Solve(testAmbient, "R134a", testOffsets, stubPsychro{}, stubProps{inverted: true})
	assert.ErrorContains(t, err, "pressure ratio")
}
