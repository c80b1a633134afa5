package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/cycle"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/evaporator"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/refprop"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

func testEngine() *Engine {
	return &Engine{
		Refrigerant: "R134a",
		Offsets:     cycle.Offsets{EvapDew: -10.0, CondAmb: 3.0},
		Model: &evaporator.Model{
			U:              80.0,
			A:              1.0,
			TubeDiameter:   0.01,
			TubeCount:      1,
			AirViscosity:   1.8e-5,
			LatentHeat:     2.45e6,
			TargetApproach: 5.0,
		},
		Psychro: psychro.SI{},
		Props:   refprop.NewTable(),
	}
}

var testAmbient = weather.Conditions{
	TemperatureC: 30.0,
	PressurePa:   101325.0,
	RelHumidity:  0.7,
}

func TestCandidates(t *testing.T) {
	cands := Candidates(0.1, 5.0, 0.1)
	require.Len(t, cands, 50)
	assert.Equal(t, 0.1, cands[0])
	assert.Equal(t, 0.3, cands[2], "grid values must not drift")
	assert.Equal(t, 5.0, cands[49], "stop is inclusive")

	for i := 1; i < len(cands); i++ {
		assert.Greater(t, cands[i], cands[i-1])
	}

	assert.Equal(t, []float64{1.0}, Candidates(1.0, 1.0, 0.5))
	assert.Nil(t, Candidates(1.0, 0.5, 0.1))
	assert.Nil(t, Candidates(0.1, 5.0, 0.0))
}

func TestRunRejectsEmptySweep(t *testing.T) {
	e := testEngine()

	_, err := e.Run(testAmbient, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty sweep range")

	_, err = e.Run(testAmbient, []float64{})
	assert.Error(t, err)
}

func TestRunEndToEnd(t *testing.T) {
	e := testEngine()
	cands := Candidates(0.1, 5.0, 0.1)

	res, err := e.Run(testAmbient, cands)
	require.NoError(t, err)

	require.Len(t, res.Rows, 50)
	assert.NotEmpty(t, res.RunID)

	// cycle invariants at this ambient
	c := res.Cycle
	assert.Less(t, c.State1.PressurePa, c.State3.PressurePa)
	assert.Greater(t, c.QEvapJkg, 0.0)

	for i, row := range res.Rows {
		// rows come back in candidate order
		assert.Equal(t, cands[i], row.MassFlowDryAir)

		if i > 0 {
			prev := res.Rows[i-1]
			// compressor work must not fall as the air flow grows
			assert.GreaterOrEqual(t, row.CompressorW, prev.CompressorW-1e-9,
				"W_comp at m_da %g", row.MassFlowDryAir)
			assert.Less(t, row.NTU, prev.NTU)
			assert.Less(t, row.Effectiveness, prev.Effectiveness)
		}
	}

	require.NotNil(t, res.Best)
	require.NotNil(t, res.Best.WaterKgPerKWh)
	for _, row := range res.Rows {
		if row.WaterKgPerKWh != nil {
			assert.GreaterOrEqual(t, *res.Best.WaterKgPerKWh, *row.WaterKgPerKWh)
		}
	}
}

func TestSelectBestIgnoresUndefined(t *testing.T) {
	v1, v2 := 10.0, 25.0
	rows := []evaporator.TransferResult{
		{MassFlowDryAir: 0.1, WaterKgPerKWh: nil},
		{MassFlowDryAir: 0.2, WaterKgPerKWh: &v1},
		{MassFlowDryAir: 0.3, WaterKgPerKWh: &v2},
		{MassFlowDryAir: 0.4, WaterKgPerKWh: nil},
	}

	best := selectBest(rows)
	require.NotNil(t, best)
	assert.Equal(t, 0.3, best.MassFlowDryAir)

	// all undefined: no winner
	undefined := []evaporator.TransferResult{
		{MassFlowDryAir: 0.1},
		{MassFlowDryAir: 0.2},
	}
	assert.Nil(t, selectBest(undefined))
}

func TestDecimalsOf(t *testing.T) {
	assert.Equal(t, 0, decimalsOf(1.0))
	assert.Equal(t, 1, decimalsOf(0.1))
	assert.Equal(t, 2, decimalsOf(0.25))
	assert.Equal(t, 3, decimalsOf(0.125))
}
