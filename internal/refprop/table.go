package refprop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// satTable holds the saturation curve of one fluid on a temperature grid,
// with fitted interpolants for lookups in both directions.
type satTable struct {
	tMinC, tMaxC float64
	pMin, pMax   float64 // Pa

	p_of_t  interp.AkimaSpline // Pa over degree C
	hf_of_t interp.AkimaSpline // J/kg over degree C
	hg_of_t interp.AkimaSpline // J/kg over degree C
	sg_of_t interp.AkimaSpline // J/(kg K) over degree C
	t_of_p  interp.AkimaSpline // degree C over Pa
}

// Table implements PropertyEvaluator from embedded saturation tables.
type Table struct {
	fluids map[string]*satTable
}

// approximate vapor specific heat near the saturation line, J/(kg K),
// used for the superheated (P, S) lookup
const cpVapor = 1050.0

// Saturated R134a, ASHRAE reference state (h_f = 0, s_f = 0 at -40 degC).
// Columns: temperature degC, pressure kPa, h_f kJ/kg, h_g kJ/kg, s_g kJ/(kg K).
var r134aSat = [][5]float64{
	{-40, 51.25, 0.00, 225.86, 0.96866},
	{-30, 84.43, 12.70, 232.24, 0.95545},
	{-20, 132.82, 25.49, 238.41, 0.94456},
	{-10, 200.74, 38.55, 244.51, 0.93766},
	{0, 292.93, 51.86, 250.45, 0.93139},
	{10, 414.89, 65.43, 256.22, 0.92661},
	{20, 572.07, 79.32, 261.59, 0.92234},
	{30, 770.20, 93.58, 266.66, 0.91947},
	{40, 1016.60, 108.26, 271.27, 0.91688},
	{50, 1317.90, 123.49, 275.33, 0.91296},
	{60, 1681.30, 139.36, 278.59, 0.90932},
	{70, 2116.20, 156.12, 280.13, 0.90475},
}

// NewTable builds the evaluator with every embedded fluid registered.
func NewTable() *Table {
	return &Table{
		fluids: map[string]*satTable{
			"R134a": newSatTable(r134aSat),
		},
	}
}

func newSatTable(rows [][5]float64) *satTable {
	n := len(rows)
	ts := make([]float64, n)
	ps := make([]float64, n)
	hfs := make([]float64, n)
	hgs := make([]float64, n)
	sgs := make([]float64, n)
	for i, r := range rows {
		ts[i] = r[0]
		ps[i] = r[1] * 1e3  // kPa -> Pa
		hfs[i] = r[2] * 1e3 // kJ/kg -> J/kg
		hgs[i] = r[3] * 1e3
		sgs[i] = r[4] * 1e3 // kJ/(kg K) -> J/(kg K)
	}

	st := &satTable{
		tMinC: ts[0],
		tMaxC: ts[n-1],
		pMin:  ps[0],
		pMax:  ps[n-1],
	}

	// xs are strictly increasing in every fit below, so Fit cannot fail.
	must(st.p_of_t.Fit(ts, ps))
	must(st.hf_of_t.Fit(ts, hfs))
	must(st.hg_of_t.Fit(ts, hgs))
	must(st.sg_of_t.Fit(ts, sgs))
	must(st.t_of_p.Fit(ps, ts))

	return st
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (t *Table) lookup(fluid string) (*satTable, error) {
	st, ok := t.fluids[fluid]
	if !ok {
		return nil, fmt.Errorf("unknown fluid %q", fluid)
	}
	return st, nil
}

func (st *satTable) checkT(tC float64) error {
	if tC < st.tMinC || tC > st.tMaxC {
		return fmt.Errorf("temperature %g degC outside saturation table range [%g, %g]", tC, st.tMinC, st.tMaxC)
	}
	return nil
}

func checkQuality(quality float64) error {
	if quality < 0.0 || quality > 1.0 {
		return fmt.Errorf("quality %g outside [0, 1]", quality)
	}
	return nil
}

// SaturationPressure returns the saturation pressure at tC, Pa.
// Quality only selects the phase and does not change the pressure; it is
// still validated to catch caller mistakes.
func (t *Table) SaturationPressure(fluid string, tC, quality float64) (float64, error) {
	st, err := t.lookup(fluid)
	if err != nil {
		return 0, err
	}
	if err := checkQuality(quality); err != nil {
		return 0, err
	}
	if err := st.checkT(tC); err != nil {
		return 0, err
	}
	return st.p_of_t.Predict(tC), nil
}

// SaturationEnthalpy returns h at (tC, quality), J/kg, blending the
// saturated liquid and vapor lines by the vapor fraction.
func (t *Table) SaturationEnthalpy(fluid string, tC, quality float64) (float64, error) {
	st, err := t.lookup(fluid)
	if err != nil {
		return 0, err
	}
	if err := checkQuality(quality); err != nil {
		return 0, err
	}
	if err := st.checkT(tC); err != nil {
		return 0, err
	}
	h_f := st.hf_of_t.Predict(tC)
	h_g := st.hg_of_t.Predict(tC)
	return h_f + quality*(h_g-h_f), nil
}

/*
SaturationEntropy returns s at (tC, quality), J/(kg K).

	Notes:
	    The liquid line is reconstructed from the Clausius-Clapeyron
	    identity s_f = s_g - (h_g - h_f)/T so the table stays consistent
	    with the stored enthalpies.
*/
func (t *Table) SaturationEntropy(fluid string, tC, quality float64) (float64, error) {
	st, err := t.lookup(fluid)
	if err != nil {
		return 0, err
	}
	if err := checkQuality(quality); err != nil {
		return 0, err
	}
	if err := st.checkT(tC); err != nil {
		return 0, err
	}
	s_g := st.sg_of_t.Predict(tC)
	h_f := st.hf_of_t.Predict(tC)
	h_g := st.hg_of_t.Predict(tC)
	s_f := s_g - (h_g-h_f)/(tC+273.15)
	return s_f + quality*(s_g-s_f), nil
}

// SaturationTemperature inverts the saturation curve, returning degree C.
func (t *Table) SaturationTemperature(fluid string, pPa float64) (float64, error) {
	st, err := t.lookup(fluid)
	if err != nil {
		return 0, err
	}
	if pPa < st.pMin || pPa > st.pMax {
		return 0, fmt.Errorf("pressure %g Pa outside saturation table range [%g, %g]", pPa, st.pMin, st.pMax)
	}
	return st.t_of_p.Predict(pPa), nil
}

/*
EnthalpyPS evaluates vapor enthalpy at a pressure and entropy, J/kg.

	Notes:
	    The state must lie on or above the saturated vapor line at that
	    pressure; an entropy inside the dome is a two-phase state the
	    evaluator refuses (the compression path never enters the dome).
	    Superheat is modeled with a constant vapor specific heat:
	        T2 = Tsat * exp((s - s_g)/cp_v)
	        h  = h_g + cp_v * (T2 - Tsat)
*/
func (t *Table) EnthalpyPS(fluid string, pPa, sJkgK float64) (float64, error) {
	tSatC, err := t.SaturationTemperature(fluid, pPa)
	if err != nil {
		return 0, err
	}
	st, err := t.lookup(fluid)
	if err != nil {
		return 0, err
	}

	s_g := st.sg_of_t.Predict(tSatC)
	if sJkgK < s_g-1e-9 {
		return 0, fmt.Errorf("entropy %g J/(kg K) at %g Pa is inside the two-phase dome", sJkgK, pPa)
	}

	tSatK := tSatC + 273.15
	t2K := tSatK * math.Exp((sJkgK-s_g)/cpVapor)
	return st.hg_of_t.Predict(tSatC) + cpVapor*(t2K-tSatK), nil
}
