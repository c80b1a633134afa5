// Package sweep runs the parametric sweep over candidate dry-air mass flow
// rates and selects the operating point that maximizes water yield per
// unit of compressor energy.
//
// Candidates are order-independent and side-effect-free, but the loop is
// deliberately sequential: tens of closed-form evaluations do not justify
// a worker pool.
package sweep

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/cycle"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/evaporator"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/refprop"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

// Result is the outcome of one sweep run. It is built once and never
// mutated afterwards.
type Result struct {
	// RunID ties the result table and the log lines of one run together.
	RunID string

	Ambient weather.Conditions
	Cycle   *cycle.Cycle

	// Rows holds one TransferResult per candidate, in candidate order.
	Rows []evaporator.TransferResult

	// Best points into Rows at the entry maximizing water per kWh, or is
	// nil when no candidate has a defined metric.
	Best *evaporator.TransferResult
}

// Engine wires the oracles and the evaporator model for a run.
type Engine struct {
	Refrigerant string
	Offsets     cycle.Offsets
	Model       *evaporator.Model
	Psychro     psychro.Evaluator
	Props       refprop.PropertyEvaluator
}

/*
Candidates builds the dry-air mass flow grid.

	Args:
	    start, stop: sweep bounds, kg/s, stop inclusive
	    step: grid spacing, kg/s

	Returns:
	    monotonically increasing candidates, rounded to the step's
	    precision to avoid floating-point drift

	Notes:
	    0.1 .. 5.0 step 0.1 yields exactly 50 candidates.
*/
func Candidates(start, stop, step float64) []float64 {
	if step <= 0 || stop < start {
		return nil
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	dst := make([]float64, n)
	if n == 1 {
		dst[0] = start
	} else {
		floats.Span(dst, start, start+float64(n-1)*step)
	}

	// round to the step's own decimal precision
	shift := math.Pow10(decimalsOf(step))
	for i, v := range dst {
		dst[i] = math.Round(v*shift) / shift
	}
	return dst
}

// decimalsOf returns how many decimal places the step meaningfully
// carries, capped at 6.
func decimalsOf(step float64) int {
	for d := 0; d <= 6; d++ {
		shift := math.Pow10(d)
		if math.Abs(step*shift-math.Round(step*shift)) < 1e-9 {
			return d
		}
	}
	return 6
}

/*
Run executes the sweep.

	Args:
	    amb: ambient conditions fetched at the start of the run
	    candidates: dry-air mass flow grid, kg/s

	Returns:
	    the populated Result

	Notes:
	    The cycle is solved once: its states do not depend on the air
	    mass flow. An empty candidate grid is a configuration error, not
	    an empty result: a "best of nothing" row must never exist.
*/
func (e *Engine) Run(amb weather.Conditions, candidates []float64) (*Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("empty sweep range: no candidate mass flow rates")
	}

	c, err := cycle.Solve(amb, e.Refrigerant, e.Offsets, e.Psychro, e.Props)
	if err != nil {
		return nil, fmt.Errorf("solve cycle: %w", err)
	}

	res := &Result{
		RunID:   uuid.NewString(),
		Ambient: amb,
		Cycle:   c,
		Rows:    make([]evaporator.TransferResult, 0, len(candidates)),
	}

	for _, m_da := range candidates {
		res.Rows = append(res.Rows, e.Model.Evaluate(m_da, amb, c, e.Psychro))
	}

	res.Best = selectBest(res.Rows)
	return res, nil
}

// selectBest scans for the row maximizing water per kWh. Rows with an
// undefined metric never win; nil means no row qualified.
func selectBest(rows []evaporator.TransferResult) *evaporator.TransferResult {
	var best *evaporator.TransferResult
	for i := range rows {
		if rows[i].WaterKgPerKWh == nil {
			continue
		}
		if best == nil || *rows[i].WaterKgPerKWh > *best.WaterKgPerKWh {
			best = &rows[i]
		}
	}
	return best
}
