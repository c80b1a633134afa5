// Package results persists the sweep table and prints the run summary.
package results

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/evaporator"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/sweep"
)

/*
WriteCSV saves the sweep table, one row per candidate in candidate order.

	Args:
	    path: destination file, truncated if it exists
	    rows: the sweep rows

	Notes:
	    Undefined COP / water-per-kWh values are written as empty cells,
	    never as zeros.
*/
func WriteCSV(path string, rows []evaporator.TransferResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("write results to %s: %w", path, err)
	}
	return nil
}

/*
PrintSummary writes the human-readable run summary: ambient conditions,
the solved cycle, and the best operating point (or the absence of one).
*/
func PrintSummary(w io.Writer, res *sweep.Result) {
	c := res.Cycle

	fmt.Fprintf(w, "Ambient: %.2f degC, %.0f Pa, RH %.1f %%\n",
		res.Ambient.TemperatureC, res.Ambient.PressurePa, res.Ambient.RelHumidity*100.0)
	fmt.Fprintf(w, "Dew point: %.2f degC\n", c.DewPointC)
	fmt.Fprintf(w, "Evaporator air temp (out): %.2f degC\n", c.EvapAirC)
	fmt.Fprintf(w, "Condenser saturation temp: %.2f degC\n", c.CondTempC)
	fmt.Fprintf(w, "Evaporator pressure: %.1f kPa, condenser pressure: %.1f kPa (PR %.3f)\n",
		c.State1.PressurePa/1e3, c.State3.PressurePa/1e3, c.PressureRatio)
	fmt.Fprintf(w, "Isentropic efficiency: %.3f, q_evap: %.1f kJ/kg\n",
		c.IsentropicEff, c.QEvapJkg/1e3)

	if res.Best == nil {
		fmt.Fprintln(w, "No valid operating point: compressor work was never positive.")
		return
	}

	b := res.Best
	fmt.Fprintln(w, "===== BEST OPERATING POINT =====")
	fmt.Fprintf(w, "Dry-air mass flow:   %.2f kg/s\n", b.MassFlowDryAir)
	fmt.Fprintf(w, "Cooling delivered:   %.2f W\n", b.HeatTransferW)
	fmt.Fprintf(w, "Refrigerant flow:    %.5f kg/s\n", b.RefrigerantFlow)
	fmt.Fprintf(w, "Compressor power:    %.2f W\n", b.CompressorW)
	fmt.Fprintf(w, "COP:                 %.2f\n", *b.COP)
	fmt.Fprintf(w, "Water production:    %.3f kg/hr\n", b.WaterKgPerHr)
	fmt.Fprintf(w, "Water per energy:    %.3f kg/kWh\n", *b.WaterKgPerKWh)
	fmt.Fprintf(w, "NTU: %.3f, effectiveness: %.3f, Re: %.0f (%s)\n",
		b.NTU, b.Effectiveness, b.Reynolds, b.FlowRegime)
}
