package weather

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// conditionsRow is one line of the offline ambient conditions CSV.
type conditionsRow struct {
	TemperatureC float64 `csv:"ambient_temperature_c"`
	PressurePa   float64 `csv:"ambient_pressure_pa"`
	RelHumidity  float64 `csv:"relative_humidity"`
}

// File reads ambient conditions from a local CSV instead of the network.
// Only the first data row is used.
type File struct {
	Path string
}

/*
Fetch loads the ambient conditions file.

	Notes:
	    Expected header:
	        ambient_temperature_c,ambient_pressure_pa,relative_humidity
*/
func (f *File) Fetch(_ context.Context) (Conditions, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return Conditions{}, fmt.Errorf("open weather file: %w", err)
	}
	defer fh.Close()

	var rows []*conditionsRow
	if err := gocsv.UnmarshalFile(fh, &rows); err != nil {
		return Conditions{}, fmt.Errorf("parse weather file %s: %w", f.Path, err)
	}
	if len(rows) == 0 {
		return Conditions{}, fmt.Errorf("weather file %s has no data rows", f.Path)
	}

	c := Conditions{
		TemperatureC: rows[0].TemperatureC,
		PressurePa:   rows[0].PressurePa,
		RelHumidity:  rows[0].RelHumidity,
	}
	if err := c.Validate(); err != nil {
		return Conditions{}, fmt.Errorf("weather file %s: %w", f.Path, err)
	}
	return c, nil
}
