package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob of a simulation run. It is built once in cmd,
// validated, and passed down read-only; nothing mutates it afterwards.
type Config struct {
	// Working fluid of the refrigeration cycle.
	Refrigerant string

	// Location for the ambient weather fetch.
	Latitude  float64
	Longitude float64

	// OpenWeatherMap credential. Required unless WeatherFile is set.
	APIKey string

	// Upper bound on the weather fetch round trip.
	FetchTimeout time.Duration

	// Path to a one-row ambient conditions CSV. When set, no network
	// fetch is performed.
	WeatherFile string

	// Refrigerant saturation temperature at the evaporator relative to
	// the ambient dew point, degree C. Negative: the evaporator runs
	// below the dew point. Engineering margin, no deeper derivation.
	EvapDewOffsetC float64

	// Condenser saturation temperature above ambient, degree C.
	CondAmbOffsetC float64

	// Sensible-cooling target below the dew point, degree C.
	// Engineering margin, no deeper derivation.
	TargetApproachC float64

	// Evaporator overall heat transfer coefficient, W/(m2 K), and
	// air-side transfer area, m2.
	UEvap float64
	AEvap float64

	// Evaporator tube inner diameter, m, and number of parallel tubes.
	TubeDiameterM float64
	TubeCount     int

	// Dynamic viscosity of air, Pa s.
	AirViscosity float64

	// Latent heat of vaporization of water, J/kg.
	LatentHeat float64

	// Dry-air mass flow sweep range, kg/s. Stop is inclusive.
	SweepStart float64
	SweepStop  float64
	SweepStep  float64

	// Results CSV destination.
	OutputPath string

	LogLevel string
}

// Defaults mirror the reference design: a single 1 m2 / 80 W/(m2 K)
// evaporator coil sized for the Kolkata climate.
func setDefaults(v *viper.Viper) {
	v.SetDefault("refrigerant", "R134a")
	v.SetDefault("location.latitude", 22.5726)
	v.SetDefault("location.longitude", 88.3639)
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("weather.file", "")
	v.SetDefault("cycle.evap_dew_offset_c", -10.0)
	v.SetDefault("cycle.cond_amb_offset_c", 3.0)
	v.SetDefault("cycle.target_approach_c", 5.0)
	v.SetDefault("evaporator.u", 80.0)
	v.SetDefault("evaporator.area", 1.0)
	v.SetDefault("evaporator.tube_diameter_m", 0.01)
	v.SetDefault("evaporator.tube_count", 1)
	v.SetDefault("evaporator.air_viscosity", 1.8e-5)
	v.SetDefault("evaporator.latent_heat", 2.45e6)
	v.SetDefault("sweep.start", 0.1)
	v.SetDefault("sweep.stop", 5.0)
	v.SetDefault("sweep.step", 0.1)
	v.SetDefault("output.path", "awg_results.csv")
	v.SetDefault("log.level", "info")
}

/*
Load reads the run configuration.

	Args:
	    path: config file path; empty means defaults + environment only.

	Returns:
	    populated Config (not yet validated)

	Notes:
	    The OpenWeatherMap key is never stored in the file; it is taken
	    from the OWM_API_KEY environment variable.
*/
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.BindEnv("weather.api_key", "OWM_API_KEY")

	cfg := &Config{
		Refrigerant:     v.GetString("refrigerant"),
		Latitude:        v.GetFloat64("location.latitude"),
		Longitude:       v.GetFloat64("location.longitude"),
		APIKey:          v.GetString("weather.api_key"),
		FetchTimeout:    v.GetDuration("weather.timeout"),
		WeatherFile:     v.GetString("weather.file"),
		EvapDewOffsetC:  v.GetFloat64("cycle.evap_dew_offset_c"),
		CondAmbOffsetC:  v.GetFloat64("cycle.cond_amb_offset_c"),
		TargetApproachC: v.GetFloat64("cycle.target_approach_c"),
		UEvap:           v.GetFloat64("evaporator.u"),
		AEvap:           v.GetFloat64("evaporator.area"),
		TubeDiameterM:   v.GetFloat64("evaporator.tube_diameter_m"),
		TubeCount:       v.GetInt("evaporator.tube_count"),
		AirViscosity:    v.GetFloat64("evaporator.air_viscosity"),
		LatentHeat:      v.GetFloat64("evaporator.latent_heat"),
		SweepStart:      v.GetFloat64("sweep.start"),
		SweepStop:       v.GetFloat64("sweep.stop"),
		SweepStep:       v.GetFloat64("sweep.step"),
		OutputPath:      v.GetString("output.path"),
		LogLevel:        v.GetString("log.level"),
	}

	return cfg, nil
}

/*
Validate checks the configuration before any computation happens.
Every violation here is a configuration error: the run aborts and
nothing is fetched or computed.
*/
func (c *Config) Validate() error {
	if c.Refrigerant == "" {
		return fmt.Errorf("refrigerant must not be empty")
	}
	if c.WeatherFile == "" && c.APIKey == "" {
		return fmt.Errorf("no OpenWeatherMap API key and no weather file: set OWM_API_KEY or weather.file")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("weather.timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.UEvap <= 0 || c.AEvap <= 0 {
		return fmt.Errorf("evaporator U (%g) and area (%g) must be positive", c.UEvap, c.AEvap)
	}
	if c.TubeDiameterM <= 0 {
		return fmt.Errorf("evaporator.tube_diameter_m must be positive, got %g", c.TubeDiameterM)
	}
	if c.TubeCount < 1 {
		return fmt.Errorf("evaporator.tube_count must be at least 1, got %d", c.TubeCount)
	}
	if c.AirViscosity <= 0 {
		return fmt.Errorf("evaporator.air_viscosity must be positive, got %g", c.AirViscosity)
	}
	if c.LatentHeat <= 0 {
		return fmt.Errorf("evaporator.latent_heat must be positive, got %g", c.LatentHeat)
	}
	if c.SweepStep <= 0 {
		return fmt.Errorf("sweep.step must be positive, got %g", c.SweepStep)
	}
	if c.SweepStop < c.SweepStart {
		return fmt.Errorf("sweep.stop (%g) must not be below sweep.start (%g)", c.SweepStop, c.SweepStart)
	}
	if c.SweepStart <= 0 {
		return fmt.Errorf("sweep.start must be positive, got %g", c.SweepStart)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	return nil
}
