package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the OpenWeatherMap current weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherMap fetches current conditions for a fixed lat/lon.
// A missing credential or any transport/API failure is fatal for the run;
// there is no retry.
type OpenWeatherMap struct {
	BaseURL   string
	APIKey    string
	Latitude  float64
	Longitude float64
	Client    *http.Client
}

// owmResponse covers the fields of the current weather payload we use.
type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`     // degree C (units=metric)
		Pressure float64 `json:"pressure"` // hPa
		Humidity float64 `json:"humidity"` // %
	} `json:"main"`
}

func NewOpenWeatherMap(apiKey string, lat, lon float64) *OpenWeatherMap {
	return &OpenWeatherMap{
		BaseURL:   DefaultBaseURL,
		APIKey:    apiKey,
		Latitude:  lat,
		Longitude: lon,
		Client:    http.DefaultClient,
	}
}

/*
Fetch performs the single weather round trip of a run.

	Args:
	    ctx: carries the fetch deadline; the request is abandoned when it
	         expires.

	Returns:
	    ambient Conditions in SI units (degree C, Pa, fraction)
*/
func (o *OpenWeatherMap) Fetch(ctx context.Context) (Conditions, error) {
	if o.APIKey == "" {
		return Conditions{}, fmt.Errorf("no OpenWeatherMap API key provided")
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(o.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(o.Longitude, 'f', -1, 64))
	q.Set("appid", o.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Conditions{}, fmt.Errorf("weather API status %d: %s", resp.StatusCode, body)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Conditions{}, fmt.Errorf("decode weather response: %w", err)
	}

	// hPa -> Pa, % -> fraction
	c := Conditions{
		TemperatureC: data.Main.Temp,
		PressurePa:   data.Main.Pressure * 100.0,
		RelHumidity:  data.Main.Humidity / 100.0,
	}

	if err := c.Validate(); err != nil {
		return Conditions{}, fmt.Errorf("weather API returned implausible data: %w", err)
	}
	return c, nil
}
