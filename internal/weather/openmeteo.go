// Package weather fetches forecasts from the Open-Meteo API for the trip
// weather widget. Open-Meteo is keyless and JSON-only, so the client is a
// plain HTTP GET with query parameters.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com"

// Forecast is the widget-shaped view of the weather at a location.
type Forecast struct {
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Temperature float64       `json:"temperature"`
	WindSpeed   float64       `json:"windSpeed"`
	Condition   string        `json:"condition"`
	Daily       []DayForecast `json:"forecast"`
}

// DayForecast is one day of the short-range outlook.
type DayForecast struct {
	Day       string  `json:"day"`
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
}

// Client calls the Open-Meteo forecast API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// openMeteoResponse mirrors the subset of the API response the widget needs.
type openMeteoResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		WeatherCode      []int     `json:"weathercode"`
	} `json:"daily"`
}

// Forecast fetches the current conditions and a four-day outlook.
func (c *Client) Forecast(ctx context.Context, lat, lng float64) (Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("daily", "temperature_2m_max,weathercode")
	params.Set("timezone", "auto")
	params.Set("forecast_days", "4")

	reqURL := c.baseURL + "/v1/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("weather.Client.Forecast: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("weather.Client.Forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("weather.Client.Forecast: unexpected status %s", resp.Status)
	}

	var om openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&om); err != nil {
		return Forecast{}, fmt.Errorf("weather.Client.Forecast: decode: %w", err)
	}

	f := Forecast{
		Latitude:    om.Latitude,
		Longitude:   om.Longitude,
		Temperature: om.CurrentWeather.Temperature,
		WindSpeed:   om.CurrentWeather.WindSpeed,
		Condition:   condition(om.CurrentWeather.WeatherCode),
	}
	for i, day := range om.Daily.Time {
		if i >= len(om.Daily.Temperature2mMax) || i >= len(om.Daily.WeatherCode) {
			break
		}
		f.Daily = append(f.Daily, DayForecast{
			Day:       dayLabel(day),
			Temp:      om.Daily.Temperature2mMax[i],
			Condition: condition(om.Daily.WeatherCode[i]),
		})
	}
	return f, nil
}

// condition maps a WMO weather code to the widget's Italian labels.
func condition(code int) string {
	switch {
	case code <= 1:
		return "Soleggiato"
	case code <= 48:
		return "Nuvoloso"
	default:
		return "Piovoso"
	}
}

// dayLabels are the Italian short weekday names, indexed by time.Weekday.
var dayLabels = [7]string{"Dom", "Lun", "Mar", "Mer", "Gio", "Ven", "Sab"}

// dayLabel formats an ISO date as a short Italian weekday; unparsable dates
// pass through untouched.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return dayLabels[t.Weekday()]
}
