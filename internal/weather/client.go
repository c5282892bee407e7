// Package weather fetches forecasts for park coordinates.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

const (
	requestTimeout = 10 * time.Second
	forecastDays   = 5
)

// Failure modes the handler reports to the user verbatim.
var (
	ErrUnavailable  = errors.New("weather service temporarily unavailable")
	ErrRateLimited  = errors.New("weather service rate limit exceeded")
	ErrRequestTimed = errors.New("weather service request timed out")
)

// Client talks to the weather API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a weather client for the API at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type forecastResponse struct {
	Current struct {
		TempF      float64 `json:"temp_f"`
		FeelslikeF float64 `json:"feelslike_f"`
		Humidity   int     `json:"humidity"`
		Condition  struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date string `json:"date"`
			Day  struct {
				MintempF  float64 `json:"mintemp_f"`
				MaxtempF  float64 `json:"maxtemp_f"`
				Condition struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Forecast fetches the current conditions and five-day forecast for the
// given coordinate. API failures map to the descriptive sentinel errors.
func (c *Client) Forecast(ctx context.Context, lat, lon string) (*models.Weather, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", lat+","+lon)
	query.Set("days", fmt.Sprintf("%d", forecastDays))
	query.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast.json?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrRequestTimed
		}
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnavailable
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("weather API returned %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}

	return transform(payload), nil
}

func transform(payload forecastResponse) *models.Weather {
	weather := &models.Weather{
		Current: models.CurrentConditions{
			Temp:      payload.Current.TempF,
			FeelsLike: payload.Current.FeelslikeF,
			Humidity:  payload.Current.Humidity,
			Weather: []models.WeatherCondition{{
				Main:        payload.Current.Condition.Text,
				Description: payload.Current.Condition.Text,
				Icon:        payload.Current.Condition.Icon,
			}},
		},
		Daily: []models.DailyForecast{},
	}

	for _, day := range payload.Forecast.Forecastday {
		var unix int64
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			unix = t.Unix()
		}
		weather.Daily = append(weather.Daily, models.DailyForecast{
			Date:    unix,
			TempMin: day.Day.MintempF,
			TempMax: day.Day.MaxtempF,
			Weather: []models.WeatherCondition{{
				Main:        day.Day.Condition.Text,
				Description: day.Day.Condition.Text,
				Icon:        day.Day.Condition.Icon,
			}},
		})
	}
	return weather
}
