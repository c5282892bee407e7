package handlers

import (
	"net/http"
	"time"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/observability"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
	"github.com/dshapiro789/NationalParkExplorer/internal/weather"
)

// weatherMaxAge is how long a fetched forecast is served without another
// remote call.
const weatherMaxAge = 30 * time.Minute

// WeatherResponse wraps a forecast with its availability. Weather is a
// nicety; when the service is down the park page still renders.
type WeatherResponse struct {
	Available bool            `json:"available"`
	Weather   *models.Weather `json:"weather,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// GetWeather returns the forecast for a coordinate, cached for 30 minutes.
// Forecast failures degrade to an unavailable payload instead of an error
// status.
func GetWeather(client *weather.Client, cache *querycache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat := r.URL.Query().Get("lat")
		lon := r.URL.Query().Get("lon")
		if lat == "" || lon == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "lat and lon are required")
			return
		}

		key := "weather/" + lat + "," + lon
		if value, ok, fresh := cache.Get(key, weatherMaxAge); ok && fresh {
			if cached, ok := value.(*models.Weather); ok {
				writeJSON(w, WeatherResponse{Available: true, Weather: cached})
				return
			}
		}

		forecast, err := client.Forecast(r.Context(), lat, lon)
		if err != nil {
			observability.RemoteFetches.WithLabelValues("weather", "error").Inc()
			writeJSON(w, WeatherResponse{Available: false, Message: err.Error()})
			return
		}

		observability.RemoteFetches.WithLabelValues("weather", "success").Inc()
		cache.Set(key, forecast)
		writeJSON(w, WeatherResponse{Available: true, Weather: forecast})
	}
}
