package handler

import (
	"net/http"
	"strconv"
)

// handleWeather handles GET /weather?lat=&lng=. Both coordinates are
// required.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		requestError(w, "lat and lng must be decimal coordinates")
		return
	}

	forecast, err := s.weather.Forecast(r.Context(), lat, lng)
	if err != nil {
		writeError(w, http.StatusBadGateway, "weather_unavailable", "weather service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}
