package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-routing-service/internal/domain"
)

// HTTPWeatherProvider queries the weather service by point.
type HTTPWeatherProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPWeatherProvider(baseURL, apiKey string) (*HTTPWeatherProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("weather provider base URL is empty")
	}
	return &HTTPWeatherProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

type weatherDTO struct {
	Condition     string    `json:"condition"`
	Precipitation float64   `json:"precipitation"`
	Visibility    float64   `json:"visibility"`
	WindSpeed     float64   `json:"wind_speed"`
	Temperature   float64   `json:"temperature"`
	Timestamp     time.Time `json:"timestamp"`
}

// Current fetches weather around the point (typically the stop-set centroid).
func (p *HTTPWeatherProvider) Current(ctx context.Context, at domain.Coordinate) (*domain.WeatherSnapshot, error) {
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("weather provider: %w", err)
	}

	q := url.Values{}
	q.Set("lon", fmt.Sprintf("%f", at.Lon))
	q.Set("lat", fmt.Sprintf("%f", at.Lat))

	var dto weatherDTO
	if err := getJSON(ctx, p.session, p.baseURL+"/v1/weather?"+q.Encode(), p.apiKey, &dto); err != nil {
		return nil, fmt.Errorf("weather provider: %w", err)
	}

	return &domain.WeatherSnapshot{
		Condition:       strings.ToLower(dto.Condition),
		PrecipitationMm: dto.Precipitation,
		VisibilityM:     dto.Visibility,
		WindSpeedKmh:    dto.WindSpeed,
		TemperatureC:    dto.Temperature,
		ObservedAt:      dto.Timestamp,
	}, nil
}
