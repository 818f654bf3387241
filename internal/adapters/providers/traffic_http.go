// Package providers contains HTTP clients for the external traffic and
// weather services consumed by the optimizer and the reroute monitor.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
)

// HTTPTrafficProvider queries the traffic service by bounding box.
type HTTPTrafficProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPTrafficProvider(baseURL, apiKey string) (*HTTPTrafficProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("traffic provider base URL is empty")
	}
	return &HTTPTrafficProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

type trafficIncidentDTO struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
}

type trafficDTO struct {
	OverallCondition string               `json:"overall_condition"`
	Incidents        []trafficIncidentDTO `json:"incidents"`
	Timestamp        time.Time            `json:"timestamp"`
}

// Current fetches congestion and incidents for the area. Unknown condition or
// severity strings pass through untouched; the delay model treats them as
// neutral rather than rejecting the whole snapshot.
func (p *HTTPTrafficProvider) Current(ctx context.Context, area geo.Bounds) (*domain.TrafficSnapshot, error) {
	q := url.Values{}
	q.Set("min_lon", fmt.Sprintf("%f", area.MinLon))
	q.Set("min_lat", fmt.Sprintf("%f", area.MinLat))
	q.Set("max_lon", fmt.Sprintf("%f", area.MaxLon))
	q.Set("max_lat", fmt.Sprintf("%f", area.MaxLat))

	var dto trafficDTO
	if err := getJSON(ctx, p.session, p.baseURL+"/v1/traffic?"+q.Encode(), p.apiKey, &dto); err != nil {
		return nil, fmt.Errorf("traffic provider: %w", err)
	}

	snap := &domain.TrafficSnapshot{
		OverallCondition: domain.TrafficCondition(strings.ToLower(dto.OverallCondition)),
		ObservedAt:       dto.Timestamp,
	}
	for _, inc := range dto.Incidents {
		if len(inc.Coordinates) != 2 {
			continue
		}
		snap.Incidents = append(snap.Incidents, domain.TrafficIncident{
			Location:    domain.Coordinate{Lon: inc.Coordinates[0], Lat: inc.Coordinates[1]},
			Severity:    domain.IncidentSeverity(strings.ToLower(inc.Severity)),
			Description: inc.Description,
		})
	}

	return snap, nil
}

func getJSON(ctx context.Context, session *http.Client, rawURL, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
