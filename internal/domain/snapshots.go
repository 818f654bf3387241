package domain

import "time"

// TrafficCondition is the overall congestion level reported by the traffic
// provider. Unknown values are tolerated and default to a neutral delay
// factor in the delay model.
type TrafficCondition string

const (
	TrafficFreeFlow TrafficCondition = "free_flow"
	TrafficLight    TrafficCondition = "light"
	TrafficModerate TrafficCondition = "moderate"
	TrafficHeavy    TrafficCondition = "heavy"
	TrafficSevere   TrafficCondition = "severe"
)

// IncidentSeverity of a single reported traffic incident.
type IncidentSeverity string

const (
	IncidentLow    IncidentSeverity = "low"
	IncidentMedium IncidentSeverity = "medium"
	IncidentHigh   IncidentSeverity = "high"
	IncidentSevere IncidentSeverity = "severe"
)

// TrafficIncident is one localized disruption near or on a route.
type TrafficIncident struct {
	Location    Coordinate
	Severity    IncidentSeverity
	Description string
}

// TrafficSnapshot is a read-only observation from the traffic provider.
// The core never persists snapshots.
type TrafficSnapshot struct {
	OverallCondition TrafficCondition
	Incidents        []TrafficIncident
	ObservedAt       time.Time
}

// WeatherSnapshot is a read-only observation from the weather provider.
type WeatherSnapshot struct {
	Condition       string // clear, rain, snow, fog, storm, blizzard
	PrecipitationMm float64
	VisibilityM     float64
	WindSpeedKmh    float64
	TemperatureC    float64
	ObservedAt      time.Time
}

// NeutralTraffic is used when the traffic provider is unreachable:
// optimization proceeds with no congestion penalty rather than failing.
func NeutralTraffic() *TrafficSnapshot {
	return &TrafficSnapshot{OverallCondition: TrafficLight, ObservedAt: time.Now().UTC()}
}

// NeutralWeather mirrors NeutralTraffic for the weather provider.
func NeutralWeather() *WeatherSnapshot {
	return &WeatherSnapshot{Condition: "clear", VisibilityM: 10000, TemperatureC: 15, ObservedAt: time.Now().UTC()}
}
