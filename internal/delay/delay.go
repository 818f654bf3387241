// Package delay converts traffic and weather observations into multiplicative
// delay factors applied to leg durations.
package delay

import (
	"strings"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
)

// TrafficFactor maps the overall congestion level to a duration multiplier.
// Unrecognized conditions default to 1.0.
func TrafficFactor(c domain.TrafficCondition) float64 {
	switch domain.TrafficCondition(strings.ToLower(string(c))) {
	case domain.TrafficFreeFlow:
		return 0.9
	case domain.TrafficLight:
		return 1.0
	case domain.TrafficModerate:
		return 1.2
	case domain.TrafficHeavy:
		return 1.5
	case domain.TrafficSevere:
		return 2.0
	default:
		return 1.0
	}
}

// IncidentFactor maps an incident severity to a duration multiplier.
// Case-insensitive; unknown severities default to 1.0.
func IncidentFactor(s domain.IncidentSeverity) float64 {
	switch domain.IncidentSeverity(strings.ToLower(string(s))) {
	case domain.IncidentLow:
		return 1.1
	case domain.IncidentMedium:
		return 1.3
	case domain.IncidentHigh:
		return 1.7
	case domain.IncidentSevere:
		return 2.5
	default:
		return 1.0
	}
}

// WeatherFactor composes four independent bands multiplicatively:
// precipitation, visibility, wind, and an icing band around freezing.
// Order-independent because every band contributes its own multiplier.
func WeatherFactor(w domain.WeatherSnapshot) float64 {
	factor := 1.0

	switch {
	case w.PrecipitationMm > 10:
		factor *= 1.5
	case w.PrecipitationMm > 2:
		factor *= 1.2
	}

	// A zero reading is a whiteout, not an unset field: the factor must not
	// drop as visibility degrades toward zero.
	switch {
	case w.VisibilityM < 1000:
		factor *= 1.6
	case w.VisibilityM < 5000:
		factor *= 1.2
	}

	switch {
	case w.WindSpeedKmh > 50:
		factor *= 1.4
	case w.WindSpeedKmh > 30:
		factor *= 1.15
	}

	// Icing band: temperatures straddling freezing are worse than a hard
	// freeze because of refreeze cycles on the road surface.
	if w.TemperatureC >= -2 && w.TemperatureC <= 2 {
		factor *= 1.5
	}

	return factor
}

// Overall is the combined traffic and weather multiplier for a route.
func Overall(traffic domain.TrafficCondition, weather domain.WeatherSnapshot) float64 {
	return TrafficFactor(traffic) * WeatherFactor(weather)
}

// IncidentImpact returns the worst incident multiplier among incidents whose
// location falls within bufferKm of the route polyline, or 1.0 when none do.
func IncidentImpact(line []domain.Coordinate, incidents []domain.TrafficIncident, bufferKm float64) float64 {
	impact := 1.0
	for _, inc := range incidents {
		if !geo.IsNearPolyline(inc.Location, line, bufferKm) {
			continue
		}
		if f := IncidentFactor(inc.Severity); f > impact {
			impact = f
		}
	}
	return impact
}
