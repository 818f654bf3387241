package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"fleet-routing-service/internal/delay"
	"fleet-routing-service/internal/domain"
)

// Decision is the outcome of evaluating a live route against fresh
// conditions.
type Decision string

const (
	DecisionKeep       Decision = "keep"
	DecisionPatchETAs  Decision = "patch-etas"
	DecisionReoptimize Decision = "reoptimize"
)

// Weather conditions that force a full re-optimization regardless of factor
// deltas.
var severeWeatherConditions = map[string]struct{}{
	"storm":    {},
	"blizzard": {},
}

const (
	// Visibility below this forces re-optimization.
	minSafeVisibilityM = 200.0
	// Slack on the committed arrival before a severe-traffic overrun forces
	// re-optimization.
	defaultCommitSlack = 30 * time.Minute
	// Overall factor delta below this is not a material change.
	defaultMaterialDelta = 0.05
)

type RerouteMonitorConfig struct {
	BufferKm      float64
	CommitSlack   time.Duration
	MaterialDelta float64
}

func (c RerouteMonitorConfig) withDefaults() RerouteMonitorConfig {
	if c.BufferKm <= 0 {
		c.BufferKm = DefaultRerouteBufferKm
	}
	if c.CommitSlack <= 0 {
		c.CommitSlack = defaultCommitSlack
	}
	if c.MaterialDelta <= 0 {
		c.MaterialDelta = defaultMaterialDelta
	}
	return c
}

// RerouteMonitor decides, per evaluation tick, whether a live route should be
// kept, ETA-patched, or fully re-optimized.
//
// Each evaluation is a pure function of the route and the snapshots; the only
// retained state is the per-route lifecycle and the last observed delay
// factor, so skipped or cancelled ticks leave nothing inconsistent.
type RerouteMonitor struct {
	mu         sync.Mutex
	states     map[string]domain.RouteState
	lastFactor map[string]float64
	cfg        RerouteMonitorConfig
}

func NewRerouteMonitor(cfg RerouteMonitorConfig) *RerouteMonitor {
	return &RerouteMonitor{
		states:     make(map[string]domain.RouteState),
		lastFactor: make(map[string]float64),
		cfg:        cfg.withDefaults(),
	}
}

// Track registers a freshly created route as stable with a neutral baseline
// factor.
func (m *RerouteMonitor) Track(route *domain.Route) {
	if route == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[route.ID] = domain.RouteStable
	m.lastFactor[route.ID] = 1.0
}

// State reports the lifecycle state of a tracked route.
func (m *RerouteMonitor) State(routeID string) domain.RouteState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[routeID]; ok {
		return s
	}
	return domain.RouteStable
}

// Evaluate compares a live route against fresh traffic and weather.
//
// Reoptimize triggers when a severe incident sits on the route, when weather
// turns dangerous, or when severe congestion pushes the projected arrival
// past the committed arrival by more than the commit slack. A non-severe but
// material factor change patches ETAs; otherwise the route is kept.
func (m *RerouteMonitor) Evaluate(route *domain.Route, traffic *domain.TrafficSnapshot, weather *domain.WeatherSnapshot) Decision {
	if route == nil {
		return DecisionKeep
	}
	if traffic == nil {
		traffic = domain.NeutralTraffic()
	}
	if weather == nil {
		weather = domain.NeutralWeather()
	}

	line := route.Polyline()

	if m.severeIncidentOnRoute(line, traffic) || dangerousWeather(weather) {
		m.markPending(route.ID)
		return DecisionReoptimize
	}

	factor := delay.Overall(traffic.OverallCondition, *weather)
	factor *= delay.IncidentImpact(line, traffic.Incidents, m.cfg.BufferKm)

	if traffic.OverallCondition == domain.TrafficSevere {
		projected := projectedArrival(route, factor)
		if projected.After(route.CommittedArrival.Add(m.cfg.CommitSlack)) {
			m.markPending(route.ID)
			return DecisionReoptimize
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	last, ok := m.lastFactor[route.ID]
	if !ok {
		last = 1.0
	}
	if math.Abs(factor-last) > m.cfg.MaterialDelta {
		m.lastFactor[route.ID] = factor
		m.states[route.ID] = domain.RouteStable
		return DecisionPatchETAs
	}

	return DecisionKeep
}

// PatchETAs recomputes every leg's adjusted duration and arrival time for the
// current conditions, returning a new Route value. The input route is not
// mutated and its state remains stable.
func (m *RerouteMonitor) PatchETAs(route *domain.Route, traffic *domain.TrafficSnapshot, weather *domain.WeatherSnapshot) *domain.Route {
	if route == nil {
		return nil
	}
	if traffic == nil {
		traffic = domain.NeutralTraffic()
	}
	if weather == nil {
		weather = domain.NeutralWeather()
	}

	factor := delay.Overall(traffic.OverallCondition, *weather)
	factor *= delay.IncidentImpact(route.Polyline(), traffic.Incidents, m.cfg.BufferKm)

	patched := *route
	patched.Legs = append([]domain.Leg(nil), route.Legs...)
	recomputeSchedule(&patched, factor)

	m.mu.Lock()
	m.lastFactor[route.ID] = factor
	m.states[route.ID] = domain.RouteStable
	m.mu.Unlock()

	return &patched
}

// Supersede marks a route replaced by a fresh optimization. The superseded
// route value is left untouched for auditing; only its lifecycle state moves.
func (m *RerouteMonitor) Supersede(routeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[routeID] = domain.RouteSuperseded
	delete(m.lastFactor, routeID)
}

func (m *RerouteMonitor) markPending(routeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[routeID] = domain.RouteReroutePending
}

func (m *RerouteMonitor) severeIncidentOnRoute(line []domain.Coordinate, traffic *domain.TrafficSnapshot) bool {
	for _, inc := range traffic.Incidents {
		if domain.IncidentSeverity(strings.ToLower(string(inc.Severity))) != domain.IncidentSevere {
			continue
		}
		if delay.IncidentImpact(line, []domain.TrafficIncident{inc}, m.cfg.BufferKm) > 1.0 {
			return true
		}
	}
	return false
}

func dangerousWeather(w *domain.WeatherSnapshot) bool {
	if _, ok := severeWeatherConditions[strings.ToLower(w.Condition)]; ok {
		return true
	}
	return w.VisibilityM < minSafeVisibilityM
}

// projectedArrival re-chains leg durations under a factor without touching
// the route.
func projectedArrival(route *domain.Route, factor float64) time.Time {
	cursor := route.DepartAt
	for i, leg := range route.Legs {
		adjusted := time.Duration(math.Round(float64(leg.BaseDurationSec)*factor)) * time.Second
		cursor = cursor.Add(adjusted)
		if i < len(route.Legs)-1 {
			if to, ok := route.StopByID(leg.ToStopID); ok {
				cursor = cursor.Add(time.Duration(EstimateServiceTime(to)) * time.Minute)
			}
		}
	}
	return cursor
}
