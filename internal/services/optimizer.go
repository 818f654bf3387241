package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"fleet-routing-service/internal/delay"
	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
	"fleet-routing-service/internal/platform/obs"
	"fleet-routing-service/internal/ports"

	"github.com/google/uuid"
)

// DefaultSolverTimeout bounds the external solver call. A timeout is treated
// as a recoverable failure, never left to block the request.
const DefaultSolverTimeout = 30 * time.Second

// DefaultRerouteBufferKm is the polyline buffer inside which incidents count
// against a route.
const DefaultRerouteBufferKm = 0.5

type OptimizerConfig struct {
	SolverTimeout    time.Duration
	FallbackSpeedKmh float64
	PoolingRadiusKm  float64
	RerouteBufferKm  float64
}

func (c OptimizerConfig) withDefaults() OptimizerConfig {
	if c.SolverTimeout <= 0 {
		c.SolverTimeout = DefaultSolverTimeout
	}
	if c.FallbackSpeedKmh <= 0 {
		c.FallbackSpeedKmh = DefaultFallbackSpeedKmh
	}
	if c.PoolingRadiusKm <= 0 {
		c.PoolingRadiusKm = DefaultPoolingRadiusKm
	}
	if c.RerouteBufferKm <= 0 {
		c.RerouteBufferKm = DefaultRerouteBufferKm
	}
	return c
}

// RouteOptimizer orchestrates stop sequencing: it consults the cache, calls
// the external solver (or the fallback heuristic when the solver fails),
// merges in current delay factors, and returns a plan with metrics.
//
// All dependencies are constructor-injected; the optimizer holds no shared
// mutable state of its own, so concurrent Optimize calls are independent.
type RouteOptimizer struct {
	solver   ports.SolverClient
	traffic  ports.TrafficProvider
	weather  ports.WeatherProvider
	cache    *RouteCache
	fallback FallbackOptimizer
	cfg      OptimizerConfig
}

func NewRouteOptimizer(
	solver ports.SolverClient,
	traffic ports.TrafficProvider,
	weather ports.WeatherProvider,
	cache *RouteCache,
	cfg OptimizerConfig,
) *RouteOptimizer {
	cfg = cfg.withDefaults()
	return &RouteOptimizer{
		solver:   solver,
		traffic:  traffic,
		weather:  weather,
		cache:    cache,
		fallback: FallbackOptimizer{SpeedKmh: cfg.FallbackSpeedKmh, PoolingRadiusKm: cfg.PoolingRadiusKm},
		cfg:      cfg,
	}
}

// Optimize produces a plan for the request.
//
// Input-validation and business-rule errors (no shipments, no suitable
// vehicle, malformed coordinates) surface to the caller. Solver and provider
// failures never do: the solver degrades to the fallback heuristic and the
// providers degrade to neutral conditions.
func (o *RouteOptimizer) Optimize(ctx context.Context, req domain.RouteRequest) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	if err := checkVehicleSuitability(req); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	now := time.Now().UTC()

	// Hash the request as the caller supplied it. Defaulting an unset
	// departure before fingerprinting would give otherwise identical
	// depart-now requests a different hash every second, disabling the cache
	// for the most common call shape.
	fingerprint := req.Fingerprint()
	if plan, ok := o.cache.Get(ctx, fingerprint); ok {
		return plan, nil
	}

	if req.DepartAt.IsZero() {
		req.DepartAt = now
	}

	plan, err := o.solve(ctx, req, now)
	if err != nil {
		log.Printf("solver unavailable, using fallback: err=%v", err)
		plan, err = o.fallback.Build(req, now)
		if err != nil {
			return nil, fmt.Errorf("optimize route: fallback: %w", err)
		}
	}

	traffic, weather := o.fetchConditions(ctx, req.Stops)
	ApplyDelays(plan, traffic, weather, o.cfg.RerouteBufferKm)

	plan.Fingerprint = fingerprint
	for i := range plan.Routes {
		plan.Routes[i].Fingerprint = fingerprint
	}

	o.cache.Put(ctx, fingerprint, plan)
	return plan, nil
}

// ReOptimize rebuilds a plan for a superseded route's stop set with departure
// now. The superseded route is never mutated; a brand-new plan and
// fingerprint result.
func (o *RouteOptimizer) ReOptimize(ctx context.Context, old *domain.Route, base domain.RouteRequest) (*domain.Plan, error) {
	if old == nil {
		return nil, &domain.InvalidInputError{Field: "route", Reason: "must be non-nil"}
	}

	req := base
	req.Stops = slices.Clone(old.Stops)
	req.DepartAt = time.Now().UTC()
	return o.Optimize(ctx, req)
}

// checkVehicleSuitability rejects requests no vehicle can serve: an empty
// fleet, or a single stop heavier or bulkier than every vehicle's limit.
func checkVehicleSuitability(req domain.RouteRequest) error {
	if len(req.Vehicles) == 0 {
		return domain.ErrNoSuitableVehicle
	}

	for _, s := range req.Stops {
		fits := false
		for _, v := range req.Vehicles {
			if v.CanCarry(s.WeightKg, s.VolumeM3) {
				fits = true
				break
			}
		}
		if !fits {
			return fmt.Errorf("stop %s exceeds every vehicle's limits: %w", s.ID, domain.ErrNoSuitableVehicle)
		}
	}
	return nil
}

// solve runs the external solver under the configured timeout and converts
// its response into a plan.
func (o *RouteOptimizer) solve(ctx context.Context, req domain.RouteRequest, now time.Time) (*domain.Plan, error) {
	if o.solver == nil {
		return nil, domain.ErrSolverUnavailable
	}

	payload := buildSolverPayload(req)

	ctx, cancel := context.WithTimeout(ctx, o.cfg.SolverTimeout)
	defer cancel()

	resp, err := o.solver.Solve(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSolverUnavailable, err)
	}

	return o.planFromSolver(req, resp, now)
}

// buildSolverPayload normalizes the request into the external solver's wire
// shape. High-security requests and restricted cargo augment the payload with
// secure-routing parameters.
func buildSolverPayload(req domain.RouteRequest) ports.SolverRequest {
	n := req.Normalized()

	payload := ports.SolverRequest{
		Stops:    make([]ports.SolverStop, 0, len(n.Stops)),
		Vehicles: make([]ports.SolverVehicle, 0, len(n.Vehicles)),
		Parameters: ports.SolverParameters{
			Prioritize:      string(n.Priority),
			MaxDelayMinutes: n.Constraints.MaxDelayMinutes,
			MaxDetourPct:    n.Constraints.MaxDetourPct,
			Pooling:         n.Pooling,
			AvoidZones:      n.Constraints.AvoidZones,
			PreferredRoutes: n.Constraints.PreferredRoutes,
		},
		DepartAt: n.DepartAt,
	}

	secure := n.SecurityLevel == domain.SecurityHigh
	for _, s := range n.Stops {
		if s.ShipmentType.Restricted() {
			secure = true
		}
		payload.Stops = append(payload.Stops, ports.SolverStop{
			ID:            s.ID,
			Location:      s.Coordinate.ToList(),
			Kind:          string(s.Kind),
			WeightKg:      s.WeightKg,
			VolumeM3:      s.VolumeM3,
			ScheduledTime: s.ScheduledTime,
		})
	}
	for _, v := range n.Vehicles {
		payload.Vehicles = append(payload.Vehicles, ports.SolverVehicle{
			ID:          v.ID,
			MaxWeightKg: v.MaxWeightKg,
			MaxVolumeM3: v.MaxVolumeM3,
		})
	}

	if secure {
		payload.Parameters.AlternateRoutes = 3
		payload.Parameters.SecureRouting = true
		payload.Parameters.AvoidHighRiskAreas = true
	}

	return payload
}

// planFromSolver accepts the solver's sequence and metrics verbatim.
func (o *RouteOptimizer) planFromSolver(req domain.RouteRequest, resp *ports.SolverResponse, now time.Time) (*domain.Plan, error) {
	if resp == nil || len(resp.Sequence) == 0 || len(resp.Legs) == 0 {
		return nil, fmt.Errorf("%w: incomplete solver response", domain.ErrSolverUnavailable)
	}

	byID := make(map[string]domain.Stop, len(req.Stops))
	for _, s := range req.Stops {
		byID[s.ID] = s
	}

	route := domain.Route{
		ID:                  uuid.NewString(),
		VehicleID:           resp.VehicleID,
		Sequence:            slices.Clone(resp.Sequence),
		DepartAt:            resp.DepartAt,
		CommittedArrival:    resp.ArriveAt,
		TotalDistanceKm:     resp.TotalDistanceKm,
		TotalDurationSec:    resp.TotalDurationSec,
		TrafficDelayMinutes: resp.TrafficDelayMinutes,
		CreatedAt:           now,
	}
	for _, id := range resp.Sequence {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: solver returned unknown stop %q", domain.ErrSolverUnavailable, id)
		}
		route.Stops = append(route.Stops, s)
	}

	cursor := resp.DepartAt
	for _, l := range resp.Legs {
		arrive := cursor.Add(time.Duration(l.BaseDurationSec) * time.Second)
		route.Legs = append(route.Legs, domain.Leg{
			FromStopID:          l.FromStopID,
			ToStopID:            l.ToStopID,
			DistanceKm:          l.DistanceKm,
			BaseDurationSec:     l.BaseDurationSec,
			DelayFactor:         1.0,
			AdjustedDurationSec: l.BaseDurationSec,
			DepartAt:            cursor,
			ArriveAt:            arrive,
		})
		if to, ok := byID[l.ToStopID]; ok {
			cursor = arrive.Add(time.Duration(EstimateServiceTime(to)) * time.Minute)
		} else {
			cursor = arrive
		}
	}

	return &domain.Plan{
		ID:                  uuid.NewString(),
		Routes:              []domain.Route{route},
		TotalDistanceKm:     route.TotalDistanceKm,
		TotalDurationSec:    route.TotalDurationSec,
		TrafficDelayMinutes: route.TrafficDelayMinutes,
		SolverUsed:          true,
		CreatedAt:           now,
	}, nil
}

// fetchConditions queries the traffic and weather providers for the stop
// set's region. Provider failures degrade to neutral snapshots so a transient
// outage never aborts an otherwise satisfiable optimization.
func (o *RouteOptimizer) fetchConditions(ctx context.Context, stops []domain.Stop) (*domain.TrafficSnapshot, *domain.WeatherSnapshot) {
	coords := make([]domain.Coordinate, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, s.Coordinate)
	}

	traffic := domain.NeutralTraffic()
	if o.traffic != nil {
		if box, err := geo.BoundingBox(coords); err == nil {
			if snap, err := o.traffic.Current(ctx, box); err != nil {
				log.Printf("traffic provider failed, assuming neutral conditions: err=%v", err)
			} else if snap != nil {
				traffic = snap
			}
		}
	}

	weather := domain.NeutralWeather()
	if o.weather != nil {
		if center, err := geo.Centroid(coords); err == nil {
			if snap, err := o.weather.Current(ctx, center); err != nil {
				log.Printf("weather provider failed, assuming neutral conditions: err=%v", err)
			} else if snap != nil {
				weather = snap
			}
		}
	}

	return traffic, weather
}

// ApplyDelays merges current conditions into every leg: the overall
// traffic/weather factor, compounded with the worst incident near the route
// polyline, scales base durations, and arrival times are re-chained with
// per-stop dwell times.
func ApplyDelays(plan *domain.Plan, traffic *domain.TrafficSnapshot, weather *domain.WeatherSnapshot, bufferKm float64) {
	if plan == nil || traffic == nil || weather == nil {
		return
	}

	plan.TotalDurationSec = 0
	plan.TrafficDelayMinutes = 0

	for i := range plan.Routes {
		route := &plan.Routes[i]

		factor := delay.Overall(traffic.OverallCondition, *weather)
		factor *= delay.IncidentImpact(route.Polyline(), traffic.Incidents, bufferKm)

		recomputeSchedule(route, factor)

		plan.TotalDurationSec += route.TotalDurationSec
		plan.TrafficDelayMinutes += route.TrafficDelayMinutes
	}
}

// recomputeSchedule rewrites leg timings for a delay factor, inserting dwell
// time between legs.
func recomputeSchedule(route *domain.Route, factor float64) {
	cursor := route.DepartAt
	route.TotalDurationSec = 0
	route.TrafficDelayMinutes = 0

	for li := range route.Legs {
		leg := &route.Legs[li]

		leg.DelayFactor = factor
		leg.AdjustedDurationSec = int(math.Round(float64(leg.BaseDurationSec) * factor))
		leg.DepartAt = cursor
		leg.ArriveAt = cursor.Add(time.Duration(leg.AdjustedDurationSec) * time.Second)

		route.TotalDurationSec += leg.AdjustedDurationSec
		route.TrafficDelayMinutes += float64(leg.AdjustedDurationSec-leg.BaseDurationSec) / 60

		cursor = leg.ArriveAt
		if to, ok := route.StopByID(leg.ToStopID); ok && li < len(route.Legs)-1 {
			dwell := time.Duration(EstimateServiceTime(to)) * time.Minute
			cursor = cursor.Add(dwell)
			route.TotalDurationSec += int(dwell.Seconds())
		}
	}

	if len(route.Legs) > 0 {
		route.CommittedArrival = route.Legs[len(route.Legs)-1].ArriveAt
	}
}
