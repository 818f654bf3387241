package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"

	"github.com/google/uuid"
)

// DefaultFallbackSpeedKmh is the assumed average travel speed when the
// external solver is unavailable and legs are derived from great-circle
// distances.
const DefaultFallbackSpeedKmh = 60.0

// Diesel combustion factor for CO2 reporting.
const co2KgPerLiter = 2.31

// FallbackOptimizer builds heuristic plans without the external solver:
// capacity-ordered vehicle assignment over proximity groups, with legs chained
// at a fixed assumed speed.
type FallbackOptimizer struct {
	SpeedKmh        float64
	PoolingRadiusKm float64
}

// Build produces a plan for the request. The caller has already validated
// stops and vehicle suitability.
func (f FallbackOptimizer) Build(req domain.RouteRequest, now time.Time) (*domain.Plan, error) {
	speed := f.SpeedKmh
	if speed <= 0 {
		speed = DefaultFallbackSpeedKmh
	}

	departAt := req.DepartAt
	if departAt.IsZero() {
		departAt = now
	}

	vehicles := slices.Clone(req.Vehicles)
	slices.SortFunc(vehicles, func(a, b domain.Vehicle) int {
		if a.Capacity() != b.Capacity() {
			if a.Capacity() > b.Capacity() {
				return -1
			}
			return 1
		}
		// Tie-breaker keeps assignment deterministic.
		return strings.Compare(a.ID, b.ID)
	})

	var groups [][]domain.Stop
	if req.Pooling {
		radius := req.PoolingRadiusKm
		if radius <= 0 {
			radius = f.PoolingRadiusKm
		}
		groups = ClusterByProximity(req.Stops, radius).AllGroups()
	} else {
		groups = [][]domain.Stop{slices.Clone(req.Stops)}
	}

	plan := &domain.Plan{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}

	nextVehicle := 0
	for _, group := range groups {
		var weight, volume float64
		for _, s := range group {
			weight += s.WeightKg
			volume += s.VolumeM3
		}

		// One group per vehicle in capacity order; skip vehicles too small
		// for this group rather than splitting it.
		assigned := -1
		for vi := nextVehicle; vi < len(vehicles); vi++ {
			if vehicles[vi].CanCarry(weight, volume) {
				assigned = vi
				break
			}
		}
		if assigned < 0 {
			for _, s := range group {
				plan.UnassignedShipments = append(plan.UnassignedShipments, s.ID)
			}
			continue
		}
		nextVehicle = assigned + 1

		route := f.buildRoute(group, vehicles[assigned], departAt, speed, now)
		plan.Routes = append(plan.Routes, route)
		plan.TotalDistanceKm += route.TotalDistanceKm
		plan.TotalDurationSec += route.TotalDurationSec
		plan.FuelLiters += route.FuelLiters
		plan.CO2Kg += route.CO2Kg
	}

	return plan, nil
}

// buildRoute chains legs through a group's stops in scheduled-time order.
func (f FallbackOptimizer) buildRoute(group []domain.Stop, vehicle domain.Vehicle, departAt time.Time, speedKmh float64, now time.Time) domain.Route {
	stops := slices.Clone(group)
	slices.SortFunc(stops, func(a, b domain.Stop) int {
		if !a.ScheduledTime.Equal(b.ScheduledTime) {
			if a.ScheduledTime.Before(b.ScheduledTime) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	route := domain.Route{
		ID:        uuid.NewString(),
		VehicleID: vehicle.ID,
		Stops:     stops,
		DepartAt:  departAt,
		CreatedAt: now,
	}
	for _, s := range stops {
		route.Sequence = append(route.Sequence, s.ID)
	}

	cursor := departAt
	for i := 0; i < len(stops)-1; i++ {
		from, to := stops[i], stops[i+1]

		km := geo.Distance(from.Coordinate, to.Coordinate)
		durSec := int(math.Round(km / speedKmh * 3600))

		leg := domain.Leg{
			FromStopID:          from.ID,
			ToStopID:            to.ID,
			DistanceKm:          km,
			BaseDurationSec:     durSec,
			DelayFactor:         1.0,
			AdjustedDurationSec: durSec,
			DepartAt:            cursor,
			ArriveAt:            cursor.Add(time.Duration(durSec) * time.Second),
		}
		route.Legs = append(route.Legs, leg)
		route.TotalDistanceKm += km
		route.TotalDurationSec += durSec

		cursor = leg.ArriveAt
		if i < len(stops)-2 {
			// Dwell at the arrival stop before the next leg departs.
			dwell := time.Duration(EstimateServiceTime(to)) * time.Minute
			cursor = cursor.Add(dwell)
			route.TotalDurationSec += int(dwell.Seconds())
		}
	}

	if len(route.Legs) > 0 {
		route.CommittedArrival = route.Legs[len(route.Legs)-1].ArriveAt
	} else {
		route.CommittedArrival = departAt
	}

	if vehicle.EfficiencyKmPerL > 0 {
		route.FuelLiters = route.TotalDistanceKm / vehicle.EfficiencyKmPerL
		route.CO2Kg = route.FuelLiters * co2KgPerLiter
	}

	return route
}
