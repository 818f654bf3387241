package handlers

import (
	"fmt"
	"strings"
	"time"

	"fleet-routing-service/internal/api/dto"
	"fleet-routing-service/internal/domain"
)

// stopFromDTO rejects unrecognized enum values at the boundary.
func stopFromDTO(in dto.StopRequest) (domain.Stop, error) {
	kind, err := domain.ParseStopKind(in.Kind)
	if err != nil {
		return domain.Stop{}, err
	}
	security, err := domain.ParseSecurityLevel(in.SecurityLevel)
	if err != nil {
		return domain.Stop{}, err
	}
	shipType, err := domain.ParseShipmentType(in.ShipmentType)
	if err != nil {
		return domain.Stop{}, err
	}

	s := domain.Stop{
		ID:                in.ID,
		Coordinate:        domain.Coordinate{Lon: in.Lon, Lat: in.Lat},
		Kind:              kind,
		WeightKg:          in.WeightKg,
		VolumeM3:          in.VolumeM3,
		RequiresSignature: in.RequiresSignature,
		SecurityLevel:     security,
		ShipmentType:      shipType,
		ScheduledTime:     in.ScheduledTime,
	}
	if err := s.Validate(); err != nil {
		return domain.Stop{}, err
	}
	return s, nil
}

func requestFromDTO(in dto.OptimizeRequest, extraStops []domain.Stop) (domain.RouteRequest, error) {
	priority, err := domain.ParsePriorityMode(in.Priority)
	if err != nil {
		return domain.RouteRequest{}, err
	}
	security, err := domain.ParseSecurityLevel(in.SecurityLevel)
	if err != nil {
		return domain.RouteRequest{}, err
	}

	req := domain.RouteRequest{
		Constraints: domain.Constraints{
			MaxDelayMinutes: in.Constraints.MaxDelayMinutes,
			MaxDetourPct:    in.Constraints.MaxDetourPct,
			AvoidZones:      in.Constraints.AvoidZones,
			PreferredRoutes: in.Constraints.PreferredRoutes,
		},
		Priority:        priority,
		Pooling:         in.Pooling,
		PoolingRadiusKm: in.PoolingRadiusKm,
		SecurityLevel:   security,
	}
	if in.DepartAt != nil {
		req.DepartAt = *in.DepartAt
	}

	for i, sd := range in.Stops {
		s, err := stopFromDTO(sd)
		if err != nil {
			return domain.RouteRequest{}, fmt.Errorf("stops[%d]: %w", i, err)
		}
		req.Stops = append(req.Stops, s)
	}
	req.Stops = append(req.Stops, extraStops...)

	for _, vd := range in.Vehicles {
		req.Vehicles = append(req.Vehicles, domain.Vehicle{
			ID:               vd.ID,
			Kind:             vd.Kind,
			MaxWeightKg:      vd.MaxWeightKg,
			MaxVolumeM3:      vd.MaxVolumeM3,
			EfficiencyKmPerL: vd.EfficiencyKmPerL,
			SecureTransport:  vd.SecureTransport,
		})
	}

	return req, nil
}

func routeToDTO(r domain.Route) dto.RouteResponse {
	out := dto.RouteResponse{
		ID:                  r.ID,
		VehicleID:           r.VehicleID,
		Sequence:            r.Sequence,
		TotalDistanceKm:     r.TotalDistanceKm,
		TotalDurationSec:    r.TotalDurationSec,
		TrafficDelayMinutes: r.TrafficDelayMinutes,
		FuelLiters:          r.FuelLiters,
		CO2Kg:               r.CO2Kg,
		DepartAt:            r.DepartAt,
		CommittedArrival:    r.CommittedArrival,
		Fingerprint:         r.Fingerprint,
	}
	for _, l := range r.Legs {
		out.Legs = append(out.Legs, dto.LegResponse{
			FromStopID:          l.FromStopID,
			ToStopID:            l.ToStopID,
			DistanceKm:          l.DistanceKm,
			BaseDurationSec:     l.BaseDurationSec,
			DelayFactor:         l.DelayFactor,
			AdjustedDurationSec: l.AdjustedDurationSec,
			DepartAt:            l.DepartAt,
			ArriveAt:            l.ArriveAt,
		})
	}
	return out
}

func planToDTO(p *domain.Plan) dto.PlanResponse {
	out := dto.PlanResponse{
		ID:                  p.ID,
		Fingerprint:         p.Fingerprint,
		UnassignedShipments: p.UnassignedShipments,
		TotalDistanceKm:     p.TotalDistanceKm,
		TotalDurationSec:    p.TotalDurationSec,
		TrafficDelayMinutes: p.TrafficDelayMinutes,
		FuelLiters:          p.FuelLiters,
		CO2Kg:               p.CO2Kg,
		SolverUsed:          p.SolverUsed,
		CreatedAt:           p.CreatedAt,
	}
	if out.UnassignedShipments == nil {
		out.UnassignedShipments = []string{}
	}
	for _, r := range p.Routes {
		out.Routes = append(out.Routes, routeToDTO(r))
	}
	return out
}

func routeFromEnvelope(in dto.RouteEnvelope) (*domain.Route, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, &domain.InvalidInputError{Field: "route.id", Reason: "must be non-empty"}
	}
	r := &domain.Route{
		ID:               in.ID,
		VehicleID:        in.VehicleID,
		Sequence:         in.Sequence,
		TotalDistanceKm:  in.TotalDistanceKm,
		DepartAt:         in.DepartAt,
		CommittedArrival: in.CommittedArrival,
	}
	for i, sd := range in.Stops {
		s, err := stopFromDTO(sd)
		if err != nil {
			return nil, fmt.Errorf("route.stops[%d]: %w", i, err)
		}
		r.Stops = append(r.Stops, s)
	}
	for _, ld := range in.Legs {
		r.Legs = append(r.Legs, domain.Leg{
			FromStopID:          ld.FromStopID,
			ToStopID:            ld.ToStopID,
			DistanceKm:          ld.DistanceKm,
			BaseDurationSec:     ld.BaseDurationSec,
			DelayFactor:         ld.DelayFactor,
			AdjustedDurationSec: ld.AdjustedDurationSec,
			DepartAt:            ld.DepartAt,
			ArriveAt:            ld.ArriveAt,
		})
	}
	return r, nil
}

func trafficFromDTO(in *dto.TrafficSnapshot) *domain.TrafficSnapshot {
	if in == nil {
		return nil
	}
	// Lowercase like the provider adapters do, so case-sensitive checks
	// downstream see canonical values regardless of the caller's casing.
	snap := &domain.TrafficSnapshot{
		OverallCondition: domain.TrafficCondition(strings.ToLower(in.OverallCondition)),
		ObservedAt:       in.Timestamp,
	}
	for _, inc := range in.Incidents {
		snap.Incidents = append(snap.Incidents, domain.TrafficIncident{
			Location:    domain.Coordinate{Lon: inc.Lon, Lat: inc.Lat},
			Severity:    domain.IncidentSeverity(strings.ToLower(inc.Severity)),
			Description: inc.Description,
		})
	}
	return snap
}

func weatherFromDTO(in *dto.WeatherSnapshot) *domain.WeatherSnapshot {
	if in == nil {
		return nil
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &domain.WeatherSnapshot{
		Condition:       strings.ToLower(in.Condition),
		PrecipitationMm: in.PrecipitationMm,
		VisibilityM:     in.VisibilityM,
		WindSpeedKmh:    in.WindSpeedKmh,
		TemperatureC:    in.TemperatureC,
		ObservedAt:      ts,
	}
}
