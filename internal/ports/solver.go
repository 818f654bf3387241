package ports

import (
	"context"
	"time"
)

// SolverStop is one stop in the normalized solver payload.
type SolverStop struct {
	ID            string    `json:"id"`
	Location      []float64 `json:"location"` // [lon, lat]
	Kind          string    `json:"kind"`
	WeightKg      float64   `json:"weight_kg"`
	VolumeM3      float64   `json:"volume_m3"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// SolverVehicle is one candidate vehicle in the payload.
type SolverVehicle struct {
	ID          string  `json:"id"`
	MaxWeightKg float64 `json:"max_weight_kg"`
	MaxVolumeM3 float64 `json:"max_volume_m3"`
}

// SolverParameters carries optimization settings and security augmentation.
type SolverParameters struct {
	Prioritize         string   `json:"prioritize"`
	MaxDelayMinutes    int      `json:"max_delay_minutes,omitempty"`
	MaxDetourPct       float64  `json:"max_detour_pct,omitempty"`
	Pooling            bool     `json:"pooling"`
	AvoidZones         []string `json:"avoid_zones,omitempty"`
	PreferredRoutes    []string `json:"preferred_routes,omitempty"`
	AlternateRoutes    int      `json:"alternate_routes,omitempty"`
	SecureRouting      bool     `json:"secure_routing,omitempty"`
	AvoidHighRiskAreas bool     `json:"avoid_high_risk_areas,omitempty"`
}

// SolverRequest is the JSON payload sent to the external route solver.
type SolverRequest struct {
	Stops      []SolverStop     `json:"stops"`
	Vehicles   []SolverVehicle  `json:"vehicles"`
	Parameters SolverParameters `json:"parameters"`
	DepartAt   time.Time        `json:"depart_at"`
}

// SolverLeg is one travel segment in the solver response.
type SolverLeg struct {
	FromStopID      string  `json:"from_stop_id"`
	ToStopID        string  `json:"to_stop_id"`
	DistanceKm      float64 `json:"distance_km"`
	BaseDurationSec int     `json:"base_duration_sec"`
}

// SolverResponse is the external solver's optimized result, accepted
// verbatim on success.
type SolverResponse struct {
	VehicleID           string      `json:"vehicle_id"`
	Sequence            []string    `json:"sequence"`
	RouteGeometry       [][]float64 `json:"route_geometry"`
	Legs                []SolverLeg `json:"legs"`
	TotalDistanceKm     float64     `json:"total_distance_km"`
	TotalDurationSec    int         `json:"total_duration_sec"`
	DepartAt            time.Time   `json:"depart_at"`
	ArriveAt            time.Time   `json:"arrive_at"`
	TrafficDelayMinutes float64     `json:"traffic_delay_minutes"`
	AlternateRoutes     []string    `json:"alternate_routes,omitempty"`
}

// SolverClient is the boundary to the external route solver. Implementations
// must bound the call with a timeout; callers treat any error as recoverable.
type SolverClient interface {
	Solve(ctx context.Context, req SolverRequest) (*SolverResponse, error)
}
