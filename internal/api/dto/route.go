package dto

import "time"

type StopRequest struct {
	ID                string    `json:"id"`
	Lon               float64   `json:"lon"`
	Lat               float64   `json:"lat"`
	Kind              string    `json:"kind"`
	WeightKg          float64   `json:"weight_kg"`
	VolumeM3          float64   `json:"volume_m3"`
	RequiresSignature bool      `json:"requires_signature"`
	SecurityLevel     string    `json:"security_level"`
	ShipmentType      string    `json:"shipment_type"`
	ScheduledTime     time.Time `json:"scheduled_time"`
}

type VehicleRequest struct {
	ID               string  `json:"id"`
	Kind             string  `json:"kind"`
	MaxWeightKg      float64 `json:"max_weight_kg"`
	MaxVolumeM3      float64 `json:"max_volume_m3"`
	EfficiencyKmPerL float64 `json:"efficiency_km_per_l"`
	SecureTransport  bool    `json:"secure_transport"`
}

type ConstraintsRequest struct {
	MaxDelayMinutes int      `json:"max_delay_minutes"`
	MaxDetourPct    float64  `json:"max_detour_pct"`
	AvoidZones      []string `json:"avoid_zones"`
	PreferredRoutes []string `json:"preferred_routes"`
}

type OptimizeRequest struct {
	Stops           []StopRequest      `json:"stops"`
	ShipmentIDs     []string           `json:"shipment_ids"`
	Vehicles        []VehicleRequest   `json:"vehicles"`
	Constraints     ConstraintsRequest `json:"constraints"`
	Priority        string             `json:"priority"`
	Pooling         bool               `json:"pooling"`
	PoolingRadiusKm float64            `json:"pooling_radius_km"`
	SecurityLevel   string             `json:"security_level"`
	DepartAt        *time.Time         `json:"depart_at"`
}

type LegResponse struct {
	FromStopID          string    `json:"from_stop_id"`
	ToStopID            string    `json:"to_stop_id"`
	DistanceKm          float64   `json:"distance_km"`
	BaseDurationSec     int       `json:"base_duration_sec"`
	DelayFactor         float64   `json:"delay_factor"`
	AdjustedDurationSec int       `json:"adjusted_duration_sec"`
	DepartAt            time.Time `json:"depart_at"`
	ArriveAt            time.Time `json:"arrive_at"`
}

type RouteResponse struct {
	ID                  string        `json:"id"`
	VehicleID           string        `json:"vehicle_id"`
	Sequence            []string      `json:"sequence"`
	Legs                []LegResponse `json:"legs"`
	TotalDistanceKm     float64       `json:"total_distance_km"`
	TotalDurationSec    int           `json:"total_duration_sec"`
	TrafficDelayMinutes float64       `json:"traffic_delay_minutes"`
	FuelLiters          float64       `json:"fuel_liters"`
	CO2Kg               float64       `json:"co2_kg"`
	DepartAt            time.Time     `json:"depart_at"`
	CommittedArrival    time.Time     `json:"committed_arrival"`
	Fingerprint         string        `json:"fingerprint"`
}

type PlanResponse struct {
	ID                  string          `json:"id"`
	Fingerprint         string          `json:"fingerprint"`
	Routes              []RouteResponse `json:"routes"`
	UnassignedShipments []string        `json:"unassigned_shipments"`
	TotalDistanceKm     float64         `json:"total_distance_km"`
	TotalDurationSec    int             `json:"total_duration_sec"`
	TrafficDelayMinutes float64         `json:"traffic_delay_minutes"`
	FuelLiters          float64         `json:"fuel_liters"`
	CO2Kg               float64         `json:"co2_kg"`
	SolverUsed          bool            `json:"solver_used"`
	CreatedAt           time.Time       `json:"created_at"`
}

type EvaluateRequest struct {
	Route   RouteEnvelope    `json:"route"`
	Traffic *TrafficSnapshot `json:"traffic"`
	Weather *WeatherSnapshot `json:"weather"`
}

// RouteEnvelope carries a live route back into the engine for evaluation or
// patching.
type RouteEnvelope struct {
	ID               string        `json:"id"`
	VehicleID        string        `json:"vehicle_id"`
	Sequence         []string      `json:"sequence"`
	Stops            []StopRequest `json:"stops"`
	Legs             []LegResponse `json:"legs"`
	TotalDistanceKm  float64       `json:"total_distance_km"`
	DepartAt         time.Time     `json:"depart_at"`
	CommittedArrival time.Time     `json:"committed_arrival"`
}

type TrafficIncident struct {
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
}

type TrafficSnapshot struct {
	OverallCondition string            `json:"overall_condition"`
	Incidents        []TrafficIncident `json:"incidents"`
	Timestamp        time.Time         `json:"timestamp"`
}

type WeatherSnapshot struct {
	Condition       string    `json:"condition"`
	PrecipitationMm float64   `json:"precipitation_mm"`
	VisibilityM     float64   `json:"visibility_m"`
	WindSpeedKmh    float64   `json:"wind_speed_kmh"`
	TemperatureC    float64   `json:"temperature_c"`
	Timestamp       time.Time `json:"timestamp"`
}

type EvaluateResponse struct {
	Decision string         `json:"decision"`
	State    string         `json:"state"`
	Patched  *RouteResponse `json:"patched,omitempty"`
}
