package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// PriorityMode selects what the solver should optimize for.
type PriorityMode string

const (
	PriorityTime     PriorityMode = "time"
	PriorityFuel     PriorityMode = "fuel"
	PriorityCost     PriorityMode = "cost"
	PriorityBalanced PriorityMode = "balanced"
)

func ParsePriorityMode(s string) (PriorityMode, error) {
	switch PriorityMode(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityTime:
		return PriorityTime, nil
	case PriorityFuel:
		return PriorityFuel, nil
	case PriorityCost:
		return PriorityCost, nil
	case PriorityBalanced, "":
		return PriorityBalanced, nil
	default:
		return "", &InvalidInputError{Field: "priority", Reason: fmt.Sprintf("unknown priority mode %q", s)}
	}
}

// Routing constraints supplied by the caller.
type Constraints struct {
	MaxDelayMinutes int
	MaxDetourPct    float64
	AvoidZones      []string
	PreferredRoutes []string
}

// RouteRequest is the value object handed to the optimizer. It is constructed
// fresh per call and normalized before fingerprinting.
type RouteRequest struct {
	Stops           []Stop
	Vehicles        []Vehicle
	Constraints     Constraints
	Priority        PriorityMode
	Pooling         bool
	PoolingRadiusKm float64
	SecurityLevel   SecurityLevel
	DepartAt        time.Time
}

// Normalized returns a copy with stops and vehicles in a canonical order and
// defaults filled in, so that semantically identical requests fingerprint
// identically regardless of input ordering.
func (r RouteRequest) Normalized() RouteRequest {
	n := r
	n.Stops = slices.Clone(r.Stops)
	slices.SortFunc(n.Stops, func(a, b Stop) int { return strings.Compare(a.ID, b.ID) })
	n.Vehicles = slices.Clone(r.Vehicles)
	slices.SortFunc(n.Vehicles, func(a, b Vehicle) int { return strings.Compare(a.ID, b.ID) })
	n.Constraints.AvoidZones = sortedClone(r.Constraints.AvoidZones)
	n.Constraints.PreferredRoutes = sortedClone(r.Constraints.PreferredRoutes)
	if n.Priority == "" {
		n.Priority = PriorityBalanced
	}
	if n.SecurityLevel == "" {
		n.SecurityLevel = SecurityStandard
	}
	n.DepartAt = r.DepartAt.UTC().Truncate(time.Second)
	return n
}

func sortedClone(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}

// fingerprintStop pins the serialized field order for hashing.
type fingerprintStop struct {
	ID        string   `json:"id"`
	Lon       float64  `json:"lon"`
	Lat       float64  `json:"lat"`
	Kind      StopKind `json:"kind"`
	WeightKg  float64  `json:"weight_kg"`
	VolumeM3  float64  `json:"volume_m3"`
	Signature bool     `json:"signature"`
	Security  string   `json:"security"`
	Type      string   `json:"type"`
	Scheduled int64    `json:"scheduled"`
}

type fingerprintVehicle struct {
	ID        string  `json:"id"`
	MaxWeight float64 `json:"max_weight"`
	MaxVolume float64 `json:"max_volume"`
	KmPerL    float64 `json:"km_per_l"`
	Secure    bool    `json:"secure"`
}

type fingerprintPayload struct {
	Stops           []fingerprintStop    `json:"stops"`
	Vehicles        []fingerprintVehicle `json:"vehicles"`
	MaxDelayMinutes int                  `json:"max_delay_minutes"`
	MaxDetourPct    float64              `json:"max_detour_pct"`
	AvoidZones      []string             `json:"avoid_zones"`
	PreferredRoutes []string             `json:"preferred_routes"`
	Priority        PriorityMode         `json:"priority"`
	Pooling         bool                 `json:"pooling"`
	PoolingRadiusKm float64              `json:"pooling_radius_km"`
	Security        SecurityLevel        `json:"security"`
	DepartAt        int64                `json:"depart_at"`
}

// Fingerprint hashes the normalized request. Struct fields marshal in
// declared order, so the serialization is deterministic.
func (r RouteRequest) Fingerprint() string {
	n := r.Normalized()

	p := fingerprintPayload{
		Stops:           make([]fingerprintStop, 0, len(n.Stops)),
		Vehicles:        make([]fingerprintVehicle, 0, len(n.Vehicles)),
		MaxDelayMinutes: n.Constraints.MaxDelayMinutes,
		MaxDetourPct:    n.Constraints.MaxDetourPct,
		AvoidZones:      n.Constraints.AvoidZones,
		PreferredRoutes: n.Constraints.PreferredRoutes,
		Priority:        n.Priority,
		Pooling:         n.Pooling,
		PoolingRadiusKm: n.PoolingRadiusKm,
		Security:        n.SecurityLevel,
		DepartAt:        n.DepartAt.Unix(),
	}
	for _, s := range n.Stops {
		p.Stops = append(p.Stops, fingerprintStop{
			ID:        s.ID,
			Lon:       s.Coordinate.Lon,
			Lat:       s.Coordinate.Lat,
			Kind:      s.Kind,
			WeightKg:  s.WeightKg,
			VolumeM3:  s.VolumeM3,
			Signature: s.RequiresSignature,
			Security:  string(s.SecurityLevel),
			Type:      string(s.ShipmentType),
			Scheduled: s.ScheduledTime.UTC().Unix(),
		})
	}
	for _, v := range n.Vehicles {
		p.Vehicles = append(p.Vehicles, fingerprintVehicle{
			ID:        v.ID,
			MaxWeight: v.MaxWeightKg,
			MaxVolume: v.MaxVolumeM3,
			KmPerL:    v.EfficiencyKmPerL,
			Secure:    v.SecureTransport,
		})
	}

	raw, err := json.Marshal(p)
	if err != nil {
		// Marshaling a value type of plain fields cannot fail; keep the
		// fingerprint total anyway.
		raw = []byte(fmt.Sprintf("%+v", p))
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Validate applies the propagation policy for input errors: malformed
// coordinates and empty stop sets surface immediately.
func (r RouteRequest) Validate() error {
	if len(r.Stops) == 0 {
		return ErrNoShipments
	}
	for _, s := range r.Stops {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
