package domain

import "time"

// Leg is one travel segment between two consecutive stops. Legs are derived
// by the optimizer and not independently mutable.
type Leg struct {
	FromStopID          string
	ToStopID            string
	DistanceKm          float64
	BaseDurationSec     int
	DelayFactor         float64
	AdjustedDurationSec int
	DepartAt            time.Time
	ArriveAt            time.Time
}

// Route is the planned path of a single vehicle. A Route value is immutable:
// an ETA patch produces a new Route value, and a full re-optimization
// supersedes (never mutates) the old one.
type Route struct {
	ID                  string
	VehicleID           string
	Sequence            []string
	Stops               []Stop
	Legs                []Leg
	TotalDistanceKm     float64
	TotalDurationSec    int
	TrafficDelayMinutes float64
	FuelLiters          float64
	CO2Kg               float64
	DepartAt            time.Time
	CommittedArrival    time.Time
	CreatedAt           time.Time
	Fingerprint         string
}

// Polyline returns the route geometry as the ordered stop coordinates.
func (r *Route) Polyline() []Coordinate {
	line := make([]Coordinate, 0, len(r.Stops))
	for _, id := range r.Sequence {
		for _, s := range r.Stops {
			if s.ID == id {
				line = append(line, s.Coordinate)
				break
			}
		}
	}
	return line
}

// StopByID resolves a stop referenced from a leg.
func (r *Route) StopByID(id string) (Stop, bool) {
	for _, s := range r.Stops {
		if s.ID == id {
			return s, true
		}
	}
	return Stop{}, false
}

// Progress computes percent-complete for a position along the route. The
// nearest sequenced stop anchors the completed prefix; this is a derived
// value computed on demand, never stored on the route.
func (r *Route) Progress(current Coordinate, distanceKm func(a, b Coordinate) float64) float64 {
	line := r.Polyline()
	if len(line) < 2 || r.TotalDistanceKm <= 0 {
		return 0
	}

	nearest := 0
	best := distanceKm(current, line[0])
	for i := 1; i < len(line); i++ {
		if d := distanceKm(current, line[i]); d < best {
			best = d
			nearest = i
		}
	}

	covered := 0.0
	for i := 0; i < nearest; i++ {
		covered += distanceKm(line[i], line[i+1])
	}

	pct := covered / r.TotalDistanceKm * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Plan is the result of one optimization call: one route per assigned
// vehicle plus the shipments no vehicle could take.
type Plan struct {
	ID                  string
	Fingerprint         string
	Routes              []Route
	UnassignedShipments []string
	TotalDistanceKm     float64
	TotalDurationSec    int
	TrafficDelayMinutes float64
	FuelLiters          float64
	CO2Kg               float64
	SolverUsed          bool
	CreatedAt           time.Time
}

// RouteState tracks a live route inside the reroute monitor.
type RouteState string

const (
	RouteStable         RouteState = "stable"
	RouteReroutePending RouteState = "reroute-pending"
	RouteSuperseded     RouteState = "superseded"
)
