package services

import (
	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/geo"
)

// DefaultPoolingRadiusKm is the anchor radius used when a request does not
// specify one.
const DefaultPoolingRadiusKm = 15.0

// ClusterResult separates pooling-eligible multi-stop groups from singles.
type ClusterResult struct {
	Groups  [][]domain.Stop
	Singles []domain.Stop
}

// ClusterByProximity groups stops into spatially coherent batches with a
// greedy single pass: each unprocessed stop anchors a new group and absorbs
// every remaining stop within maxPairDistanceKm of the anchor. Membership is
// measured against the anchor only, not chained transitively.
//
// This is intentionally O(n^2) and approximate rather than a true clustering
// algorithm: the fleets routed here are small, and anchoring on the first
// stop keeps the result deterministic for a given input order.
func ClusterByProximity(stops []domain.Stop, maxPairDistanceKm float64) ClusterResult {
	if maxPairDistanceKm <= 0 {
		maxPairDistanceKm = DefaultPoolingRadiusKm
	}

	var result ClusterResult
	processed := make([]bool, len(stops))

	for i, anchor := range stops {
		if processed[i] {
			continue
		}
		processed[i] = true

		group := []domain.Stop{anchor}
		for j := i + 1; j < len(stops); j++ {
			if processed[j] {
				continue
			}
			if geo.Distance(anchor.Coordinate, stops[j].Coordinate) <= maxPairDistanceKm {
				group = append(group, stops[j])
				processed[j] = true
			}
		}

		if len(group) == 1 {
			result.Singles = append(result.Singles, group[0])
		} else {
			result.Groups = append(result.Groups, group)
		}
	}

	return result
}

// AllGroups returns multi-stop groups followed by each single as its own
// group, preserving discovery order within each class.
func (r ClusterResult) AllGroups() [][]domain.Stop {
	all := make([][]domain.Stop, 0, len(r.Groups)+len(r.Singles))
	all = append(all, r.Groups...)
	for _, s := range r.Singles {
		all = append(all, []domain.Stop{s})
	}
	return all
}
