package services

import (
	"math"

	"fleet-routing-service/internal/domain"
)

const baseServiceMinutes = 5

// EstimateServiceTime computes the dwell time at a stop in whole minutes.
//
// All components are additive: a 5 minute base, handling time proportional to
// weight and volume, a signature surcharge, and a fixed security screening
// block for high-security or restricted cargo. The result is always >= 5.
func EstimateServiceTime(s domain.Stop) int {
	minutes := baseServiceMinutes

	if s.WeightKg > 0 {
		minutes += int(math.Ceil(s.WeightKg / 10))
	}
	if s.VolumeM3 > 0 {
		minutes += int(math.Ceil(s.VolumeM3 / 0.5))
	}
	if s.RequiresSignature {
		minutes += 3
	}
	if s.SecurityLevel == domain.SecurityHigh || s.ShipmentType.Restricted() {
		minutes += 15
	}

	return minutes
}
