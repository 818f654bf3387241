package domain

// Vehicle available for assignment during optimization. Vehicles are supplied
// by the caller per request; the optimizer never mutates them.
type Vehicle struct {
	ID               string
	Kind             string // truck, van, drone
	MaxWeightKg      float64
	MaxVolumeM3      float64
	EfficiencyKmPerL float64
	SecureTransport  bool
}

// CanCarry reports whether a combined load fits this vehicle.
func (v Vehicle) CanCarry(weightKg, volumeM3 float64) bool {
	return weightKg <= v.MaxWeightKg && volumeM3 <= v.MaxVolumeM3
}

// Capacity score used to order candidate vehicles (largest first).
func (v Vehicle) Capacity() float64 {
	return v.MaxWeightKg + v.MaxVolumeM3*100
}
