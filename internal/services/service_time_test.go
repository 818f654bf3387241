package services

import (
	"testing"

	"fleet-routing-service/internal/domain"
)

func TestEstimateServiceTime(t *testing.T) {
	tests := []struct {
		name string
		stop domain.Stop
		want int
	}{
		{
			name: "zero load standard security",
			stop: domain.Stop{ID: "s1", SecurityLevel: domain.SecurityStandard},
			want: 5,
		},
		{
			name: "high security adds screening block",
			stop: domain.Stop{ID: "s1", SecurityLevel: domain.SecurityHigh},
			want: 20,
		},
		{
			name: "restricted cargo adds screening block",
			stop: domain.Stop{ID: "s1", ShipmentType: domain.ShipmentRestricted},
			want: 20,
		},
		{
			name: "weight rounds up per 10 kg",
			stop: domain.Stop{ID: "s1", WeightKg: 25},
			want: 5 + 3,
		},
		{
			name: "volume rounds up per half cubic meter",
			stop: domain.Stop{ID: "s1", VolumeM3: 1.2},
			want: 5 + 3,
		},
		{
			name: "signature surcharge",
			stop: domain.Stop{ID: "s1", RequiresSignature: true},
			want: 8,
		},
		{
			name: "all components additive",
			stop: domain.Stop{
				ID:                "s1",
				WeightKg:          25,
				VolumeM3:          1.2,
				RequiresSignature: true,
				SecurityLevel:     domain.SecurityHigh,
			},
			want: 5 + 3 + 3 + 3 + 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateServiceTime(tt.stop); got != tt.want {
				t.Fatalf("estimate = %d, want %d", got, tt.want)
			}
		})
	}
}
