package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-routing-service/internal/domain"
)

// Postgres-backed implementation of the VehicleRepository port.
type PgVehicleRepository struct{ DB *sql.DB }

func NewPgVehicleRepository(db *sql.DB) *PgVehicleRepository {
	return &PgVehicleRepository{DB: db}
}

// ListVehicles returns all vehicles available for assignment.
func (r *PgVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if r.DB == nil {
		return nil, errors.New("vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		kind,
		max_weight_kg,
		max_volume_m3,
		efficiency_km_per_l,
		secure_transport
	FROM vehicles
	ORDER BY vehicle_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		err := rows.Scan(
			&v.ID,
			&v.Kind,
			&v.MaxWeightKg,
			&v.MaxVolumeM3,
			&v.EfficiencyKmPerL,
			&v.SecureTransport,
		)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
