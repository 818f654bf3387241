package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-routing-service/internal/domain"
)

// Postgres-backed implementation of the ShipmentRepository port.
type PgShipmentRepository struct{ DB *sql.DB }

func NewPgShipmentRepository(db *sql.DB) *PgShipmentRepository {
	return &PgShipmentRepository{DB: db}
}

// ListStops resolves shipment IDs into routable stops.
func (r *PgShipmentRepository) ListStops(ctx context.Context, ids []string) ([]domain.Stop, error) {
	if r.DB == nil {
		return nil, errors.New("shipment repository: DB is nil")
	}
	if len(ids) == 0 {
		return []domain.Stop{}, nil
	}

	query := `
	SELECT
		shipment_id,
		lon,
		lat,
		kind,
		weight_kg,
		volume_m3,
		requires_signature,
		security_level,
		shipment_type,
		scheduled_time
	FROM shipments
	WHERE shipment_id = ANY($1)
	ORDER BY shipment_id;
	`
	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list stops: query shipments table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, len(ids))
	for rows.Next() {
		var (
			s         domain.Stop
			kind      string
			security  string
			shipType  string
			scheduled time.Time
		)
		err := rows.Scan(
			&s.ID,
			&s.Coordinate.Lon,
			&s.Coordinate.Lat,
			&kind,
			&s.WeightKg,
			&s.VolumeM3,
			&s.RequiresSignature,
			&security,
			&shipType,
			&scheduled,
		)
		if err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		// Enum fields are validated at the storage boundary so bad rows fail
		// loudly instead of flowing into the optimizer.
		if s.Kind, err = domain.ParseStopKind(kind); err != nil {
			return nil, fmt.Errorf("list stops: shipment %s: %w", s.ID, err)
		}
		if s.SecurityLevel, err = domain.ParseSecurityLevel(security); err != nil {
			return nil, fmt.Errorf("list stops: shipment %s: %w", s.ID, err)
		}
		if s.ShipmentType, err = domain.ParseShipmentType(shipType); err != nil {
			return nil, fmt.Errorf("list stops: shipment %s: %w", s.ID, err)
		}
		s.ScheduledTime = scheduled.UTC()

		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
