package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// InitSchema creates the shipment and vehicle tables.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		kind TEXT NOT NULL DEFAULT 'delivery',
		weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		volume_m3 DOUBLE PRECISION NOT NULL DEFAULT 0,
		requires_signature BOOLEAN NOT NULL DEFAULT FALSE,
		security_level TEXT NOT NULL DEFAULT 'standard',
		shipment_type TEXT NOT NULL DEFAULT 'standard',
		scheduled_time TIMESTAMPTZ NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL DEFAULT 'truck',
		max_weight_kg DOUBLE PRECISION NOT NULL,
		max_volume_m3 DOUBLE PRECISION NOT NULL,
		efficiency_km_per_l DOUBLE PRECISION NOT NULL DEFAULT 0,
		secure_transport BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipments_scheduled_time
	ON shipments(scheduled_time);
	`

	statements := []string{
		createShipmentsQuery,
		createVehiclesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}

type seedStop struct {
	ShipmentID        string    `json:"shipment_id"`
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

type seedVehicle struct {
	VehicleID        string  `json:"vehicle_id"`
	Kind             string  `json:"kind"`
	MaxWeightKg      float64 `json:"max_weight_kg"`
	MaxVolumeM3      float64 `json:"max_volume_m3"`
	EfficiencyKmPerL float64 `json:"efficiency_km_per_l"`
	SecureTransport  bool    `json:"secure_transport"`
}

type seedFile struct {
	Shipments []seedStop    `json:"shipments"`
	Vehicles  []seedVehicle `json:"vehicles"`
}

// SeedFromJSON loads demo shipments and vehicles for local runs. Existing
// rows with matching IDs are overwritten.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: parse %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shipStmt, err := tx.Prepare(`
	INSERT INTO shipments (
		shipment_id, lon, lat, kind, weight_kg, volume_m3,
		requires_signature, security_level, shipment_type, scheduled_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (shipment_id) DO UPDATE SET
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		kind = EXCLUDED.kind,
		weight_kg = EXCLUDED.weight_kg,
		volume_m3 = EXCLUDED.volume_m3,
		requires_signature = EXCLUDED.requires_signature,
		security_level = EXCLUDED.security_level,
		shipment_type = EXCLUDED.shipment_type,
		scheduled_time = EXCLUDED.scheduled_time;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare shipments: %w", err)
	}
	defer shipStmt.Close()

	for _, s := range seed.Shipments {
		if _, err := shipStmt.Exec(
			s.ShipmentID, s.Lon, s.Lat, s.Kind, s.WeightKg, s.VolumeM3,
			s.RequiresSignature, s.SecurityLevel, s.ShipmentType, s.ScheduledTime,
		); err != nil {
			return fmt.Errorf("seed: shipment %q: %w", s.ShipmentID, err)
		}
	}

	vehStmt, err := tx.Prepare(`
	INSERT INTO vehicles (
		vehicle_id, kind, max_weight_kg, max_volume_m3,
		efficiency_km_per_l, secure_transport
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (vehicle_id) DO UPDATE SET
		kind = EXCLUDED.kind,
		max_weight_kg = EXCLUDED.max_weight_kg,
		max_volume_m3 = EXCLUDED.max_volume_m3,
		efficiency_km_per_l = EXCLUDED.efficiency_km_per_l,
		secure_transport = EXCLUDED.secure_transport;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare vehicles: %w", err)
	}
	defer vehStmt.Close()

	for _, v := range seed.Vehicles {
		if _, err := vehStmt.Exec(
			v.VehicleID, v.Kind, v.MaxWeightKg, v.MaxVolumeM3,
			v.EfficiencyKmPerL, v.SecureTransport,
		); err != nil {
			return fmt.Errorf("seed: vehicle %q: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	return nil
}
