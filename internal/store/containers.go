package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Container status values. Only active containers participate in
// compliance and inventory queries; the other two states are reserved
// for an external reclassification workflow.
const (
	StatusActive      = "active"
	StatusDecayed     = "decayed"
	StatusTransferred = "transferred"
)

// WasteContainer represents a registered nuclear waste container.
type WasteContainer struct {
	ID           string
	Label        string
	WasteType    string // low_level, intermediate, high_level, transuranic, exempt
	Isotopes     []string
	ActivityBq   float64 // initial activity at registration
	VolumeL      float64
	MassKg       float64
	Location     string
	StorageClass string
	CreatedAt    int64 // unix millis
	DecayDate    int64 // unix millis, fixed at registration
	Status       string
}

// ContainerFilter narrows ListContainers. Empty fields match everything.
type ContainerFilter struct {
	Location  string
	WasteType string
	Status    string
}

const containerColumns = `id, label, waste_type, isotopes, activity_bq, volume_l, mass_kg,
		location, storage_class, created_at, decay_date, status`

// PutContainer inserts or fully replaces a container row.
func (db *DB) PutContainer(c *WasteContainer) error {
	isotopes, err := json.Marshal(c.Isotopes)
	if err != nil {
		return fmt.Errorf("encode isotopes: %w", err)
	}
	if c.Isotopes == nil {
		isotopes = []byte("[]")
	}

	_, err = db.Exec(`
		INSERT OR REPLACE INTO containers (id, label, waste_type, isotopes, activity_bq, volume_l, mass_kg,
			location, storage_class, created_at, decay_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Label, c.WasteType, string(isotopes), c.ActivityBq, c.VolumeL, c.MassKg,
		c.Location, c.StorageClass, c.CreatedAt, c.DecayDate, c.Status)
	if err != nil {
		return fmt.Errorf("put container: %w", err)
	}
	return nil
}

// GetContainer returns a container by id, or ErrNotFound.
func (db *DB) GetContainer(id string) (*WasteContainer, error) {
	row := db.QueryRow(`SELECT `+containerColumns+` FROM containers WHERE id = ?`, id)
	c, err := scanContainer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("container %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get container: %w", err)
	}
	return c, nil
}

// ListContainers returns containers matching the filter, in storage order.
func (db *DB) ListContainers(f ContainerFilter) ([]WasteContainer, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.Location != "" {
		query += " AND location = ?"
		args = append(args, f.Location)
	}
	if f.WasteType != "" {
		query += " AND waste_type = ?"
		args = append(args, f.WasteType)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()
	return scanContainers(rows)
}

// ListContainersByCreated returns every container regardless of status,
// ordered by registration time. Used by the CSV export.
func (db *DB) ListContainersByCreated() ([]WasteContainer, error) {
	rows, err := db.Query(`SELECT ` + containerColumns + ` FROM containers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list containers by created: %w", err)
	}
	defer rows.Close()
	return scanContainers(rows)
}

// ListContainersByDecayDate returns active containers ordered ascending
// by decay date. Used by the decay schedule.
func (db *DB) ListContainersByDecayDate() ([]WasteContainer, error) {
	rows, err := db.Query(`
		SELECT `+containerColumns+` FROM containers
		WHERE status = ? ORDER BY decay_date
	`, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list containers by decay date: %w", err)
	}
	defer rows.Close()
	return scanContainers(rows)
}

// SumActivity returns the total stored activity over active containers,
// optionally scoped to one location. Zero when nothing matches.
func (db *DB) SumActivity(location string) (float64, error) {
	query := `SELECT COALESCE(SUM(activity_bq), 0) FROM containers WHERE status = ?`
	args := []any{StatusActive}
	if location != "" {
		query += " AND location = ?"
		args = append(args, location)
	}

	var total float64
	if err := db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum activity: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContainer(row rowScanner) (*WasteContainer, error) {
	var c WasteContainer
	var isotopes string
	err := row.Scan(&c.ID, &c.Label, &c.WasteType, &isotopes, &c.ActivityBq, &c.VolumeL, &c.MassKg,
		&c.Location, &c.StorageClass, &c.CreatedAt, &c.DecayDate, &c.Status)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(isotopes), &c.Isotopes); err != nil {
		return nil, fmt.Errorf("decode isotopes for %s: %w", c.ID, err)
	}
	return &c, nil
}

func scanContainers(rows *sql.Rows) ([]WasteContainer, error) {
	var containers []WasteContainer
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		containers = append(containers, *c)
	}
	return containers, rows.Err()
}
