package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "containers: waste container inventory",
		SQL: `
CREATE TABLE containers (
    id             TEXT PRIMARY KEY,
    label          TEXT NOT NULL DEFAULT '',
    waste_type     TEXT NOT NULL,
    isotopes       TEXT NOT NULL DEFAULT '[]',
    activity_bq    REAL NOT NULL,
    volume_l       REAL NOT NULL DEFAULT 0,
    mass_kg        REAL NOT NULL DEFAULT 0,
    location       TEXT NOT NULL,
    storage_class  TEXT NOT NULL,
    created_at     INTEGER NOT NULL,
    decay_date     INTEGER NOT NULL,
    status         TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'decayed', 'transferred'))
);

CREATE INDEX idx_containers_status   ON containers(status);
CREATE INDEX idx_containers_location ON containers(location);
CREATE INDEX idx_containers_decay    ON containers(decay_date);
`,
	},
	{
		Version:     2,
		Description: "transfers: append-only container transfer ledger",
		SQL: `
CREATE TABLE transfers (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    container_id   TEXT NOT NULL,
    from_location  TEXT NOT NULL,
    to_location    TEXT NOT NULL,
    transferred_by TEXT NOT NULL,
    ts             INTEGER NOT NULL,
    manifested     INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (container_id) REFERENCES containers(id)
);

CREATE INDEX idx_transfers_container  ON transfers(container_id);
CREATE INDEX idx_transfers_manifested ON transfers(manifested);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
