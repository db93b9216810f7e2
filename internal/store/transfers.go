package store

import (
	"database/sql"
	"fmt"
)

// TransferRecord is one entry in the append-only transfer ledger.
// Records are never mutated or deleted; manifested starts false and is
// only ever flipped by the external manifest approval workflow.
type TransferRecord struct {
	ID            int64
	ContainerID   string
	FromLocation  string
	ToLocation    string
	TransferredBy string
	TS            int64 // unix millis
	Manifested    bool
}

// TransferFilter narrows ListTransfers. Zero fields match everything.
type TransferFilter struct {
	ContainerID string
	Manifested  *bool
}

// RecordTransfer appends a transfer record and updates the container's
// location in a single transaction. Returns ErrNotFound if the container
// does not exist; in that case nothing is written.
func (db *DB) RecordTransfer(containerID, toLocation, transferredBy string, ts int64) (*TransferRecord, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	var fromLocation string
	err = tx.QueryRow(`SELECT location FROM containers WHERE id = ?`, containerID).Scan(&fromLocation)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("container %s: %w", containerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read container location: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO transfers (container_id, from_location, to_location, transferred_by, ts, manifested)
		VALUES (?, ?, ?, ?, ?, 0)
	`, containerID, fromLocation, toLocation, transferredBy, ts)
	if err != nil {
		return nil, fmt.Errorf("append transfer: %w", err)
	}

	if _, err := tx.Exec(`UPDATE containers SET location = ? WHERE id = ?`, toLocation, containerID); err != nil {
		return nil, fmt.Errorf("update container location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	id, _ := result.LastInsertId()
	return &TransferRecord{
		ID:            id,
		ContainerID:   containerID,
		FromLocation:  fromLocation,
		ToLocation:    toLocation,
		TransferredBy: transferredBy,
		TS:            ts,
	}, nil
}

// GetTransfer returns a transfer record by its sequence id, or ErrNotFound.
func (db *DB) GetTransfer(id int64) (*TransferRecord, error) {
	var t TransferRecord
	var manifested int
	err := db.QueryRow(`
		SELECT id, container_id, from_location, to_location, transferred_by, ts, manifested
		FROM transfers WHERE id = ?
	`, id).Scan(&t.ID, &t.ContainerID, &t.FromLocation, &t.ToLocation, &t.TransferredBy, &t.TS, &manifested)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transfer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	t.Manifested = manifested != 0
	return &t, nil
}

// ListTransfers returns transfer records matching the filter, in ledger order.
func (db *DB) ListTransfers(f TransferFilter) ([]TransferRecord, error) {
	query := `
		SELECT id, container_id, from_location, to_location, transferred_by, ts, manifested
		FROM transfers WHERE 1=1`
	var args []any
	if f.ContainerID != "" {
		query += " AND container_id = ?"
		args = append(args, f.ContainerID)
	}
	if f.Manifested != nil {
		query += " AND manifested = ?"
		if *f.Manifested {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}
	query += " ORDER BY id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []TransferRecord
	for rows.Next() {
		var t TransferRecord
		var manifested int
		if err := rows.Scan(&t.ID, &t.ContainerID, &t.FromLocation, &t.ToLocation,
			&t.TransferredBy, &t.TS, &manifested); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.Manifested = manifested != 0
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
