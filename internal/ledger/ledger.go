// Package ledger implements the container registration and transfer
// operations. Each operation is a single atomic unit against the store.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/decay"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

// ErrInvalidInput is returned for rejected operation arguments:
// negative activity or an empty required field.
var ErrInvalidInput = errors.New("invalid input")

// Ledger mutates container and transfer state through the store.
type Ledger struct {
	DB *store.DB
}

// New creates a Ledger over the given store.
func New(db *store.DB) *Ledger {
	return &Ledger{DB: db}
}

// RegisterParams describes a container to register.
type RegisterParams struct {
	Label        string
	WasteType    string
	Isotopes     []string
	ActivityBq   float64
	VolumeL      float64
	MassKg       float64
	Location     string
	StorageClass string
}

// Register assigns a fresh container id, computes the decay date from
// the isotope composition, and persists the container as active.
func (l *Ledger) Register(p RegisterParams) (*store.WasteContainer, error) {
	if p.ActivityBq < 0 {
		return nil, fmt.Errorf("%w: activity must be non-negative, got %g Bq", ErrInvalidInput, p.ActivityBq)
	}
	if p.VolumeL < 0 || p.MassKg < 0 {
		return nil, fmt.Errorf("%w: volume and mass must be non-negative", ErrInvalidInput)
	}
	if p.WasteType == "" {
		return nil, fmt.Errorf("%w: waste_type required", ErrInvalidInput)
	}
	if p.Location == "" {
		return nil, fmt.Errorf("%w: location required", ErrInvalidInput)
	}
	if p.StorageClass == "" {
		return nil, fmt.Errorf("%w: storage_class required", ErrInvalidInput)
	}

	now := time.Now()
	decayDate, err := decay.EstimateDecayDate(p.Isotopes, p.ActivityBq, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c := &store.WasteContainer{
		ID:           uuid.NewString()[:8],
		Label:        p.Label,
		WasteType:    p.WasteType,
		Isotopes:     p.Isotopes,
		ActivityBq:   p.ActivityBq,
		VolumeL:      p.VolumeL,
		MassKg:       p.MassKg,
		Location:     p.Location,
		StorageClass: p.StorageClass,
		CreatedAt:    now.UnixMilli(),
		DecayDate:    decayDate.UnixMilli(),
		Status:       store.StatusActive,
	}

	if err := l.DB.PutContainer(c); err != nil {
		return nil, fmt.Errorf("register container: %w", err)
	}
	return c, nil
}

// Transfer moves a container to a new location, appending a transfer
// record and updating the container atomically. Returns
// store.ErrNotFound (wrapped) if the container does not exist.
func (l *Ledger) Transfer(containerID, toLocation, transferredBy string) (*store.TransferRecord, error) {
	if containerID == "" {
		return nil, fmt.Errorf("%w: container id required", ErrInvalidInput)
	}
	if toLocation == "" {
		return nil, fmt.Errorf("%w: destination location required", ErrInvalidInput)
	}
	if transferredBy == "" {
		return nil, fmt.Errorf("%w: transferred_by required", ErrInvalidInput)
	}

	t, err := l.DB.RecordTransfer(containerID, toLocation, transferredBy, time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("transfer container: %w", err)
	}
	return t, nil
}
