// Package report provides read-only views over the container ledger:
// inventory, activity totals, decay scheduling, and manifest assembly.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/decay"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

const millisPerDay = 24 * 60 * 60 * 1000

// Inventory returns active containers, optionally filtered by exact
// location and/or waste type.
func Inventory(db *store.DB, location, wasteType string) ([]store.WasteContainer, error) {
	return db.ListContainers(store.ContainerFilter{
		Status:    store.StatusActive,
		Location:  location,
		WasteType: wasteType,
	})
}

// TotalActivity sums stored activity over active containers, optionally
// scoped to one location. Zero when nothing matches.
func TotalActivity(db *store.DB, location string) (float64, error) {
	return db.SumActivity(location)
}

// CurrentActivity returns the decay-corrected present activity of one
// container.
func CurrentActivity(db *store.DB, containerID string, now time.Time) (float64, error) {
	c, err := db.GetContainer(containerID)
	if err != nil {
		return 0, err
	}
	return decay.CurrentActivity(c.Isotopes, c.ActivityBq, time.UnixMilli(c.CreatedAt), now), nil
}

// ScheduleEntry is one row of the decay schedule.
type ScheduleEntry struct {
	ContainerID   string  `json:"container_id"`
	Label         string  `json:"label"`
	ActivityBq    float64 `json:"activity_bq"`
	DecayDate     int64   `json:"safe_decay_date"`
	DaysUntilSafe int     `json:"days_until_safe"`
}

// DecaySchedule returns active containers ordered by decay date, each
// annotated with whole days until it reaches the safe threshold.
// Negative for containers already past their decay date.
func DecaySchedule(db *store.DB, now time.Time) ([]ScheduleEntry, error) {
	containers, err := db.ListContainersByDecayDate()
	if err != nil {
		return nil, err
	}

	nowMillis := now.UnixMilli()
	schedule := make([]ScheduleEntry, 0, len(containers))
	for _, c := range containers {
		days := math.Floor(float64(c.DecayDate-nowMillis) / millisPerDay)
		schedule = append(schedule, ScheduleEntry{
			ContainerID:   c.ID,
			Label:         c.Label,
			ActivityBq:    c.ActivityBq,
			DecayDate:     c.DecayDate,
			DaysUntilSafe: int(days),
		})
	}
	return schedule, nil
}

// Manifest holds the data for one regulatory transfer manifest:
// the transfer record joined with its container's descriptive fields.
type Manifest struct {
	TransferID    int64    `json:"transfer_id"`
	ContainerID   string   `json:"container_id"`
	Label         string   `json:"label"`
	WasteType     string   `json:"waste_type"`
	Isotopes      []string `json:"isotopes"`
	ActivityBq    float64  `json:"activity_bq"`
	VolumeL       float64  `json:"volume_l"`
	MassKg        float64  `json:"mass_kg"`
	FromLocation  string   `json:"from_location"`
	ToLocation    string   `json:"to_location"`
	TransferredBy string   `json:"transferred_by"`
	TransferredAt int64    `json:"transferred_at"`
}

// ManifestData assembles manifest content for a transfer. Fails with
// store.ErrNotFound if either the transfer or its container is missing.
func ManifestData(db *store.DB, transferID int64) (*Manifest, error) {
	t, err := db.GetTransfer(transferID)
	if err != nil {
		return nil, fmt.Errorf("manifest transfer: %w", err)
	}

	c, err := db.GetContainer(t.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("manifest container: %w", err)
	}

	return &Manifest{
		TransferID:    t.ID,
		ContainerID:   c.ID,
		Label:         c.Label,
		WasteType:     c.WasteType,
		Isotopes:      c.Isotopes,
		ActivityBq:    c.ActivityBq,
		VolumeL:       c.VolumeL,
		MassKg:        c.MassKg,
		FromLocation:  t.FromLocation,
		ToLocation:    t.ToLocation,
		TransferredBy: t.TransferredBy,
		TransferredAt: t.TS,
	}, nil
}
