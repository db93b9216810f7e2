package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

var csvHeader = []string{
	"ID", "Label", "Type", "Isotopes", "Activity_Bq",
	"Volume_L", "Mass_kg", "Location", "Class",
	"Created", "DecayDate", "Status",
}

// ExportCSV writes the full container table (all statuses) as CSV,
// ordered by registration time.
func ExportCSV(db *store.DB, w io.Writer) error {
	containers, err := db.ListContainersByCreated()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range containers {
		isotopes, err := json.Marshal(c.Isotopes)
		if err != nil {
			return fmt.Errorf("encode isotopes for %s: %w", c.ID, err)
		}
		record := []string{
			c.ID,
			c.Label,
			c.WasteType,
			string(isotopes),
			strconv.FormatFloat(c.ActivityBq, 'g', -1, 64),
			strconv.FormatFloat(c.VolumeL, 'g', -1, 64),
			strconv.FormatFloat(c.MassKg, 'g', -1, 64),
			c.Location,
			c.StorageClass,
			time.UnixMilli(c.CreatedAt).UTC().Format(time.RFC3339),
			time.UnixMilli(c.DecayDate).UTC().Format(time.RFC3339),
			c.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
