// Package compliance evaluates a fleet of containers against storage
// limits, decay expiry, and manifest completeness. Pure functions over
// a snapshot; only active containers are considered.
package compliance

import (
	"time"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

// storageLimits maps a storage class to its maximum permitted activity
// in Bq. Unknown classes fall back to the low_level limit.
var storageLimits = map[string]float64{
	"low_level":    1e6,  // 1 MBq
	"intermediate": 1e9,  // 1 GBq
	"high_level":   1e12, // 1 TBq
	"transuranic":  1e6,  // 1 MBq
	"exempt":       1e3,  // 1 kBq
}

const defaultStorageLimitBq = 1e6

// StorageLimitBq returns the activity limit for a storage class.
func StorageLimitBq(storageClass string) float64 {
	if limit, ok := storageLimits[storageClass]; ok {
		return limit
	}
	return defaultStorageLimitBq
}

// StorageClassViolation flags a container whose registered activity
// exceeds its storage class limit. The check uses the activity the
// container was classified at, not a decay-corrected reading.
type StorageClassViolation struct {
	ContainerID string  `json:"container_id"`
	ActivityBq  float64 `json:"activity_bq"`
	LimitBq     float64 `json:"limit_bq"`
}

// Report lists all compliance issues found in one evaluation.
type Report struct {
	StorageClassViolations []StorageClassViolation `json:"storage_class_violations"`
	ExpiredContainers      []string                `json:"expired_containers"`
	MissingManifests       []string                `json:"missing_manifests"`
}

// Check evaluates active containers against storage-class limits,
// decay expiry, and outstanding unmanifested transfers. Each container
// appears at most once per category.
func Check(containers []store.WasteContainer, transfers []store.TransferRecord, now time.Time) Report {
	report := Report{
		StorageClassViolations: []StorageClassViolation{},
		ExpiredContainers:      []string{},
		MissingManifests:       []string{},
	}

	unmanifested := make(map[string]bool)
	for _, t := range transfers {
		if !t.Manifested {
			unmanifested[t.ContainerID] = true
		}
	}

	nowMillis := now.UnixMilli()
	for _, c := range containers {
		if c.Status != store.StatusActive {
			continue
		}

		if limit := StorageLimitBq(c.StorageClass); c.ActivityBq > limit {
			report.StorageClassViolations = append(report.StorageClassViolations, StorageClassViolation{
				ContainerID: c.ID,
				ActivityBq:  c.ActivityBq,
				LimitBq:     limit,
			})
		}

		if c.DecayDate < nowMillis {
			report.ExpiredContainers = append(report.ExpiredContainers, c.ID)
		}

		if unmanifested[c.ID] {
			report.MissingManifests = append(report.MissingManifests, c.ID)
		}
	}

	return report
}
