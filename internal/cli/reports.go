package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/compliance"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/report"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

// --- inventory command ---

var (
	inventoryLocation string
	inventoryType     string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show active container inventory",
	RunE:  runInventory,
}

func init() {
	inventoryCmd.Flags().StringVar(&inventoryLocation, "location", "", "Filter by location")
	inventoryCmd.Flags().StringVar(&inventoryType, "type", "", "Filter by waste type")
}

func runInventory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	containers, err := report.Inventory(db, inventoryLocation, inventoryType)
	if err != nil {
		return err
	}

	if len(containers) == 0 {
		fmt.Println("No containers found.")
		return nil
	}

	for _, c := range containers {
		fmt.Printf("%s | %s | %s | %.2e Bq | %s\n",
			c.ID, c.Label, c.WasteType, c.ActivityBq, c.Location)
	}
	return nil
}

// --- compliance command ---

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Check storage compliance",
	RunE:  runCompliance,
}

func runCompliance(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	containers, err := db.ListContainers(store.ContainerFilter{Status: store.StatusActive})
	if err != nil {
		return err
	}
	transfers, err := db.ListTransfers(store.TransferFilter{})
	if err != nil {
		return err
	}

	issues := compliance.Check(containers, transfers, time.Now())

	fmt.Printf("Storage Class Violations: %d\n", len(issues.StorageClassViolations))
	fmt.Printf("Expired Containers: %d\n", len(issues.ExpiredContainers))
	fmt.Printf("Missing Manifests: %d\n", len(issues.MissingManifests))
	for _, v := range issues.StorageClassViolations {
		fmt.Printf("  - %s: %.2e Bq (limit: %.2e)\n", v.ContainerID, v.ActivityBq, v.LimitBq)
	}
	for _, id := range issues.ExpiredContainers {
		fmt.Printf("  - %s: past decay date, still active\n", id)
	}
	for _, id := range issues.MissingManifests {
		fmt.Printf("  - %s: unmanifested transfer on record\n", id)
	}
	return nil
}

// --- decay-schedule command ---

var scheduleCmd = &cobra.Command{
	Use:   "decay-schedule",
	Short: "Show when containers reach the safe threshold",
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	schedule, err := report.DecaySchedule(db, time.Now())
	if err != nil {
		return err
	}

	if len(schedule) == 0 {
		fmt.Println("No active containers.")
		return nil
	}

	for _, entry := range schedule {
		fmt.Printf("%s | %s | Safe in %d days\n", entry.ContainerID, entry.Label, entry.DaysUntilSafe)
	}
	return nil
}

// --- activity command ---

var activityContainer string
var activityLocation string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show total activity, or a container's decay-corrected reading",
	RunE:  runActivity,
}

func init() {
	activityCmd.Flags().StringVar(&activityContainer, "container", "", "Decay-corrected activity for one container")
	activityCmd.Flags().StringVar(&activityLocation, "location", "", "Scope the total to one location")
}

func runActivity(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if activityContainer != "" {
		current, err := report.CurrentActivity(db, activityContainer, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.2e Bq (decay-corrected)\n", activityContainer, current)
		return nil
	}

	total, err := report.TotalActivity(db, activityLocation)
	if err != nil {
		return err
	}
	if activityLocation != "" {
		fmt.Printf("total activity at %s: %.2e Bq\n", activityLocation, total)
	} else {
		fmt.Printf("total activity: %.2e Bq\n", total)
	}
	return nil
}

// --- export command ---

var exportCmd = &cobra.Command{
	Use:   "export [output.csv]",
	Short: "Export the full container table to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := report.ExportCSV(db, f); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	fmt.Fprintf(os.Stderr, "exported to %s\n", args[0])
	return nil
}
