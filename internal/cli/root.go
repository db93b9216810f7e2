package cli

import (
	"github.com/spf13/cobra"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/config"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wastetrack",
	Short: "Nuclear waste inventory and compliance tracking",
	Long:  "Wastetrack registers radioactive waste containers, tracks transfers, models decay toward the safe-disposal threshold, and checks regulatory compliance. Single Go binary over a local SQLite database.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(exportCmd)
}

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}
