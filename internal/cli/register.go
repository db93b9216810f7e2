package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/ledger"
)

var (
	registerLabel    string
	registerType     string
	registerIsotopes []string
	registerActivity float64
	registerVolume   float64
	registerMass     float64
	registerLocation string
	registerClass    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new waste container",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerLabel, "label", "", "Descriptive container label")
	registerCmd.Flags().StringVar(&registerType, "type", "", "Waste type (low_level, intermediate, high_level, transuranic, exempt)")
	registerCmd.Flags().StringSliceVar(&registerIsotopes, "isotopes", nil, "Isotopes present, e.g. Cs-137,Co-60")
	registerCmd.Flags().Float64Var(&registerActivity, "activity", 0, "Initial activity in Bq")
	registerCmd.Flags().Float64Var(&registerVolume, "volume", 0, "Volume in liters")
	registerCmd.Flags().Float64Var(&registerMass, "mass", 0, "Mass in kg")
	registerCmd.Flags().StringVar(&registerLocation, "location", "", "Initial storage location")
	registerCmd.Flags().StringVar(&registerClass, "class", "", "Storage class")
	registerCmd.MarkFlagRequired("type")
	registerCmd.MarkFlagRequired("location")
	registerCmd.MarkFlagRequired("class")
}

func runRegister(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	c, err := ledger.New(db).Register(ledger.RegisterParams{
		Label:        registerLabel,
		WasteType:    registerType,
		Isotopes:     registerIsotopes,
		ActivityBq:   registerActivity,
		VolumeL:      registerVolume,
		MassKg:       registerMass,
		Location:     registerLocation,
		StorageClass: registerClass,
	})
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (%s)\n", c.ID, c.Label)
	fmt.Printf("  activity:   %.2e Bq\n", c.ActivityBq)
	fmt.Printf("  decay date: %s\n", time.UnixMilli(c.DecayDate).Format("2006-01-02"))
	return nil
}

var (
	transferTo string
	transferBy string
)

var transferCmd = &cobra.Command{
	Use:   "transfer [container-id]",
	Short: "Transfer a container to a new location",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransfer,
}

func init() {
	transferCmd.Flags().StringVar(&transferTo, "to", "", "Destination location")
	transferCmd.Flags().StringVar(&transferBy, "by", "", "Actor performing the transfer")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("by")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	t, err := ledger.New(db).Transfer(args[0], transferTo, transferBy)
	if err != nil {
		return err
	}

	fmt.Printf("transfer %d: %s moved %s -> %s\n", t.ID, t.ContainerID, t.FromLocation, t.ToLocation)
	fmt.Println("manifest pending — generate one with: wastetrack manifest", t.ID)
	return nil
}
