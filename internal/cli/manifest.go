package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/report"
)

var manifestTemplate = template.Must(template.New("manifest").Parse(`
NUCLEAR WASTE TRANSFER MANIFEST
Generated: {{.Generated}}

CONTAINER INFORMATION:
  ID: {{.Data.ContainerID}}
  Label: {{.Data.Label}}
  Waste Type: {{.Data.WasteType}}
  Isotopes: {{.Isotopes}}
  Activity: {{printf "%.2e" .Data.ActivityBq}} Bq
  Volume: {{.Data.VolumeL}} L
  Mass: {{.Data.MassKg}} kg

TRANSFER DETAILS:
  From: {{.Data.FromLocation}}
  To: {{.Data.ToLocation}}
  Transferred By: {{.Data.TransferredBy}}
  Date: {{.TransferredAt}}
  Transfer ID: {{.Data.TransferID}}

CERTIFICATION:
This document certifies proper handling and transfer of radioactive material
in compliance with regulatory requirements.
`))

var manifestCmd = &cobra.Command{
	Use:   "manifest [transfer-id]",
	Short: "Render the regulatory manifest for a transfer",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

func runManifest(cmd *cobra.Command, args []string) error {
	transferID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transfer id %q", args[0])
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	data, err := report.ManifestData(db, transferID)
	if err != nil {
		return err
	}

	return manifestTemplate.Execute(os.Stdout, struct {
		Data          *report.Manifest
		Generated     string
		TransferredAt string
		Isotopes      string
	}{
		Data:          data,
		Generated:     time.Now().Format(time.RFC3339),
		TransferredAt: time.UnixMilli(data.TransferredAt).Format(time.RFC3339),
		Isotopes:      strings.Join(data.Isotopes, ", "),
	})
}
