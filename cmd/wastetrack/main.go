package main

import (
	"os"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
