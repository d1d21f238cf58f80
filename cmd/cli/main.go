package main

import (
	"fmt"
	"os"

	"github.com/crucial707/tagwatch/cmd/cli/assets"
	"github.com/crucial707/tagwatch/cmd/cli/audit"
	"github.com/crucial707/tagwatch/cmd/cli/config"
	"github.com/crucial707/tagwatch/cmd/cli/incidents"
	"github.com/crucial707/tagwatch/cmd/cli/root"
	"github.com/crucial707/tagwatch/cmd/cli/scans"
)

func main() {
	rootCmd := root.GetRoot()

	config.BindFlags(rootCmd)
	assets.InitAssets(rootCmd)
	scans.InitScans(rootCmd)
	incidents.InitIncidents(rootCmd)
	audit.InitAudit(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
