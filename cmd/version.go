package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build details for bug reports.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the heatgate version and build details",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("heatgate %s\n", version)
		cmd.Printf("  commit:   %s\n", commit)
		cmd.Printf("  built:    %s\n", date)
		cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
