package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "editkit",
		Short: "Bidirectional view/model tree conversion for rich content",
		Long: `EditKit converts presentational view trees into semantic model
trees and streams model changes back as view patches.

  • Upcast: view JSON documents become typed model elements
  • Downcast: model attribute changes become view patch streams
  • Exactly-once conversion via cooperative consumable gates`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		convertCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %s\n", red("Error:"), err)
		os.Exit(1)
	}
}
