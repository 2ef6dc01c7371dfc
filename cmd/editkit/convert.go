package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/editkit-dev/editkit"
	"github.com/editkit-dev/editkit/pkg/conversion"
)

func convertCmd() *cobra.Command {
	var (
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Upcast a view tree JSON document",
		Long: `Read a view tree JSON document, run the upcast pipeline with the
image feature installed, and print the resulting model tree.

Examples:
  editkit convert document.json
  editkit convert document.json -o model.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], output, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the model tree to a file instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the conversion summary")

	return cmd
}

func runConvert(path, output string, quiet bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	node, err := editkit.DecodeView(data)
	if err != nil {
		return err
	}

	result := editkit.Upcast(node)

	encoded, err := json.MarshalIndent(result.Root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model tree: %w", err)
	}

	if output != "" {
		if err := os.WriteFile(output, append(encoded, '\n'), 0o644); err != nil {
			return err
		}
	} else {
		fmt.Println(string(encoded))
	}

	if !quiet {
		printSummary(result, output)
	}
	return nil
}

func printSummary(result *conversion.UpcastResult, output string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(os.Stderr, "%s converted %d top-level node(s)\n",
		green("✓"), result.Root.ChildCount())
	if len(result.Declined) > 0 {
		fmt.Fprintf(os.Stderr, "%s %d node(s) declined by every converter:\n",
			yellow("!"), len(result.Declined))
		for _, id := range result.Declined {
			fmt.Fprintf(os.Stderr, "    %s\n", id)
		}
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "%s model tree written to %s\n", green("✓"), output)
	}
}
