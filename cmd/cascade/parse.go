package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cascade/internal/diagfmt"
	"cascade/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.casc",
	Short: "Parse a CascadeLang source file and dump the AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	result.Bag.Sort()
	switch format {
	case "pretty":
		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			opts := diagfmt.PrettyOpts{
				Color:   useColor(cmd, os.Stderr),
				Context: 2,
			}
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
		if err := diagfmt.JSON(os.Stderr, result.Bag, result.FileSet, jsonOpts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err := diagfmt.FormatAST(os.Stdout, result.Builder, result.FileID); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
