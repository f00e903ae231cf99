package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cascade/internal/diag"
	"cascade/internal/diagfmt"
	"cascade/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.casc]",
	Short: "Evaluate a CascadeLang program",
	Long:  `Parse and evaluate a CascadeLang source file. Without an argument the entry file is resolved from cascade.toml`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().String("heap-dump", "", "write a msgpack snapshot of the surviving heap to this path")
}

func runExecution(cmd *cobra.Command, args []string) error {
	var filePath string
	if len(args) == 1 {
		filePath = args[0]
	} else {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s", noCascadeTomlMessage)
		}
		filePath, err = resolveProjectRunTarget(manifest)
		if err != nil {
			return err
		}
	}

	heapDump, err := cmd.Flags().GetString("heap-dump")
	if err != nil {
		return fmt.Errorf("failed to get heap-dump flag: %w", err)
	}

	result, err := driver.Run(filePath, driver.RunOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		Out:            os.Stdout,
	})
	if err != nil {
		return err
	}

	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	}

	if result.Parse.Bag.HasErrors() || result.Parse.Bag.HasWarnings() {
		result.Parse.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Parse.Bag, result.Parse.FileSet, prettyOpts)
	}
	if result.Parse.Bag.HasErrors() {
		os.Exit(1)
	}

	if result.Heap != nil && heapDump != "" {
		if err := writeHeapDump(result, heapDump); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write heap dump: %v\n", err)
		}
	}

	if result.RuntimeErr != nil {
		d := diag.Diagnostic{
			Severity: diag.SevError,
			Code:     result.RuntimeErr.Code,
			Message:  result.RuntimeErr.Msg,
			Primary:  result.RuntimeErr.Span,
		}
		diagfmt.PrettyDiagnostic(os.Stderr, d, result.Parse.FileSet, prettyOpts)
		os.Exit(1)
	}

	return nil
}

func writeHeapDump(result *driver.RunResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := result.Heap.WriteSnapshot(f); err != nil {
		return err
	}
	return f.Sync()
}
