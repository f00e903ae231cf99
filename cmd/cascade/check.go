package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cascade/internal/diagfmt"
	"cascade/internal/driver"
	"cascade/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Parse CascadeLang files without evaluating them",
	Long:  `Check parses every given file (directories are scanned for *.casc recursively) in parallel and reports diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("ui", false, "render interactive progress (requires a terminal)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	showUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	files, err := driver.ListSourceFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no .casc files found")
		return nil
	}

	var observer func(driver.CheckEvent)
	var events chan driver.CheckEvent
	var uiDone chan error

	if showUI && isTerminal(os.Stdout) {
		events = make(chan driver.CheckEvent, len(files)*2)
		observer = func(ev driver.CheckEvent) { events <- ev }
		uiDone = make(chan error, 1)
		model := ui.NewProgressModel("cascade check", files, events)
		go func() {
			_, err := tea.NewProgram(model).Run()
			uiDone <- err
		}()
	}

	results, err := driver.CheckPaths(cmd.Context(), files, maxDiagnostics(cmd), observer)
	if events != nil {
		close(events)
		<-uiDone
	}
	if err != nil {
		return err
	}

	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			failed++
			continue
		}
		if res.Bag.HasErrors() || res.Bag.HasWarnings() {
			res.Bag.Sort()
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, prettyOpts)
		}
		if res.Bag.HasErrors() {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d file(s) failed\n", failed, len(results))
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "%d file(s) ok\n", len(results))
	return nil
}
