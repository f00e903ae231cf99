package driver

import (
	"io"

	"cascade/internal/diag"
	"cascade/internal/heap"
	"cascade/internal/interp"
)

// RunOptions configures an end-to-end evaluation.
type RunOptions struct {
	MaxDiagnostics int
	Out            io.Writer // print destination (nil — stdout)
}

// RunResult carries everything a caller needs to report the outcome.
type RunResult struct {
	Parse      *ParseResult
	Heap       *heap.Heap
	RuntimeErr *interp.Error
}

// Run parses and evaluates a source file. Parse/lex diagnostics live in
// Parse.Bag; a fatal runtime error (if any) is in RuntimeErr. The heap is
// returned even after a runtime error so callers can inspect or dump the
// surviving object graph.
func Run(filePath string, opts RunOptions) (*RunResult, error) {
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = 100
	}
	parsed, err := Parse(filePath, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	return runParsed(parsed, opts), nil
}

// RunVirtual evaluates in-memory source (tests, stdin).
func RunVirtual(name string, content []byte, opts RunOptions) (*RunResult, error) {
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = 100
	}
	parsed, err := ParseVirtual(name, content, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	return runParsed(parsed, opts), nil
}

func runParsed(parsed *ParseResult, opts RunOptions) *RunResult {
	result := &RunResult{Parse: parsed}
	if parsed.Bag.HasErrors() {
		return result
	}

	h := heap.New(nil)
	in := interp.New(parsed.FileSet, parsed.Builder, h, interp.Options{Out: opts.Out})
	result.Heap = h

	if err := in.Run(parsed.FileID); err != nil {
		if runErr, ok := err.(*interp.Error); ok {
			result.RuntimeErr = runErr
		} else {
			result.RuntimeErr = &interp.Error{
				Code: diag.UnknownCode,
				Msg:  err.Error(),
			}
		}
	}
	return result
}

// Failed reports whether the run ended with any error.
func (r *RunResult) Failed() bool {
	return r.Parse.Bag.HasErrors() || r.RuntimeErr != nil
}
