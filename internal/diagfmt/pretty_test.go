package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"cascade/internal/diag"
	"cascade/internal/diagfmt"
	"cascade/internal/source"
)

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.casc", []byte("let a = $\nprint a\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "unexpected character '$'",
		Primary:  source.Span{File: fileID, Start: 8, End: 9},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 0})
	out := buf.String()

	if !strings.Contains(out, "prog.casc:1:9: ERROR LEX1001: unexpected character '$'") {
		t.Errorf("missing header line in %q", out)
	}
	if !strings.Contains(out, "let a = $") {
		t.Errorf("missing source context in %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret in %q", out)
	}
}

func TestPrettyRuntimeDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.casc", []byte("print nope\n"))

	var buf bytes.Buffer
	diagfmt.PrettyDiagnostic(&buf, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.RunReferenceError,
		Message:  `undefined variable "nope"`,
		Primary:  source.Span{File: fileID, Start: 6, End: 10},
	}, fs, diagfmt.PrettyOpts{})

	if !strings.Contains(buf.String(), "prog.casc:1:7: ERROR RUN4001") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.casc", []byte("x\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynInfo,
		Message:  "something",
		Primary:  source.Span{File: fileID, Start: 0, End: 1},
	})

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"severity": "WARNING"`, `"code": "SYN2000"`, `"start_line": 1`, `"total": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s: %s", want, out)
		}
	}
}
