package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cascade/internal/diag"
	"cascade/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем (при opts.ShowNotes)
// по одной строке заголовка на каждую Note, без контекста.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

// PrettyDiagnostic renders a single diagnostic (used for runtime errors
// that never go through a Bag).
func PrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	prettyOne(w, d, fs, opts)
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := file.FormatPath(opts.PathMode.formatString(), fs.BaseDir())

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, d.Code.String(), d.Message)

	prettyContext(w, file, d.Primary, start, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteStart, _ := fs.Resolve(note.Span)
			notePath := fs.Get(note.Span.File).FormatPath(opts.PathMode.formatString(), fs.BaseDir())
			label := "note"
			if opts.Color {
				label = dimColor.Sprint(label)
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", notePath, noteStart.Line, noteStart.Col, label, note.Msg)
		}
	}
}

// prettyContext печатает строку с ошибкой (и соседей по opts.Context)
// и подчёркивание ^~~~ под span.
func prettyContext(w io.Writer, file *source.File, sp source.Span, start source.LineCol, opts PrettyOpts) {
	first := start.Line
	if ctx := uint32(max(int8(0), opts.Context)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}

	for lineNum := first; lineNum <= start.Line; lineNum++ {
		line := file.GetLine(lineNum)
		display := line
		if opts.Width > 0 && runewidth.StringWidth(display) > int(opts.Width) {
			display = runewidth.Truncate(display, int(opts.Width)-3, "...")
		}
		fmt.Fprintf(w, "  %4d | %s\n", lineNum, display)

		if lineNum != start.Line {
			continue
		}

		// подчёркивание: ширина префикса до колонки + ^~~~ по длине span (в рамках строки)
		prefix := ""
		if int(start.Col)-1 <= len(line) {
			prefix = line[:start.Col-1]
		}
		pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
		spanLen := int(sp.Len())
		if spanLen < 1 {
			spanLen = 1
		}
		if remaining := len(line) - len(prefix); spanLen > remaining && remaining > 0 {
			spanLen = remaining
		}
		marker := "^" + strings.Repeat("~", max(0, spanLen-1))
		if opts.Color {
			marker = caretColor.Sprint(marker)
		}
		fmt.Fprintf(w, "       | %s%s\n", pad, marker)
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
