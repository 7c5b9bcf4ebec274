package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"clens/internal/diag"
	"clens/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, help *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		help:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.help} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//	   3 | int x = @;
//	     |         ^
//
// затем (опционально) контекст и подсказки. file may be nil; the source line
// is skipped then.
func Pretty(w io.Writer, diags []diag.Diagnostic, file *source.File, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	path := "<input>"
	if file != nil {
		path = file.FormatPath(opts.PathMode.String(), opts.BaseDir)
	}
	for i, d := range diags {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, p, d, path, file, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, path string, file *source.File, opts PrettyOpts) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s %s: %s\n",
		path, d.Line, d.Column,
		p.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String())),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)

	if file != nil {
		if line := strings.TrimRight(file.GetLine(d.Line), "\r"); line != "" {
			num := fmt.Sprintf("%d", d.Line)
			pad := strings.Repeat(" ", len(num))
			fmt.Fprintf(&b, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)
			fmt.Fprintf(&b, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), caretIndent(line, d.Column), p.caret.Sprint(marker(file, d)))
		}
	}

	if opts.ShowContext {
		if d.Context != "" {
			fmt.Fprintf(&b, "  %s %s\n", p.help.Sprint("context:"), d.Context)
		}
		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "  %s %s\n", p.help.Sprint("help:"), s)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// marker is a caret followed by tildes under the rest of the primary span.
// The span is cut at the first newline.
func marker(file *source.File, d diag.Diagnostic) string {
	sp := d.Primary
	if sp.Empty() || sp.File != file.ID || int(sp.End) > len(file.Content) || sp.Start > sp.End {
		return "^"
	}
	text := string(file.Content[sp.Start:sp.End])
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	width := runewidth.StringWidth(text)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

// caretIndent returns the whitespace that puts a caret under the rune at the
// 1-based column col. Tabs are kept so the caret lines up in a terminal;
// wide runes take their display width.
func caretIndent(line string, col uint32) string {
	if col <= 1 {
		return ""
	}
	var b strings.Builder
	n := uint32(1)
	for _, r := range line {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		n++
	}
	// колонка за концом строки (например, незакрытая скобка в конце файла)
	if n < col {
		b.WriteString(strings.Repeat(" ", int(col-n)))
	}
	return b.String()
}

// Short renders diagnostics in the one-line-per-diagnostic format.
func Short(w io.Writer, diags []diag.Diagnostic, path string) error {
	if len(diags) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, diag.FormatShort(diags, path))
	return err
}
