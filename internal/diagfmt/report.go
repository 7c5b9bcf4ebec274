package diagfmt

import (
	"fmt"
	"io"

	"clens/internal/diag"
	"clens/internal/driver"
	"clens/internal/source"
)

// RenderOpts bundles the options of every output format.
type RenderOpts struct {
	Format  Format
	Pretty  PrettyOpts
	JSON    JSONOpts
	Timings bool
}

type section struct {
	title string
	write func() error
}

// Render writes the full analysis bundle of one file in the selected format.
// file is used for paths and source lines; it may be nil for anonymous input.
func Render(w io.Writer, res *driver.Result, file *source.File, opts RenderOpts) error {
	path := ""
	if file != nil {
		path = file.FormatPath(opts.Pretty.PathMode.String(), opts.Pretty.BaseDir)
	}
	switch opts.Format {
	case FormatJSON:
		return JSON(w, NewBundle(res, path, opts.Timings), opts.JSON)
	case FormatMsgpack:
		return Msgpack(w, NewBundle(res, path, opts.Timings))
	case FormatShort:
		if path == "" {
			path = "<input>"
		}
		return Short(w, res.Diagnostics, path)
	}

	sections := []section{
		{"Tokens", func() error { return FormatTokens(w, res.Tokens) }},
		{"Parse tree", func() error { return FormatTree(w, res.Tree) }},
		{"Scopes", func() error { return FormatScopes(w, res.Scopes) }},
		{"Control flow", func() error { return FormatFlow(w, res.Flow, res.Tree) }},
		{"Complexity", func() error { return FormatComplexity(w, res.Complexity) }},
		{"Diagnostics", func() error { return RenderDiagnostics(w, res, file, opts.Pretty) }},
	}
	if opts.Timings {
		sections = append(sections, section{"Timings", func() error { return FormatTimings(w, res.Timings) }})
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", s.title); err != nil {
			return err
		}
		if err := s.write(); err != nil {
			return fmt.Errorf("%s: %w", s.title, err)
		}
	}
	return nil
}

// RenderDiagnostics writes only the diagnostics of res in pretty form,
// followed by a one-line summary.
func RenderDiagnostics(w io.Writer, res *driver.Result, file *source.File, opts PrettyOpts) error {
	if err := Pretty(w, res.Diagnostics, file, opts); err != nil {
		return err
	}
	if len(res.Diagnostics) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Summary(res))
	return err
}

// Summary counts diagnostics by severity.
func Summary(res *driver.Result) string {
	var errs, warns, infos int
	for _, d := range res.Diagnostics {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	if errs+warns+infos == 0 {
		return "no diagnostics"
	}
	return fmt.Sprintf("%d error(s), %d warning(s), %d info", errs, warns, infos)
}
