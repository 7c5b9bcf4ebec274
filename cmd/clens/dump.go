package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"clens/internal/diagfmt"
	"clens/internal/driver"
)

// dumpCommand builds a command that prints one part of the analysis bundle.
// Diagnostics go to stderr so the dump on stdout stays machine-readable.
func dumpCommand(use, short string, pretty func(io.Writer, *driver.Result) error, part func(*diagfmt.Bundle) any) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [flags] [file|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, res, err := analyzeInput(cmd, args)
			if err != nil {
				return err
			}
			if !current.quiet && len(res.Diagnostics) > 0 {
				if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Diagnostics, file, current.pretty); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(part(diagfmt.NewBundle(res, file.Path, false)))
			}
			return pretty(out, res)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("json", false, "print JSON instead of text")
	return cmd
}

var tokenizeCmd = dumpCommand("tokenize", "Print the token stream",
	func(w io.Writer, r *driver.Result) error { return diagfmt.FormatTokens(w, r.Tokens) },
	func(b *diagfmt.Bundle) any { return b.Tokens })

var parseCmd = dumpCommand("parse", "Print the parse tree",
	func(w io.Writer, r *driver.Result) error { return diagfmt.FormatTree(w, r.Tree) },
	func(b *diagfmt.Bundle) any { return b.ParseTree })

var scopesCmd = dumpCommand("scopes", "Print variable scopes and declarations",
	func(w io.Writer, r *driver.Result) error { return diagfmt.FormatScopes(w, r.Scopes) },
	func(b *diagfmt.Bundle) any { return b.Scopes })

var flowCmd = dumpCommand("flow", "Print the control-flow view",
	func(w io.Writer, r *driver.Result) error { return diagfmt.FormatFlow(w, r.Flow, r.Tree) },
	func(b *diagfmt.Bundle) any { return b.Flow })

var complexityCmd = dumpCommand("complexity", "Print the heuristic complexity estimate",
	func(w io.Writer, r *driver.Result) error { return diagfmt.FormatComplexity(w, r.Complexity) },
	func(b *diagfmt.Bundle) any { return b.Complexity })
