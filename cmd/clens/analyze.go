package main

import (
	"github.com/spf13/cobra"

	"clens/internal/diagfmt"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [file|-]",
	Short: "Run the full pipeline and print the whole bundle",
	Long: `Analyze runs every stage and prints tokens, parse tree, scopes, control flow,
complexity and diagnostics. JSON and msgpack use the field names tokens,
parseTree, scopes, flow, complexity and diagnostics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	addInputFlags(analyzeCmd)
	analyzeCmd.Flags().String("format", "", "output format (pretty|short|json|msgpack)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file, res, err := analyzeInput(cmd, args)
	if err != nil {
		return err
	}
	return diagfmt.Render(cmd.OutOrStdout(), res, file, current.renderOpts())
}
