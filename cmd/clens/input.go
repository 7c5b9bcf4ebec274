package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"clens/internal/driver"
	"clens/internal/source"
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "e", "", "analyse this code instead of a file")
}

// loadInput resolves the source of a single-input command: --code, a file
// path, or "-" (and no argument) for stdin.
func loadInput(cmd *cobra.Command, args []string) (*source.File, error) {
	fs := source.NewFileSet()
	code, _ := cmd.Flags().GetString("code")
	switch {
	case code != "":
		if len(args) > 0 {
			return nil, errors.New("--code and a file argument are mutually exclusive")
		}
		return fs.Get(fs.AddVirtual("<code>", []byte(code))), nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		content, flags := source.Normalize(data)
		return fs.Get(fs.Add("<stdin>", content, flags|source.FileVirtual)), nil
	default:
		id, err := fs.Load(args[0])
		if err != nil {
			return nil, err
		}
		return fs.Get(id), nil
	}
}

// analyzeInput loads the input and runs the full pipeline over it.
func analyzeInput(cmd *cobra.Command, args []string) (*source.File, *driver.Result, error) {
	file, err := loadInput(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	return file, driver.AnalyzeSource(cmd.Context(), file, current.opts), nil
}
