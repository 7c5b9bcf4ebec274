package driver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// DefaultInclude selects C sources and headers.
var DefaultInclude = []string{"*.c", "*.h"}

// DefaultExclude skips VCS and dependency directories.
var DefaultExclude = []string{".git", ".hg", "node_modules", "vendor"}

// Filter decides which files of a tree are analysed. Patterns are matched
// against base names: include against files, exclude against files and
// directories (an excluded directory is not descended into).
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles the patterns; empty include falls back to DefaultInclude.
func NewFilter(include, exclude []string) (*Filter, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	f := &Filter{}
	for _, p := range include {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		f.include = append(f.include, g)
	}
	for _, p := range exclude {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// ExcludeDir reports whether the directory at path is skipped.
func (f *Filter) ExcludeDir(path string) bool {
	return matchAny(f.exclude, filepath.Base(path))
}

// Match reports whether the file at path is analysed.
func (f *Filter) Match(path string) bool {
	base := filepath.Base(path)
	return matchAny(f.include, base) && !matchAny(f.exclude, base)
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// List walks root and returns the matching files in lexical order.
func (f *Filter) List(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && f.ExcludeDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if f.Match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
