// Package complexity derives a heuristic time/space estimate from loop
// nesting. Depth grows only on FOR and WHILE statements; IF statements are
// counted as branches but never deepen the nest.
package complexity

import (
	"fmt"

	"clens/internal/ast"
)

type Time struct {
	Class   Class    `json:"class" msgpack:"class"`
	Factors []string `json:"factors" msgpack:"factors"`
}

type Space struct {
	Class   Class    `json:"class" msgpack:"class"`
	Details []string `json:"details" msgpack:"details"`
}

type Suggestion struct {
	Title       string `json:"title" msgpack:"title"`
	Description string `json:"description" msgpack:"description"`
}

// Stats are the raw counts the estimate is derived from.
type Stats struct {
	Loops    int
	Branches int
	MaxDepth int
}

type Report struct {
	Time        Time         `json:"time" msgpack:"time"`
	Space       Space        `json:"space" msgpack:"space"`
	Suggestions []Suggestion `json:"suggestions" msgpack:"suggestions"`
	Stats       Stats        `json:"-" msgpack:"-"`
}

const (
	nestedLoopThreshold = 2
	branchThreshold     = 5
)

var (
	reduceNesting = Suggestion{
		Title:       "Reduce nested loops",
		Description: "Deeply nested loops multiply running time. Consider precomputing lookups or splitting the work into separate passes.",
	}
	simplifyBranches = Suggestion{
		Title:       "Simplify conditional logic",
		Description: "Many conditional branches make control flow hard to follow. Consider a lookup table or extracting helper functions.",
	}
)

// Estimate computes the report for tree.
func Estimate(tree *ast.Tree) *Report {
	var st Stats
	if tree != nil {
		count(tree, tree.Root, 0, &st)
	}
	return fromStats(st)
}

func count(tree *ast.Tree, id ast.NodeID, depth int, st *Stats) {
	n := tree.Node(id)
	switch {
	case n.Kind.IsLoop():
		st.Loops++
		depth++
		st.MaxDepth = max(st.MaxDepth, depth)
	case n.Kind.IsBranch():
		st.Branches++
	}
	for _, c := range n.Children {
		count(tree, c, depth, st)
	}
}

func fromStats(st Stats) *Report {
	r := &Report{
		Time:        Time{Class: timeClass(st.MaxDepth), Factors: []string{}},
		Space:       Space{Class: spaceClass(st.MaxDepth)},
		Suggestions: []Suggestion{},
		Stats:       st,
	}

	if st.Loops > 0 {
		r.Time.Factors = append(r.Time.Factors, fmt.Sprintf("Contains %d loop(s)", st.Loops))
	}
	if st.MaxDepth > 1 {
		r.Time.Factors = append(r.Time.Factors, fmt.Sprintf("Maximum nesting depth: %d", st.MaxDepth))
	}
	if st.Branches > 0 {
		r.Time.Factors = append(r.Time.Factors, fmt.Sprintf("Contains %d conditional branch(es)", st.Branches))
	}

	r.Space.Details = []string{fmt.Sprintf("Stack depth: %d", st.MaxDepth+1)}
	if st.Loops > 0 {
		r.Space.Details = append(r.Space.Details, fmt.Sprintf("Loop variable(s): %d", st.Loops))
	}

	if st.MaxDepth > nestedLoopThreshold {
		r.Suggestions = append(r.Suggestions, reduceNesting)
	}
	if st.Branches > branchThreshold {
		r.Suggestions = append(r.Suggestions, simplifyBranches)
	}
	return r
}

// IsNestedLoop reports whether the loop at id sits inside another loop.
// Uses the parent back-references, so it works on any node of the tree.
func IsNestedLoop(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	if n == nil || !n.Kind.IsLoop() {
		return false
	}
	nested := false
	tree.Ancestors(id, func(a *ast.Node) bool {
		if a.Kind.IsLoop() {
			nested = true
			return false
		}
		return true
	})
	return nested
}
