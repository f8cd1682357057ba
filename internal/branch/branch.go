// Package branch defines the condition tree produced by branch
// extraction: each Branch is one mutually exclusive path through an
// if/else chain, carrying the source text of its guarding condition
// and the nested paths reachable only when it is taken.
package branch

import (
	"fmt"
	"strings"
)

// Branch is one node of a condition tree.
type Branch struct {
	// Condition is the source text of the boolean expression that
	// must hold for this branch, or its textual negation "!(expr)".
	Condition string `json:"condition"`

	// Children are the nested branches, in document order. An empty
	// slice marks a leaf.
	Children []Branch `json:"children,omitempty"`
}

// Negate wraps cond as "!(cond)". No simplification is attempted,
// so negating an already-negated condition nests the wrapper.
func Negate(cond string) string {
	return fmt.Sprintf("!(%s)", cond)
}

// IsLeaf reports whether b has no nested branches.
func (b Branch) IsLeaf() bool {
	return len(b.Children) == 0
}

// LeafCount returns the number of terminal branches under b,
// counting b itself when it is a leaf.
func (b Branch) LeafCount() int {
	if b.IsLeaf() {
		return 1
	}
	n := 0
	for _, c := range b.Children {
		n += c.LeafCount()
	}
	return n
}

// Depth returns the number of levels in the tree rooted at b.
func (b Branch) Depth() int {
	d := 0
	for _, c := range b.Children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// Forest is the ordered set of independent trees rooted at the
// top-level conditionals of one function.
type Forest []Branch

// LeafCount returns the total number of terminal branches in f.
func (f Forest) LeafCount() int {
	n := 0
	for _, b := range f {
		n += b.LeafCount()
	}
	return n
}

// String renders f as an indented outline, one condition per line.
// It is meant for logs and test failure messages.
func (f Forest) String() string {
	var sb strings.Builder
	var walk func(bs []Branch, depth int)
	walk = func(bs []Branch, depth int) {
		for _, b := range bs {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(b.Condition)
			sb.WriteByte('\n')
			walk(b.Children, depth+1)
		}
	}
	walk(f, 0)
	return sb.String()
}
