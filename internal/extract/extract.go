// Package extract converts if/else-if/else chains into condition trees.
//
// For an if statement with condition C the result is always a then
// branch C followed by exactly one else-shaped branch !(C):
//
//   - else if: !(C) whose children are the extraction of the nested if
//   - else { }: !(C) whose children come from ifs directly inside the block
//   - no else: !(C) as a childless leaf (the implicit fall-through path)
//
// Only if statements that are direct children of a then/else block are
// descended into. An if nested in a loop, switch or bare block is not part
// of the tree.
package extract

import (
	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/syntax"
)

// Counts tallies the branch kinds seen during extraction.
type Counts struct {
	Then         int `json:"then"`
	Else         int `json:"else"`
	ElseIf       int `json:"else_if"`
	ImplicitElse int `json:"implicit_else"`
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.Then += o.Then
	c.Else += o.Else
	c.ElseIf += o.ElseIf
	c.ImplicitElse += o.ImplicitElse
}

// Forest extracts one tree per if statement found directly in body.
// Independent ifs in sequence become sibling roots, each contributing
// its then branch and its else-shaped branch. A body without direct
// if statements yields an empty forest.
func Forest(body syntax.Block, counts *Counts) branch.Forest {
	return branch.Forest(block(body, counts))
}

// Conditional extracts the branches of a single if statement.
// counts may be nil.
func Conditional(n syntax.If, counts *Counts) []branch.Branch {
	if counts == nil {
		counts = &Counts{}
	}

	cond := n.Condition()
	negated := branch.Negate(cond)

	counts.Then++
	out := []branch.Branch{{
		Condition: cond,
		Children:  block(n.Then(), counts),
	}}

	alt := n.Else()
	switch {
	case alt == nil:
		counts.ImplicitElse++
		out = append(out, branch.Branch{Condition: negated})

	case alt.Kind() == syntax.KindIf:
		counts.ElseIf++
		out = append(out, branch.Branch{
			Condition: negated,
			Children:  Conditional(alt.(syntax.If), counts),
		})

	case alt.Kind() == syntax.KindBlock:
		counts.Else++
		out = append(out, branch.Branch{
			Condition: negated,
			Children:  block(alt.(syntax.Block), counts),
		})

	default:
		// Bare statement after else: a leaf else branch.
		counts.Else++
		out = append(out, branch.Branch{Condition: negated})
	}

	return out
}

// block extracts every if statement directly inside b.
func block(b syntax.Block, counts *Counts) []branch.Branch {
	var out []branch.Branch
	for _, n := range syntax.DirectIfs(b) {
		out = append(out, Conditional(n, counts)...)
	}
	return out
}
