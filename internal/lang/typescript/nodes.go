package typescript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/branchstub/internal/syntax"
)

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func node(n *sitter.Node, src []byte) syntax.Node {
	switch n.Type() {
	case "if_statement":
		return &ifStmt{n: n, src: src}
	case "statement_block":
		return &block{n: n, src: src}
	default:
		return syntax.Other{}
	}
}

// blockOf returns n as a syntax.Block, or an untyped nil when n is not
// a statement block.
func blockOf(n *sitter.Node, src []byte) syntax.Block {
	if n == nil || n.Type() != "statement_block" {
		return nil
	}
	return &block{n: n, src: src}
}

type block struct {
	n   *sitter.Node
	src []byte
}

func (*block) Kind() syntax.Kind { return syntax.KindBlock }

func (b *block) Statements() []syntax.Node {
	children := namedChildren(b.n)
	out := make([]syntax.Node, 0, len(children))
	for _, c := range children {
		out = append(out, node(c, b.src))
	}
	return out
}

type ifStmt struct {
	n   *sitter.Node
	src []byte
}

func (*ifStmt) Kind() syntax.Kind { return syntax.KindIf }

// Condition strips the parentheses the grammar keeps around the
// tested expression.
func (i *ifStmt) Condition() string {
	c := i.n.ChildByFieldName("condition")
	if c == nil {
		return ""
	}
	text := strings.TrimSpace(c.Content(i.src))
	if c.Type() == "parenthesized_expression" &&
		strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

func (i *ifStmt) Then() syntax.Block {
	return blockOf(i.n.ChildByFieldName("consequence"), i.src)
}

func (i *ifStmt) Else() syntax.Node {
	alt := i.n.ChildByFieldName("alternative")
	if alt == nil {
		return nil
	}
	children := namedChildren(alt)
	if len(children) == 0 {
		return syntax.Other{}
	}
	return node(children[0], i.src)
}
