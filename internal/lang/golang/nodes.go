package golang

import (
	"go/ast"
	"go/token"

	"github.com/unbound-force/branchstub/internal/syntax"
)

// file holds what the syntax adapters need to recover source text.
type file struct {
	fset *token.FileSet
	src  []byte
}

// text returns the exact source text of n.
func (f *file) text(n ast.Node) string {
	tf := f.fset.File(n.Pos())
	if tf == nil {
		return ""
	}
	start, end := tf.Offset(n.Pos()), tf.Offset(n.End())
	if start < 0 || end > len(f.src) || start > end {
		return ""
	}
	return string(f.src[start:end])
}

// node wraps a statement in its syntax adapter.
func (f *file) node(s ast.Stmt) syntax.Node {
	switch s := s.(type) {
	case *ast.IfStmt:
		return &ifStmt{f: f, n: s}
	case *ast.BlockStmt:
		return f.block(s)
	default:
		return syntax.Other{}
	}
}

// block returns nil for a nil block so callers see an untyped nil.
func (f *file) block(b *ast.BlockStmt) syntax.Block {
	if b == nil {
		return nil
	}
	return &blockStmt{f: f, n: b}
}

type blockStmt struct {
	f *file
	n *ast.BlockStmt
}

func (*blockStmt) Kind() syntax.Kind { return syntax.KindBlock }

func (b *blockStmt) Statements() []syntax.Node {
	out := make([]syntax.Node, 0, len(b.n.List))
	for _, s := range b.n.List {
		out = append(out, b.f.node(s))
	}
	return out
}

type ifStmt struct {
	f *file
	n *ast.IfStmt
}

func (*ifStmt) Kind() syntax.Kind { return syntax.KindIf }

// Condition excludes the init statement: for "if v, ok := m[k]; ok"
// the condition is "ok".
func (i *ifStmt) Condition() string { return i.f.text(i.n.Cond) }

func (i *ifStmt) Then() syntax.Block { return i.f.block(i.n.Body) }

func (i *ifStmt) Else() syntax.Node {
	if i.n.Else == nil {
		return nil
	}
	return i.f.node(i.n.Else)
}
