// Package typescript is the TypeScript frontend. It parses source with
// tree-sitter, discovers methods, function declarations and arrow
// functions bound to a variable or class property, and renders stubs
// as Jasmine describe/xit blocks.
package typescript

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsgrammar "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/lang"
	"github.com/unbound-force/branchstub/internal/render"
)

// Frontend implements lang.Frontend for TypeScript.
type Frontend struct{}

// New returns the TypeScript frontend.
func New() *Frontend { return &Frontend{} }

// Name implements lang.Frontend.
func (*Frontend) Name() string { return "TypeScript" }

// Accepts implements lang.Frontend. Spec files and declaration files
// are rejected.
func (*Frontend) Accepts(path string) bool {
	if !strings.HasSuffix(path, ".ts") {
		return false
	}
	for _, suffix := range []string{".spec.ts", ".test.ts", ".d.ts"} {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}
	return true
}

// CompanionPath implements lang.Frontend: foo.ts -> foo.spec.ts.
func (*Frontend) CompanionPath(path string) string {
	return strings.TrimSuffix(path, ".ts") + ".spec.ts"
}

// Tested implements lang.Frontend using the describe naming convention:
// describe, xdescribe or fdescribe whose title starts with the name,
// optionally prefixed by '#', case-insensitively.
func (*Frontend) Tested(name, testContent string) bool {
	re := regexp.MustCompile("(?i)[xf]?describe\\(['\"`]#?" + regexp.QuoteMeta(name))
	return re.MatchString(testContent)
}

// Preamble implements lang.Frontend. Spec files need no header.
func (*Frontend) Preamble(*lang.Source) string { return "" }

// Dialect implements lang.Frontend.
func (*Frontend) Dialect(indent string) render.Dialect {
	return render.Jasmine{Unit: indent}
}

// Parse implements lang.Frontend. A tree containing error nodes is
// reported as malformed. The returned Source owns the tree.
func (*Frontend) Parse(path string, src []byte) (*lang.Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsgrammar.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: %s has syntax errors", lang.ErrMalformed, path)
	}

	// Declaration bodies point into the tree, so it lives until the
	// caller closes the Source.
	out := &lang.Source{Path: path, Release: tree.Close}
	discover(root, src, out)
	return out, nil
}

// discover walks the tree in document order collecting declarations.
func discover(n *sitter.Node, src []byte, out *lang.Source) {
	switch n.Type() {
	case "method_definition":
		if d, ok := method(n, src); ok {
			out.Declarations = append(out.Declarations, d)
		}
	case "function_declaration":
		if d, ok := function(n, src); ok {
			out.Declarations = append(out.Declarations, d)
		}
	case "arrow_function":
		if d, ok := arrow(n, src); ok {
			out.Declarations = append(out.Declarations, d)
		} else {
			out.IgnoredLambdas++
		}
	}

	for _, c := range namedChildren(n) {
		discover(c, src, out)
	}
}

func method(n *sitter.Node, src []byte) (lang.Declaration, bool) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return lang.Declaration{}, false
	}
	return lang.Declaration{
		Name:       name.Content(src),
		Kind:       branch.Method,
		Visibility: accessibility(n, src),
		Line:       line(n),
		Body:       blockOf(body, src),
	}, true
}

// function handles free functions, which carry no access modifier.
func function(n *sitter.Node, src []byte) (lang.Declaration, bool) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return lang.Declaration{}, false
	}
	return lang.Declaration{
		Name:       name.Content(src),
		Kind:       branch.Function,
		Visibility: branch.Public,
		Line:       line(n),
		Body:       blockOf(body, src),
	}, true
}

// arrow accepts only arrow functions that are the value of a variable
// declarator or a class property.
func arrow(n *sitter.Node, src []byte) (lang.Declaration, bool) {
	parent := n.Parent()
	if parent == nil {
		return lang.Declaration{}, false
	}

	visibility := branch.Public
	switch parent.Type() {
	case "variable_declarator":
	case "public_field_definition":
		visibility = accessibility(parent, src)
	default:
		return lang.Declaration{}, false
	}

	name := parent.ChildByFieldName("name")
	if name == nil {
		return lang.Declaration{}, false
	}
	return lang.Declaration{
		Name:       name.Content(src),
		Kind:       branch.Lambda,
		Visibility: visibility,
		Line:       line(n),
		Body:       blockOf(n.ChildByFieldName("body"), src),
	}, true
}

// accessibility reads the accessibility_modifier child of a class
// member. Members without one are public.
func accessibility(n *sitter.Node, src []byte) branch.Visibility {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || c.Type() != "accessibility_modifier" {
			continue
		}
		switch strings.TrimSpace(c.Content(src)) {
		case "private":
			return branch.Private
		case "protected":
			return branch.Protected
		}
	}
	return branch.Public
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
