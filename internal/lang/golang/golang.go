// Package golang is the Go frontend: it parses Go source with go/parser,
// discovers functions, methods and function literals bound to a
// declaration, and renders stubs as go test functions with t.Run
// subtests.
package golang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"

	"github.com/fzipp/gocyclo"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/lang"
	"github.com/unbound-force/branchstub/internal/render"
)

// Frontend implements lang.Frontend for Go.
type Frontend struct{}

// New returns the Go frontend.
func New() *Frontend { return &Frontend{} }

// Name implements lang.Frontend.
func (*Frontend) Name() string { return "Go" }

// Accepts implements lang.Frontend. Test files are rejected.
func (*Frontend) Accepts(path string) bool {
	return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
}

// CompanionPath implements lang.Frontend: foo.go -> foo_test.go.
func (*Frontend) CompanionPath(path string) string {
	return strings.TrimSuffix(path, ".go") + "_test.go"
}

// Tested implements lang.Frontend. A function counts as tested when
// the test file declares Test<Name> or Test_<Name>, case-insensitively.
func (*Frontend) Tested(name, testContent string) bool {
	re := regexp.MustCompile(`(?i)func\s+Test_?` + regexp.QuoteMeta(name) + `\s*\(`)
	return re.MatchString(testContent)
}

// Preamble implements lang.Frontend.
func (*Frontend) Preamble(src *lang.Source) string {
	pkg := "main"
	if src != nil && src.Package != "" {
		pkg = src.Package
	}
	return fmt.Sprintf("package %s\n\nimport \"testing\"\n", pkg)
}

// Dialect implements lang.Frontend.
func (*Frontend) Dialect(indent string) render.Dialect {
	return render.GoTest{Unit: indent}
}

// Parse implements lang.Frontend.
func (*Frontend) Parse(path string, src []byte) (*lang.Source, error) {
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lang.ErrMalformed, err)
	}

	f := &file{fset: fset, src: src}
	out := &lang.Source{Path: path, Package: af.Name.Name}

	in := inspector.New([]*ast.File{af})
	filter := []ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}
	in.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Body == nil {
				return false
			}
			out.Declarations = append(out.Declarations, funcDecl(f, fn))
		case *ast.FuncLit:
			var parent ast.Node
			if len(stack) >= 2 {
				parent = stack[len(stack)-2]
			}
			name := boundName(parent, fn)
			if name == "" {
				out.IgnoredLambdas++
				return true
			}
			out.Declarations = append(out.Declarations, lang.Declaration{
				Name:       name,
				Kind:       branch.Lambda,
				Visibility: identVisibility(name),
				Line:       fset.Position(fn.Pos()).Line,
				Complexity: gocyclo.Complexity(fn),
				Body:       f.block(fn.Body),
			})
		}
		return true
	})

	return out, nil
}

func funcDecl(f *file, fd *ast.FuncDecl) lang.Declaration {
	d := lang.Declaration{
		Name:       fd.Name.Name,
		Kind:       branch.Function,
		Visibility: identVisibility(fd.Name.Name),
		Line:       f.fset.Position(fd.Pos()).Line,
		Complexity: gocyclo.Complexity(fd),
		Body:       f.block(fd.Body),
	}

	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		recv := receiverType(fd.Recv.List[0].Type)
		d.Kind = branch.Method
		if recv != "" {
			d.Name = recv + "_" + fd.Name.Name
			if d.Visibility == branch.Public && !ast.IsExported(recv) {
				d.Visibility = branch.Protected
			}
		}
	}
	return d
}

// identVisibility maps Go export rules onto visibility levels.
func identVisibility(name string) branch.Visibility {
	if ast.IsExported(name) {
		return branch.Public
	}
	return branch.Private
}

// receiverType returns the base type name of a receiver expression,
// stripping pointers and type parameters.
func receiverType(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// boundName returns the identifier a function literal is bound to by
// its direct parent: a var/const spec or a := assignment. Any other
// context yields "".
func boundName(parent ast.Node, fn *ast.FuncLit) string {
	switch p := parent.(type) {
	case *ast.ValueSpec:
		for i, v := range p.Values {
			if v == fn && i < len(p.Names) {
				return nonBlank(p.Names[i].Name)
			}
		}
	case *ast.AssignStmt:
		if p.Tok != token.DEFINE {
			return ""
		}
		for i, v := range p.Rhs {
			if v != fn || i >= len(p.Lhs) {
				continue
			}
			if id, ok := p.Lhs[i].(*ast.Ident); ok {
				return nonBlank(id.Name)
			}
		}
	}
	return ""
}

func nonBlank(name string) string {
	if name == "_" {
		return ""
	}
	return name
}
