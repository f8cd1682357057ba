// Package syntax is the small, language-independent view of a parsed
// function body that branch extraction works on. Language frontends
// adapt their own syntax trees (go/ast, tree-sitter) to these
// interfaces; nothing here knows about a concrete grammar.
package syntax

// Kind classifies a statement node.
type Kind int

// Statement kinds.
const (
	// KindOther is any statement that is neither an if statement nor
	// a block. Extraction never descends into it.
	KindOther Kind = iota

	// KindIf is an if statement; the node implements If.
	KindIf

	// KindBlock is a braced statement list; the node implements Block.
	KindBlock
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIf:
		return "if"
	case KindBlock:
		return "block"
	default:
		return "other"
	}
}

// Node is any statement in a function body.
type Node interface {
	Kind() Kind
}

// Block is a braced statement list.
type Block interface {
	Node

	// Statements returns the direct-child statements in order.
	Statements() []Node
}

// If is a single if statement.
type If interface {
	Node

	// Condition returns the source text of the tested expression,
	// without surrounding parentheses.
	Condition() string

	// Then returns the consequence block, or nil when the consequence
	// is a single non-block statement.
	Then() Block

	// Else returns the alternative: nil when there is no else clause,
	// an If for "else if", a Block for "else { ... }", or a KindOther
	// node for a bare else statement.
	Else() Node
}

// Other is a Node of KindOther. Frontends may use it for any statement
// they do not need to expose.
type Other struct{}

// Kind implements Node.
func (Other) Kind() Kind { return KindOther }

// DirectIfs returns the if statements that are direct children of b,
// in order. Conditionals nested inside loops, switch cases or other
// statements are not returned. A nil block yields nil.
func DirectIfs(b Block) []If {
	if b == nil {
		return nil
	}
	var out []If
	for _, n := range b.Statements() {
		if n == nil || n.Kind() != KindIf {
			continue
		}
		if ifn, ok := n.(If); ok {
			out = append(out, ifn)
		}
	}
	return out
}
