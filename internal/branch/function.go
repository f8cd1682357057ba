package branch

// Visibility is the access level of a discovered function.
type Visibility string

// Visibility levels.
const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Kind is the declaration shape a function was discovered from.
type Kind string

// Declaration kinds.
const (
	Method   Kind = "method"
	Function Kind = "function"
	Lambda   Kind = "lambda"
)

// Func is one discovered testable unit together with its branch
// forest. A function with no top-level conditionals has an empty
// forest and renders as a single pending test.
type Func struct {
	// Name identifies the function in test names and in the
	// already-tested check. For Go methods it is "Recv_Method".
	Name string `json:"name"`

	// Kind is the declaration shape.
	Kind Kind `json:"kind"`

	// Visibility is the access level.
	Visibility Visibility `json:"visibility"`

	// Line is the 1-based source line of the declaration.
	Line int `json:"line"`

	// Complexity is the cyclomatic complexity, when the frontend
	// computes it. Zero means unknown.
	Complexity int `json:"complexity,omitempty"`

	// AlreadyTested is set when the companion test file already
	// holds a test group for Name.
	AlreadyTested bool `json:"already_tested"`

	// Forest holds one tree per top-level conditional.
	Forest Forest `json:"forest"`
}
