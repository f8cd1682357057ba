package branch

// NoticeFunc receives the condition text of every duplicated wrapper
// removed by Sanitize. It is purely informational.
type NoticeFunc func(condition string)

// Sanitize removes redundant tree levels from b. Every child whose
// condition textually equals b's condition is treated as a wrapper:
// it is dropped and its own children are spliced into b's children
// in its place, repeatedly, so a wrapper nested inside a wrapper
// collapses in one pass. The rule is then applied recursively to the
// resulting children. A duplicated child that is itself a leaf is
// kept: the leaf count of the tree never changes.
//
// Sanitize never modifies b; it returns a new tree. notice may be nil.
func Sanitize(b Branch, notice NoticeFunc) Branch {
	out := Branch{Condition: b.Condition}
	if b.IsLeaf() {
		return out
	}

	var children []Branch
	var splice func(cs []Branch)
	splice = func(cs []Branch) {
		for _, c := range cs {
			// A leaf duplicate stands for a path of its own (the
			// then-arm of a repeated test), so dropping it would lose
			// a test case.
			if c.Condition == b.Condition && !c.IsLeaf() {
				if notice != nil {
					notice(b.Condition)
				}
				splice(c.Children)
				continue
			}
			children = append(children, c)
		}
	}
	splice(b.Children)

	out.Children = make([]Branch, 0, len(children))
	for _, c := range children {
		out.Children = append(out.Children, Sanitize(c, notice))
	}
	return out
}

// SanitizeForest applies Sanitize to every root of f.
func SanitizeForest(f Forest, notice NoticeFunc) Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, 0, len(f))
	for _, b := range f {
		out = append(out, Sanitize(b, notice))
	}
	return out
}
