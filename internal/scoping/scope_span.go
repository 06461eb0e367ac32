package scoping

import (
	"go/token"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/implicator/internal/imod"
)

// scopeSpan stores a [start,end] span for a lexical scope and, if
// needed, a nested RB-tree for scopes fully contained in this one.
type scopeSpan struct {
	start token.Pos
	end   token.Pos

	scope    *imod.Scope
	children *rbtree.Tree[*scopeSpan]
}

// Cmp defines ordering for the RB-tree as "disjoint by position".
// - return -1 if this span is strictly before other (ends before other's start)
// - return  1 if this span is strictly after  other (starts after other's end)
// - return  0 if spans overlap in any way (including containment).
//
// NOTE: We rely on an *invariant of the input*: any two overlapping
// scopes must be in a strict containment relationship, which is what
// lexical scoping gives us. Under this invariant, "equal" (0) means
// either superspan or subspan. The RB-tree then hands us the
// overlapping node via InsertReturn so the containment structure can
// be fixed up here.
func (n *scopeSpan) Cmp(other *scopeSpan) int {
	if n.end < other.start { // strictly before
		return -1
	}
	if n.start > other.end { // strictly after
		return 1
	}
	return 0 // overlapping (containment or equal boundaries)
}

func contains(a, b *scopeSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// attachInto inserts span s into RB-tree t, using the following containment rules:
//   - If t has no overlapping node, s is inserted as a sibling in t.
//   - If an overlapping node r exists and s contains r, mutate r in-place to become s
//     (so the pointer already present in the tree now represents s), and then re-attach
//     the old r as a child of the new s. This avoids needing a "Replace" operation.
//   - If r contains s, recursively attach s into r.children.
//
// Under the no-partial-overlap invariant, these are the only cases to handle.
func attachInto(t *rbtree.Tree[*scopeSpan], s *scopeSpan) {
	r := t.InsertReturn(s)
	if r == s {
		// Disjoint: brand new top-level entry.
		return
	}

	// Overlap found. Decide by containment.
	if contains(s, r) {
		// s is the superspan, overwrite r in-place.
		old := *r
		*r = *s

		if r.children == nil {
			r.children = rbtree.New[*scopeSpan]()
		}
		attachInto(r.children, &old)
		return
	}

	if contains(r, s) {
		// New span is a subspan of the existing node r, descend.
		if r.children == nil {
			r.children = rbtree.New[*scopeSpan]()
		}

		n := *s
		*s = *r

		attachInto(s.children, &n)
		return
	}

	// Partial overlap violates the lexical nesting invariant. Better to
	// blow up here than to resolve requirements against a broken tree.
	panic("attachInto: partial-overlap scope spans are not supported")
}

// pathAt returns the chain of scopes covering pos, outermost first.
func (x *Index) pathAt(pos token.Pos) []*imod.Scope {
	probe := &scopeSpan{start: pos, end: pos}
	n := x.tree.Search(probe)
	if n == nil {
		return nil
	}

	var path []*imod.Scope
	for n != nil {
		if n.scope != nil {
			path = append(path, n.scope)
		}
		if n.children == nil {
			break
		}
		n = n.children.Search(probe)
	}
	return path
}
