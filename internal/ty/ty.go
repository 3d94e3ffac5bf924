// Package ty implements the simple type layer of the kernel: base
// types and function arrows. Types carry no metavariables and no
// universes; they are compared purely structurally.
package ty

import "fmt"

// Ty is a simple type: either a base type or a function arrow. The
// two concrete shapes are sealed behind the interface as a small
// closed AST.
type Ty interface {
	isTy()
	String() string
}

// Base is an uninterpreted named sort, e.g. "Prop" or "nat". Names are
// never checked against a declared-types table — any identifier used
// in type position names a valid base type.
type Base struct {
	Name string
}

func (Base) isTy() {}

func (b Base) String() string { return b.Name }

// Arrow is a function type Left -> Right, right-associative.
type Arrow struct {
	Left  Ty
	Right Ty
}

func (Arrow) isTy() {}

func (a Arrow) String() string {
	left := a.Left.String()
	if _, ok := a.Left.(Arrow); ok {
		left = "(" + left + ")"
	}
	return fmt.Sprintf("%s -> %s", left, a.Right)
}

// Eq reports whether two types are structurally identical.
func Eq(a, b Ty) bool {
	switch av := a.(type) {
	case Base:
		bv, ok := b.(Base)
		return ok && av.Name == bv.Name
	case Arrow:
		bv, ok := b.(Arrow)
		return ok && Eq(av.Left, bv.Left) && Eq(av.Right, bv.Right)
	default:
		return false
	}
}
