// Package term implements the kernel's term language: de Bruijn-indexed
// bound variables, a separate free-variable index space (indexed from
// the head of the ambient context, 0 = most recent), named
// metavariables, application, and lambda. Definitional equality is
// first-order: no delta-unfolding, no universes, no higher-order
// unification — a metavariable may only be assigned to a term that
// does not contain it.
package term

import (
	"fmt"

	"github.com/orizon-lang/minihol/internal/kernelerr"
	"github.com/orizon-lang/minihol/internal/ty"
)

// Term is a kernel term. The six concrete shapes are sealed behind
// the interface as a small closed expression AST.
type Term interface {
	isTerm()
	String() string
}

// BVar is a bound variable referring to the lambda binder idx levels
// out (0 = innermost).
type BVar struct{ Idx int }

// FVar is a free variable. Its index counts from the head of the
// ambient free-variable context (0 = most recently introduced), so
// pushing a new variable at the head shifts what existing indices
// refer to.
type FVar struct{ Idx int }

// MVar is a named metavariable, resolved (if at all) through an MCtx.
type MVar struct{ Name string }

// App is function application.
type App struct{ Fn, Arg Term }

// Lam is a lambda abstraction; Hint is the source name, kept for
// pretty-printing only (binding itself is positional).
type Lam struct {
	Hint string
	Ty   ty.Ty
	Body Term
}

// Const is a reference to a declared constant.
type Const struct{ Name string }

func (BVar) isTerm()  {}
func (FVar) isTerm()  {}
func (MVar) isTerm()  {}
func (App) isTerm()   {}
func (Lam) isTerm()   {}
func (Const) isTerm() {}

// CCtx maps constant names to their declared type.
type CCtx = map[string]ty.Ty

// FCtx is the ambient free-variable context: FCtx[0] is the most
// recently introduced variable, so FVar{Idx: i} refers to FCtx[i].
type FCtx = []ty.Ty

// BCtx is the bound-variable (lambda) context with the same
// head-is-innermost convention as FCtx.
type BCtx = []ty.Ty

// LiftB adds n to every BVar at or above depth k (used when moving a
// term under additional binders).
func LiftB(t Term, n, k int) Term {
	if n == 0 {
		return t
	}
	switch v := t.(type) {
	case BVar:
		if v.Idx >= k {
			return BVar{v.Idx + n}
		}
		return v
	case FVar, MVar, Const:
		return t
	case App:
		return App{LiftB(v.Fn, n, k), LiftB(v.Arg, n, k)}
	case Lam:
		return Lam{v.Hint, v.Ty, LiftB(v.Body, n, k+1)}
	default:
		panic("term: unreachable")
	}
}

// SubstB replaces BVar{k} with u (lifted to account for the k binders
// already passed when the substitution reaches it) and shifts every
// BVar above k down by one, consuming the binder k refers to. This is
// ordinary capture-avoiding de Bruijn substitution, used for beta
// reduction.
func SubstB(t Term, u Term, k int) Term {
	switch v := t.(type) {
	case BVar:
		switch {
		case v.Idx == k:
			return LiftB(u, k, 0)
		case v.Idx > k:
			return BVar{v.Idx - 1}
		default:
			return v
		}
	case FVar, MVar, Const:
		return t
	case App:
		return App{SubstB(v.Fn, u, k), SubstB(v.Arg, u, k)}
	case Lam:
		return Lam{v.Hint, v.Ty, SubstB(v.Body, u, k+1)}
	default:
		panic("term: unreachable")
	}
}

// LiftF adds n to every FVar at or above depth k. Lam does not
// change free-variable depth, since lambda binds a BVar, not an FVar.
func LiftF(t Term, n, k int) Term {
	if n == 0 {
		return t
	}
	switch v := t.(type) {
	case FVar:
		if v.Idx >= k {
			return FVar{v.Idx + n}
		}
		return v
	case BVar, MVar, Const:
		return t
	case App:
		return App{LiftF(v.Fn, n, k), LiftF(v.Arg, n, k)}
	case Lam:
		return Lam{v.Hint, v.Ty, LiftF(v.Body, n, k)}
	default:
		panic("term: unreachable")
	}
}

// SubstF replaces FVar{k} with u and shifts every FVar above k down
// by one. Used by rule.All elimination to plug in the witness for the
// innermost still-bound free-variable slot.
func SubstF(t Term, u Term, k int) Term {
	switch v := t.(type) {
	case FVar:
		switch {
		case v.Idx == k:
			return u
		case v.Idx > k:
			return FVar{v.Idx - 1}
		default:
			return v
		}
	case BVar, MVar, Const:
		return t
	case App:
		return App{SubstF(v.Fn, u, k), SubstF(v.Arg, u, k)}
	case Lam:
		return Lam{v.Hint, v.Ty, SubstF(v.Body, u, k)}
	default:
		panic("term: unreachable")
	}
}

// InstM replaces every assigned metavariable with its (transitively
// instantiated) value.
func InstM(mctx MCtx, t Term) Term {
	switch v := t.(type) {
	case MVar:
		if val, ok := mctx.Assign[v.Name]; ok {
			return InstM(mctx, val)
		}
		return v
	case BVar, FVar, Const:
		return v
	case App:
		return App{InstM(mctx, v.Fn), InstM(mctx, v.Arg)}
	case Lam:
		return Lam{v.Hint, v.Ty, InstM(mctx, v.Body)}
	default:
		panic("term: unreachable")
	}
}

// OccursM reports whether metavariable m occurs in t, following
// existing assignments transitively.
func OccursM(mctx MCtx, t Term, m string) bool {
	switch v := t.(type) {
	case MVar:
		if v.Name == m {
			return true
		}
		if val, ok := mctx.Assign[v.Name]; ok {
			return OccursM(mctx, val, m)
		}
		return false
	case BVar, FVar, Const:
		return false
	case App:
		return OccursM(mctx, v.Fn, m) || OccursM(mctx, v.Arg, m)
	case Lam:
		return OccursM(mctx, v.Body, m)
	default:
		panic("term: unreachable")
	}
}

// Whnf reduces t to weak-head normal form: beta-reduce at the head
// and follow assigned metavariables, never descending under a lambda
// or into an argument.
func Whnf(mctx MCtx, t Term) Term {
	switch v := t.(type) {
	case App:
		fn := Whnf(mctx, v.Fn)
		if lam, ok := fn.(Lam); ok {
			return Whnf(mctx, SubstB(lam.Body, v.Arg, 0))
		}
		return App{fn, v.Arg}
	case MVar:
		if val, ok := mctx.Assign[v.Name]; ok {
			return Whnf(mctx, val)
		}
		return v
	default:
		return t
	}
}

// IsDefEq decides definitional equality up to whnf and one-sided
// metavariable assignment, returning the (possibly extended) mctx and
// whether the terms are equal. On failure the returned mctx is always
// the one passed in, so callers never observe a partial effect.
func IsDefEq(mctx MCtx, t1, t2 Term) (MCtx, bool) {
	w1 := Whnf(mctx, t1)
	w2 := Whnf(mctx, t2)

	if v1, ok := w1.(MVar); ok {
		if v2, ok2 := w2.(MVar); ok2 && v2.Name == v1.Name {
			return mctx, true
		}
		return assignMVar(mctx, v1.Name, w2)
	}
	if v2, ok := w2.(MVar); ok {
		return assignMVar(mctx, v2.Name, w1)
	}

	switch v1 := w1.(type) {
	case BVar:
		v2, ok := w2.(BVar)
		return mctx, ok && v1.Idx == v2.Idx
	case FVar:
		v2, ok := w2.(FVar)
		return mctx, ok && v1.Idx == v2.Idx
	case Const:
		v2, ok := w2.(Const)
		return mctx, ok && v1.Name == v2.Name
	case Lam:
		v2, ok := w2.(Lam)
		if !ok || !ty.Eq(v1.Ty, v2.Ty) {
			return mctx, false
		}
		return IsDefEq(mctx, v1.Body, v2.Body)
	case App:
		v2, ok := w2.(App)
		if !ok {
			return mctx, false
		}
		mctx1, eq := IsDefEq(mctx, v1.Fn, v2.Fn)
		if !eq {
			return mctx, false
		}
		mctx2, eq := IsDefEq(mctx1, v1.Arg, v2.Arg)
		if !eq {
			return mctx, false
		}
		return mctx2, true
	default:
		return mctx, false
	}
}

func assignMVar(mctx MCtx, name string, t Term) (MCtx, bool) {
	if OccursM(mctx, t, name) {
		return mctx, false
	}
	return mctx.assign(name, t), true
}

// InferType computes the simple type of t under the given constant,
// free-variable, and bound-variable contexts, or a kernelerr.Error if
// t is ill-typed.
func InferType(mctx MCtx, cctx CCtx, fctx FCtx, bctx BCtx, t Term) (ty.Ty, error) {
	switch v := t.(type) {
	case BVar:
		if v.Idx < 0 || v.Idx >= len(bctx) {
			return nil, kernelerr.InvalidIndex("bvar", v.Idx)
		}
		return bctx[v.Idx], nil
	case FVar:
		if v.Idx < 0 || v.Idx >= len(fctx) {
			return nil, kernelerr.InvalidIndex("fvar", v.Idx)
		}
		return fctx[v.Idx], nil
	case MVar:
		t2, ok := mctx.Types[v.Name]
		if !ok {
			return nil, kernelerr.InvalidIndex("mvar", -1)
		}
		return t2, nil
	case Const:
		t2, ok := cctx[v.Name]
		if !ok {
			return nil, kernelerr.UnknownConst(v.Name)
		}
		return t2, nil
	case Lam:
		bodyTy, err := InferType(mctx, cctx, fctx, append([]ty.Ty{v.Ty}, bctx...), v.Body)
		if err != nil {
			return nil, err
		}
		return ty.Arrow{Left: v.Ty, Right: bodyTy}, nil
	case App:
		fnTy, err := InferType(mctx, cctx, fctx, bctx, v.Fn)
		if err != nil {
			return nil, err
		}
		arrow, ok := fnTy.(ty.Arrow)
		if !ok {
			return nil, kernelerr.ArrowExpected(fnTy)
		}
		argTy, err := InferType(mctx, cctx, fctx, bctx, v.Arg)
		if err != nil {
			return nil, err
		}
		if !ty.Eq(arrow.Left, argTy) {
			return nil, kernelerr.TypeMismatchApp(arrow.Left, argTy)
		}
		return arrow.Right, nil
	default:
		panic("term: unreachable")
	}
}

func (t BVar) String() string  { return fmt.Sprintf("#%d", t.Idx) }
func (t FVar) String() string  { return fmt.Sprintf("$%d", t.Idx) }
func (t MVar) String() string  { return "?" + t.Name }
func (t Const) String() string { return t.Name }
func (t Lam) String() string   { return fmt.Sprintf("(\\%s:%s. %s)", t.Hint, t.Ty, t.Body) }
func (t App) String() string   { return fmt.Sprintf("(%s %s)", t.Fn, t.Arg) }
