// Package rule implements the propositions layer: proves(p),
// implies(P, Q), and all(name, S, P), layered over package term the
// way a constraint solver layers over a primitive substitution.
package rule

import (
	"fmt"

	"github.com/orizon-lang/minihol/internal/kernelerr"
	"github.com/orizon-lang/minihol/internal/term"
	"github.com/orizon-lang/minihol/internal/ty"
)

// Rule is a logical rule/proposition.
type Rule interface {
	isRule()
	String() string
}

// Proves asserts that term P has a base (propositional) type.
type Proves struct{ P term.Term }

// Implies is P => Q.
type Implies struct{ P, Q Rule }

// All is !! name : S, P — universal quantification over a value of
// type S. Elimination substitutes directly into the innermost
// free-variable slot rather than introducing a fresh bound variable,
// a locally-nameless technique.
type All struct {
	Name string
	S    ty.Ty
	P    Rule
}

func (Proves) isRule()  {}
func (Implies) isRule() {}
func (All) isRule()     {}

// SubstF threads term.SubstF through a rule, incrementing k under
// each All binder exactly as term.SubstB increments its own depth
// under Lam.
func SubstF(r Rule, u term.Term, k int) Rule {
	switch v := r.(type) {
	case Proves:
		return Proves{P: term.SubstF(v.P, u, k)}
	case Implies:
		return Implies{P: SubstF(v.P, u, k), Q: SubstF(v.Q, u, k)}
	case All:
		return All{Name: v.Name, S: v.S, P: SubstF(v.P, u, k+1)}
	default:
		panic("rule: unreachable")
	}
}

// InstM threads term.InstM through a rule's embedded terms.
func InstM(mctx term.MCtx, r Rule) Rule {
	switch v := r.(type) {
	case Proves:
		return Proves{P: term.InstM(mctx, v.P)}
	case Implies:
		return Implies{P: InstM(mctx, v.P), Q: InstM(mctx, v.Q)}
	case All:
		return All{Name: v.Name, S: v.S, P: InstM(mctx, v.P)}
	default:
		panic("rule: unreachable")
	}
}

// IsDefEq decides definitional equality of two rules, following the
// same mctx-threading and all-or-nothing failure contract as
// term.IsDefEq.
func IsDefEq(mctx term.MCtx, r1, r2 Rule) (term.MCtx, bool) {
	switch v1 := r1.(type) {
	case Proves:
		v2, ok := r2.(Proves)
		if !ok {
			return mctx, false
		}
		return term.IsDefEq(mctx, v1.P, v2.P)
	case Implies:
		v2, ok := r2.(Implies)
		if !ok {
			return mctx, false
		}
		m1, eq := IsDefEq(mctx, v1.P, v2.P)
		if !eq {
			return mctx, false
		}
		m2, eq := IsDefEq(m1, v1.Q, v2.Q)
		if !eq {
			return mctx, false
		}
		return m2, true
	case All:
		v2, ok := r2.(All)
		if !ok || !ty.Eq(v1.S, v2.S) {
			return mctx, false
		}
		return IsDefEq(mctx, v1.P, v2.P)
	default:
		return mctx, false
	}
}

// IsWF checks that r is well-formed: every proves(p) leaf must have a
// base type under the ambient contexts.
func IsWF(mctx term.MCtx, cctx term.CCtx, fctx term.FCtx, r Rule) error {
	switch v := r.(type) {
	case Proves:
		t, err := term.InferType(mctx, cctx, fctx, nil, v.P)
		if err != nil {
			return err
		}
		if _, ok := t.(ty.Base); !ok {
			return kernelerr.RuleNotWellFormed(fmt.Sprintf("proves(%s) requires a base type, got %s", v.P, t))
		}
		return nil
	case Implies:
		if err := IsWF(mctx, cctx, fctx, v.P); err != nil {
			return err
		}
		return IsWF(mctx, cctx, fctx, v.Q)
	case All:
		return IsWF(mctx, cctx, append([]ty.Ty{v.S}, fctx...), v.P)
	default:
		return kernelerr.RuleNotWellFormed("unknown rule shape")
	}
}

func (r Proves) String() string  { return fmt.Sprintf("|- %s", r.P) }
func (r Implies) String() string { return fmt.Sprintf("(%s => %s)", r.P, r.Q) }
func (r All) String() string     { return fmt.Sprintf("(!! %s:%s, %s)", r.Name, r.S, r.P) }
