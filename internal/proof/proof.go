// Package proof implements proof terms and their checking: hole, ax,
// hyp, impI, impE, allI, allE. Check takes no expected rule; it walks
// a proof bottom-up and computes the rule it establishes, which the
// caller then compares against the rule it wanted.
package proof

import (
	"fmt"

	"github.com/orizon-lang/minihol/internal/kernelerr"
	"github.com/orizon-lang/minihol/internal/rule"
	"github.com/orizon-lang/minihol/internal/term"
	"github.com/orizon-lang/minihol/internal/ty"
)

// Proof is a proof term.
type Proof interface {
	isProof()
	String() string
}

// Hole is an unfinished proof obligation, named by a tactic-engine
// gensym. A proof containing any Hole is not closed.
type Hole struct{ Name string }

// Ax references a previously established axiom or theorem by name.
type Ax struct{ Name string }

// Hyp references a hypothesis in the ambient proof context by index
// (0 = most recently introduced).
type Hyp struct{ Idx int }

// ImpI introduces an implication: given a proof of Q under the extra
// hypothesis P, proves P => Q.
type ImpI struct {
	P  rule.Rule
	Hq Proof
}

// ImpE eliminates an implication: from P=>Q and P, derive Q.
type ImpE struct{ Hpq, Hp Proof }

// AllI introduces a universal: given a proof of P under an extra free
// variable of type S, proves !! name:S, P.
type AllI struct {
	Name string
	S    ty.Ty
	H    Proof
}

// AllE eliminates a universal: from !! name:S, P and a term T of type
// S, derive P[T/name].
type AllE struct {
	H Proof
	T term.Term
}

func (Hole) isProof() {}
func (Ax) isProof()   {}
func (Hyp) isProof()  {}
func (ImpI) isProof() {}
func (ImpE) isProof() {}
func (AllI) isProof() {}
func (AllE) isProof() {}

// Check computes the rule a proof establishes under the given
// contexts, or returns a kernelerr.Error. ctx is the ambient
// hypothesis list (index 0 = most recent); fctx is the ambient
// free-variable type list with the same convention.
func Check(mctx term.MCtx, cctx term.CCtx, axioms map[string]rule.Rule, ctx []rule.Rule, fctx term.FCtx, p Proof) (rule.Rule, error) {
	switch v := p.(type) {
	case Hole:
		return nil, kernelerr.ProofHasHole(v.Name)
	case Ax:
		r, ok := axioms[v.Name]
		if !ok {
			return nil, kernelerr.UnknownAxiom(v.Name)
		}
		return r, nil
	case Hyp:
		if v.Idx < 0 || v.Idx >= len(ctx) {
			return nil, kernelerr.InvalidIndex("hyp", v.Idx)
		}
		return ctx[v.Idx], nil
	case ImpI:
		q, err := Check(mctx, cctx, axioms, append([]rule.Rule{v.P}, ctx...), fctx, v.Hq)
		if err != nil {
			return nil, err
		}
		return rule.Implies{P: v.P, Q: q}, nil
	case ImpE:
		pq, err := Check(mctx, cctx, axioms, ctx, fctx, v.Hpq)
		if err != nil {
			return nil, err
		}
		impl, ok := pq.(rule.Implies)
		if !ok {
			return nil, kernelerr.ImpEShapeMismatch(pq)
		}
		pr, err := Check(mctx, cctx, axioms, ctx, fctx, v.Hp)
		if err != nil {
			return nil, err
		}
		if _, eq := rule.IsDefEq(mctx, impl.P, pr); !eq {
			return nil, kernelerr.ImpENotDefEq(impl.P, pr)
		}
		return impl.Q, nil
	case AllI:
		pr, err := Check(mctx, cctx, axioms, ctx, append([]ty.Ty{v.S}, fctx...), v.H)
		if err != nil {
			return nil, err
		}
		return rule.All{Name: v.Name, S: v.S, P: pr}, nil
	case AllE:
		hr, err := Check(mctx, cctx, axioms, ctx, fctx, v.H)
		if err != nil {
			return nil, err
		}
		all, ok := hr.(rule.All)
		if !ok {
			return nil, kernelerr.AllEShapeMismatch(hr)
		}
		tt, err := term.InferType(mctx, cctx, fctx, nil, v.T)
		if err != nil {
			return nil, err
		}
		if !ty.Eq(tt, all.S) {
			return nil, kernelerr.AllETypeMismatch(all.S, tt)
		}
		return rule.SubstF(all.P, v.T, 0), nil
	default:
		panic("proof: unreachable")
	}
}

// InstHole replaces every named hole with its solution from proofs,
// recursively, producing a closed proof once every hole in scope has
// been solved.
func InstHole(p Proof, proofs map[string]Proof) Proof {
	switch v := p.(type) {
	case Hole:
		if sub, ok := proofs[v.Name]; ok {
			return InstHole(sub, proofs)
		}
		return v
	case Ax, Hyp:
		return v
	case ImpI:
		return ImpI{P: v.P, Hq: InstHole(v.Hq, proofs)}
	case ImpE:
		return ImpE{Hpq: InstHole(v.Hpq, proofs), Hp: InstHole(v.Hp, proofs)}
	case AllI:
		return AllI{Name: v.Name, S: v.S, H: InstHole(v.H, proofs)}
	case AllE:
		return AllE{H: InstHole(v.H, proofs), T: v.T}
	default:
		panic("proof: unreachable")
	}
}

func (p Hole) String() string { return "?" + p.Name }
func (p Ax) String() string   { return p.Name }
func (p Hyp) String() string  { return fmt.Sprintf("h%d", p.Idx) }
func (p ImpI) String() string { return fmt.Sprintf("(impI %s)", p.Hq) }
func (p ImpE) String() string { return fmt.Sprintf("(%s %s)", p.Hpq, p.Hp) }
func (p AllI) String() string { return fmt.Sprintf("(allI %s. %s)", p.Name, p.H) }
func (p AllE) String() string { return fmt.Sprintf("(%s %s)", p.H, p.T) }
