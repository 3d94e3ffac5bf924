// Package tactic implements the incremental tactic engine: a State
// threading a persistent metavariable context and a queue of open
// Goals, advanced one step at a time by assumption, intro, apply, and
// have. Goals are solved head-first, and the partial instantiation
// computed by one step is re-applied to every remaining goal before
// the next tactic runs, the same way an incremental constraint solver
// re-applies its substitution to the rest of the constraint set after
// each step.
package tactic

import (
	"fmt"

	"github.com/orizon-lang/minihol/internal/kernelerr"
	"github.com/orizon-lang/minihol/internal/proof"
	"github.com/orizon-lang/minihol/internal/rule"
	"github.com/orizon-lang/minihol/internal/term"
	"github.com/orizon-lang/minihol/internal/ty"
)

// HypEntry is one hypothesis in a goal's context: a name, its rule,
// and — for hypotheses introduced by Have before their lemma goal is
// solved — the (possibly still-open) proof that will eventually
// justify it.
type HypEntry struct {
	Name     string
	R        rule.Rule
	Deferred proof.Proof
}

// FVarEntry is one free variable in a goal's context.
type FVarEntry struct {
	Name string
	S    ty.Ty
}

// Goal is one open proof obligation: prove Target under hypotheses
// Ctx and free variables FCtx (both head = most recent), to be
// recorded at proof term position Hole.
type Goal struct {
	Hole   string
	Target rule.Rule
	Ctx    []HypEntry
	FCtx   []FVarEntry
}

// State is the tactic engine's persistent state.
type State struct {
	Goals    []Goal
	Proofs   map[string]proof.Proof
	Axioms   map[string]rule.Rule
	CCtx     term.CCtx
	MCtx     term.MCtx
	RootHole string
}

// NewState begins a fresh proof of target.
func NewState(axioms map[string]rule.Rule, cctx term.CCtx, target rule.Rule) State {
	ts := State{Proofs: map[string]proof.Proof{}, Axioms: axioms, CCtx: cctx, MCtx: term.NewMCtx()}
	ts2, hole, goal := ts.mkHole(target, nil, nil)
	ts2.Goals = []Goal{goal}
	ts2.RootHole = hole.(proof.Hole).Name
	return ts2
}

// Done reports whether every goal has been solved.
func (ts State) Done() bool { return len(ts.Goals) == 0 }

// Proof instantiates every hole from the recorded solutions, yielding
// the closed proof of the original target (only meaningful once Done
// returns true).
func (ts State) Proof() proof.Proof {
	return proof.InstHole(proof.Hole{Name: ts.RootHole}, ts.Proofs)
}

func (ts State) mkHole(target rule.Rule, ctx []HypEntry, fctx []FVarEntry) (State, proof.Proof, Goal) {
	mctx2, name := ts.MCtx.FreshName()
	ts2 := ts
	ts2.MCtx = mctx2
	return ts2, proof.Hole{Name: name}, Goal{Hole: name, Target: target, Ctx: ctx, FCtx: fctx}
}

// replaceGoal drops the head goal and prepends newGoals, re-applying
// the current mctx instantiation to every remaining goal's target and
// hypothesis rules.
func (ts State) replaceGoal(newGoals []Goal) State {
	rest := ts.Goals[1:]
	goals := append(append([]Goal{}, newGoals...), rest...)
	for i := range goals {
		goals[i].Target = rule.InstM(ts.MCtx, goals[i].Target)
		if len(goals[i].Ctx) > 0 {
			ctx := append([]HypEntry{}, goals[i].Ctx...)
			for j := range ctx {
				ctx[j].R = rule.InstM(ts.MCtx, ctx[j].R)
			}
			goals[i].Ctx = ctx
		}
	}
	ts2 := ts
	ts2.Goals = goals
	return ts2
}

func (ts State) assignProof(hole string, p proof.Proof) State {
	np := make(map[string]proof.Proof, len(ts.Proofs)+1)
	for k, v := range ts.Proofs {
		np[k] = v
	}
	np[hole] = p
	ts2 := ts
	ts2.Proofs = np
	return ts2
}

func findHyp(ctx []HypEntry, name string) (int, HypEntry, bool) {
	for i, h := range ctx {
		if h.Name == name {
			return i, h, true
		}
	}
	return 0, HypEntry{}, false
}

func findFVar(fctx []FVarEntry, name string) (int, FVarEntry, bool) {
	for i, f := range fctx {
		if f.Name == name {
			return i, f, true
		}
	}
	return 0, FVarEntry{}, false
}

func hypProof(h HypEntry, idx int) proof.Proof {
	if h.Deferred != nil {
		return h.Deferred
	}
	return proof.Hyp{Idx: idx}
}

func fctxTypes(fctx []FVarEntry) term.FCtx {
	out := make(term.FCtx, len(fctx))
	for i, f := range fctx {
		out[i] = f.S
	}
	return out
}

// Assumption closes the head goal if some hypothesis is
// definitionally equal to its target.
func Assumption(ts State) (State, error) {
	if len(ts.Goals) == 0 {
		return ts, kernelerr.NoGoals()
	}
	g := ts.Goals[0]
	for i, h := range g.Ctx {
		mctx2, eq := rule.IsDefEq(ts.MCtx, h.R, g.Target)
		if eq {
			ts2 := ts
			ts2.MCtx = mctx2
			ts2 = ts2.assignProof(g.Hole, hypProof(h, i))
			return ts2.replaceGoal(nil), nil
		}
	}
	return ts, kernelerr.Assumption(g.Target)
}

// Intro introduces the antecedent of an implication goal (as a new
// named hypothesis) or the bound variable of a universal goal (as a
// new named free variable).
func Intro(ts State, name string) (State, error) {
	if len(ts.Goals) == 0 {
		return ts, kernelerr.NoGoals()
	}
	g := ts.Goals[0]
	switch t := g.Target.(type) {
	case rule.Implies:
		ts2, qHole, qGoal := ts.mkHole(t.Q, append([]HypEntry{{Name: name, R: t.P}}, g.Ctx...), g.FCtx)
		ts2 = ts2.assignProof(g.Hole, proof.ImpI{P: t.P, Hq: qHole})
		return ts2.replaceGoal([]Goal{qGoal}), nil
	case rule.All:
		ts2, pHole, pGoal := ts.mkHole(t.P, g.Ctx, append([]FVarEntry{{Name: name, S: t.S}}, g.FCtx...))
		ts2 = ts2.assignProof(g.Hole, proof.AllI{Name: name, S: t.S, H: pHole})
		return ts2.replaceGoal([]Goal{pGoal}), nil
	default:
		return ts, kernelerr.Intro(g.Target)
	}
}

// Have introduces a named lemma: mint a hole for r, and produce two
// goals — first the lemma itself, then the original goal with its
// context extended (at the tail, so hyp(0) stays the most recent
// intro) by the new hypothesis, deferred to that hole.
func Have(ts State, name string, r rule.Rule) (State, error) {
	if len(ts.Goals) == 0 {
		return ts, kernelerr.NoGoals()
	}
	g := ts.Goals[0]
	ts2, hHole, hGoal := ts.mkHole(r, g.Ctx, g.FCtx)
	newCtx := append(append([]HypEntry{}, g.Ctx...), HypEntry{Name: name, R: r, Deferred: hHole})
	origGoal := Goal{Hole: g.Hole, Target: g.Target, Ctx: newCtx, FCtx: g.FCtx}
	return ts2.replaceGoal([]Goal{hGoal, origGoal}), nil
}

// ApplyArg is one argument to Apply: either a bare identifier (kept
// as a string so Apply can decide, based on the current rule shape,
// whether it names a hypothesis/axiom or an fctx/cctx-bound term) or
// an already-elaborated term.
type ApplyArg struct {
	IsName bool
	Name   string
	Term   term.Term
}

// Apply resolves name to a hypothesis or axiom's rule, then threads
// args through it one at a time: an implication consumes a named
// hypothesis matching its antecedent, a universal consumes either a
// named free variable/constant or an elaborated term matching its
// bound type. Once args are exhausted, applyCore closes the goal
// immediately if the resulting rule already matches the target, or
// else keeps unwrapping implications (deferring their antecedents as
// new goals) and universals (instantiating with a fresh metavariable)
// until it does.
func Apply(ts State, name string, args []ApplyArg) (State, error) {
	if len(ts.Goals) == 0 {
		return ts, kernelerr.NoGoals()
	}
	g := ts.Goals[0]

	var p proof.Proof
	var r rule.Rule
	if i, h, ok := findHyp(g.Ctx, name); ok {
		p, r = hypProof(h, i), h.R
	} else if ax, ok := ts.Axioms[name]; ok {
		p, r = proof.Ax{Name: name}, ax
	} else {
		return ts, kernelerr.UnknownId(name)
	}

	curMctx := ts.MCtx
	for _, arg := range args {
		switch rr := r.(type) {
		case rule.Implies:
			if !arg.IsName {
				return ts, kernelerr.NotApplicable(rr)
			}
			idx, h, ok := findHyp(g.Ctx, arg.Name)
			if !ok {
				return ts, kernelerr.UnknownId(arg.Name)
			}
			mctx2, eq := rule.IsDefEq(curMctx, rr.P, h.R)
			if !eq {
				return ts, kernelerr.NotDefEq(rr.P, h.R)
			}
			curMctx = mctx2
			p = proof.ImpE{Hpq: p, Hp: hypProof(h, idx)}
			r = rr.Q
		case rule.All:
			t, have, err := resolveAllArg(ts, curMctx, g, arg)
			if err != nil {
				return ts, err
			}
			if !ty.Eq(have, rr.S) {
				return ts, kernelerr.TacticTypeMismatch(termArgStringer(arg, t), have, rr.S)
			}
			p = proof.AllE{H: p, T: t}
			r = rule.SubstF(rr.P, t, 0)
		default:
			return ts, kernelerr.ApplyExcessArgument()
		}
	}

	ts2 := ts
	ts2.MCtx = curMctx
	return applyCore(ts2, p, r, g, nil)
}

func resolveAllArg(ts State, mctx term.MCtx, g Goal, arg ApplyArg) (term.Term, ty.Ty, error) {
	if !arg.IsName {
		have, err := term.InferType(mctx, ts.CCtx, fctxTypes(g.FCtx), nil, arg.Term)
		if err != nil {
			return nil, nil, err
		}
		return arg.Term, have, nil
	}
	if idx, f, ok := findFVar(g.FCtx, arg.Name); ok {
		return term.FVar{Idx: idx}, f.S, nil
	}
	if ct, ok := ts.CCtx[arg.Name]; ok {
		return term.Const{Name: arg.Name}, ct, nil
	}
	return nil, nil, kernelerr.UnknownId(arg.Name)
}

func termArgStringer(arg ApplyArg, t term.Term) fmt.Stringer {
	if arg.IsName {
		return term.Const{Name: arg.Name}
	}
	return t
}

// applyCore repeatedly unwraps r against target: closing the goal the
// moment the two are definitionally equal, deferring each
// implication's antecedent as a fresh goal, and instantiating each
// universal with a fresh metavariable to be solved by later
// unification.
func applyCore(ts State, p proof.Proof, r rule.Rule, g Goal, newGoals []Goal) (State, error) {
	mctx2, eq := rule.IsDefEq(ts.MCtx, r, g.Target)
	if eq {
		ts2 := ts
		ts2.MCtx = mctx2
		ts2 = ts2.assignProof(g.Hole, p)
		return ts2.replaceGoal(newGoals), nil
	}
	switch rr := r.(type) {
	case rule.Implies:
		ts2, pHole, pGoal := ts.mkHole(rr.P, g.Ctx, g.FCtx)
		return applyCore(ts2, proof.ImpE{Hpq: p, Hp: pHole}, rr.Q, g, append(newGoals, pGoal))
	case rule.All:
		mctx3, mv := ts.MCtx.Fresh(rr.S)
		ts3 := ts
		ts3.MCtx = mctx3
		return applyCore(ts3, proof.AllE{H: p, T: term.MVar{Name: mv}}, rule.SubstF(rr.P, term.MVar{Name: mv}, 0), g, newGoals)
	default:
		return ts, kernelerr.NotDefEq(r, g.Target)
	}
}
