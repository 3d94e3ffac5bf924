// Package elab implements the bridge from surface Syntax to kernel
// objects: type/term/rule elaboration, user notation registration
// (extending the grammar table and separator trie at run time),
// tactic-script elaboration, and command execution. Each elaboration
// function is a single pass over one nonterminal, dispatching on the
// position and shape of a Syntax node's children plus a table of
// user-registered notations.
package elab

import (
	"github.com/orizon-lang/minihol/internal/kernelerr"
	"github.com/orizon-lang/minihol/internal/parser"
	"github.com/orizon-lang/minihol/internal/proof"
	"github.com/orizon-lang/minihol/internal/rule"
	"github.com/orizon-lang/minihol/internal/tactic"
	"github.com/orizon-lang/minihol/internal/term"
	"github.com/orizon-lang/minihol/internal/ty"
)

// elabTy elaborates a "ty" Syntax node: identifier -> base, parens ->
// inner, infix "->" -> arrow.
func elabTy(s parser.Syntax) (ty.Ty, error) {
	switch {
	case len(s.Args) == 1 && s.Args[0].Kind == parser.SynIdent:
		return ty.Base{Name: s.Args[0].Text}, nil
	case len(s.Args) == 3 && parser.IsAtom(s.Args[0], "("):
		return elabTy(s.Args[1])
	case len(s.Args) == 3 && parser.IsAtom(s.Args[1], "->"):
		left, err := elabTy(s.Args[0])
		if err != nil {
			return nil, err
		}
		right, err := elabTy(s.Args[2])
		if err != nil {
			return nil, err
		}
		return ty.Arrow{Left: left, Right: right}, nil
	default:
		return nil, kernelerr.MalformedSyntax("ty")
	}
}

// elabTerm elaborates a "term" Syntax node. bdepth/fdepth are the
// current bound/free binder counts; bvMap/fvMap map a name to its
// binding order (not its direct index — see package tactic and
// DESIGN.md for the "fdepth - order - 1" convention that keeps
// existing entries valid as new binders are pushed).
func elabTerm(bdepth, fdepth int, bvMap, fvMap map[string]int, cs CoreState, s parser.Syntax) (term.Term, error) {
	switch {
	case len(s.Args) == 1 && s.Args[0].Kind == parser.SynIdent:
		name := s.Args[0].Text
		if j, ok := bvMap[name]; ok {
			return term.BVar{Idx: bdepth - j - 1}, nil
		}
		if j, ok := fvMap[name]; ok {
			return term.FVar{Idx: fdepth - j - 1}, nil
		}
		return term.Const{Name: name}, nil
	case len(s.Args) == 3 && parser.IsAtom(s.Args[0], "("):
		return elabTerm(bdepth, fdepth, bvMap, fvMap, cs, s.Args[1])
	case len(s.Args) == 6 && parser.IsAtom(s.Args[0], "\\"):
		name := s.Args[1].Text
		argTy, err := elabTy(s.Args[3])
		if err != nil {
			return nil, err
		}
		nbv := make(map[string]int, len(bvMap)+1)
		for k, v := range bvMap {
			nbv[k] = v
		}
		nbv[name] = bdepth
		body, err := elabTerm(bdepth+1, fdepth, nbv, fvMap, cs, s.Args[5])
		if err != nil {
			return nil, err
		}
		return term.Lam{Hint: name, Ty: argTy, Body: body}, nil
	case len(s.Args) == 2 && s.Args[0].Kind == parser.SynNode && s.Args[1].Kind == parser.SynNode:
		fn, err := elabTerm(bdepth, fdepth, bvMap, fvMap, cs, s.Args[0])
		if err != nil {
			return nil, err
		}
		arg, err := elabTerm(bdepth, fdepth, bvMap, fvMap, cs, s.Args[1])
		if err != nil {
			return nil, err
		}
		return term.App{Fn: fn, Arg: arg}, nil
	default:
		return elabNotationTerm(bdepth, fdepth, bvMap, fvMap, cs, s)
	}
}

// elabNotationTerm tries every registered notation in order, matching
// arity and atom positions; the first match wins, aggregating its
// term slots into a left-associated application of const(name).
func elabNotationTerm(bdepth, fdepth int, bvMap, fvMap map[string]int, cs CoreState, s parser.Syntax) (term.Term, error) {
	for _, n := range cs.Notations {
		if len(s.Args) != len(n.Descrs) {
			continue
		}
		matched := true
		var slots []parser.Syntax
		for i, d := range n.Descrs {
			switch d.Kind {
			case NDAtom:
				if !parser.IsAtom(s.Args[i], d.Literal) {
					matched = false
				}
			case NDTerm:
				slots = append(slots, s.Args[i])
			}
			if !matched {
				break
			}
		}
		if !matched {
			continue
		}
		result := term.Term(term.Const{Name: n.Name})
		for _, slot := range slots {
			arg, err := elabTerm(bdepth, fdepth, bvMap, fvMap, cs, slot)
			if err != nil {
				return nil, err
			}
			result = term.App{Fn: result, Arg: arg}
		}
		return result, nil
	}
	return nil, kernelerr.NoNotationMatch()
}

// elabRule elaborates a "rule" Syntax node: parens -> inner, a bare
// term -> proves, "!!" -> nested all (right-associated, first name
// outermost), "=>" -> implies.
func elabRule(fdepth int, fvMap map[string]int, cs CoreState, s parser.Syntax) (rule.Rule, error) {
	switch {
	case len(s.Args) == 3 && parser.IsAtom(s.Args[0], "("):
		return elabRule(fdepth, fvMap, cs, s.Args[1])
	case len(s.Args) == 1:
		t, err := elabTerm(0, fdepth, map[string]int{}, fvMap, cs, s.Args[0])
		if err != nil {
			return nil, err
		}
		return rule.Proves{P: t}, nil
	case len(s.Args) == 6 && parser.IsAtom(s.Args[0], "!!"):
		names, err := identNames(s.Args[1])
		if err != nil {
			return nil, err
		}
		sTy, err := elabTy(s.Args[3])
		if err != nil {
			return nil, err
		}
		return elabAll(names, sTy, fdepth, fvMap, cs, s.Args[5])
	case len(s.Args) == 3 && parser.IsAtom(s.Args[1], "=>"):
		p, err := elabRule(fdepth, fvMap, cs, s.Args[0])
		if err != nil {
			return nil, err
		}
		q, err := elabRule(fdepth, fvMap, cs, s.Args[2])
		if err != nil {
			return nil, err
		}
		return rule.Implies{P: p, Q: q}, nil
	default:
		return nil, kernelerr.MalformedSyntax("rule")
	}
}

// elabAll elaborates the body of a "!! x1 ... xn : s, body" rule under
// every name pushed into fvMap (x1 outermost, xn innermost), then
// wraps the result in n nested rule.All binders, x1 outermost.
func elabAll(names []string, s ty.Ty, fdepth int, fvMap map[string]int, cs CoreState, bodySyn parser.Syntax) (rule.Rule, error) {
	nfv := make(map[string]int, len(fvMap)+len(names))
	for k, v := range fvMap {
		nfv[k] = v
	}
	for i, name := range names {
		nfv[name] = fdepth + i
	}
	body, err := elabRule(fdepth+len(names), nfv, cs, bodySyn)
	if err != nil {
		return nil, err
	}
	r := body
	for i := len(names) - 1; i >= 0; i-- {
		r = rule.All{Name: names[i], S: s, P: r}
	}
	return r, nil
}

// identNames unpacks a many1(ident) Syntax node into its names.
func identNames(s parser.Syntax) ([]string, error) {
	names := make([]string, 0, len(s.Args))
	for _, a := range s.Args {
		if a.Kind != parser.SynIdent {
			return nil, kernelerr.MalformedSyntax("binder list")
		}
		names = append(names, a.Text)
	}
	return names, nil
}

// elabNotation registers a new notation: a grammar rule on the "term"
// nonterminal (atoms become symbol descriptors, term slots become
// recurse(term, minPrec) descriptors), the atom literals as new
// separator keywords, the Notation record itself, and the declared
// constant's curried type (each slot's type, in source order, then
// baseTy).
func elabNotation(cs CoreState, stxs []parser.Syntax, name string, prec int, baseTySyn parser.Syntax) (CoreState, error) {
	if _, exists := cs.Constants[name]; exists {
		return cs, kernelerr.NotationConflict(name)
	}
	baseTy, err := elabTy(baseTySyn)
	if err != nil {
		return cs, err
	}

	var descrs []NotationDescr
	var ruleDescrs []parser.Descr
	var slotTys []ty.Ty
	newTrie := cs.Trie

	for _, stx := range stxs {
		switch {
		case len(stx.Args) == 1 && stx.Args[0].Kind == parser.SynStr:
			lit := stx.Args[0].Text
			descrs = append(descrs, NotationDescr{Kind: NDAtom, Literal: lit})
			ruleDescrs = append(ruleDescrs, symbolDescr(lit))
			newTrie = newTrie.Insert(lit)
		case len(stx.Args) == 5 && parser.IsAtom(stx.Args[0], "("):
			slotTy, err := elabTy(stx.Args[1])
			if err != nil {
				return cs, err
			}
			minPrec, err := decimalToInt(stx.Args[3])
			if err != nil {
				return cs, err
			}
			descrs = append(descrs, NotationDescr{Kind: NDTerm, MinPrec: minPrec})
			ruleDescrs = append(ruleDescrs, recurseDescr("term", minPrec))
			slotTys = append(slotTys, slotTy)
		default:
			return cs, kernelerr.MalformedSyntax("notation descriptor")
		}
	}

	declTy := baseTy
	for i := len(slotTys) - 1; i >= 0; i-- {
		declTy = ty.Arrow{Left: slotTys[i], Right: declTy}
	}

	ng := cs.Grammar.AddRule("term", parser.Rule{Prec: prec, Descr: ruleDescrs})
	nc := make(map[string]ty.Ty, len(cs.Constants)+1)
	for k, v := range cs.Constants {
		nc[k] = v
	}
	nc[name] = declTy

	cs2 := cs
	cs2.Grammar = ng
	cs2.Trie = newTrie
	cs2.Constants = nc
	cs2.Notations = append(append([]Notation{}, cs.Notations...), Notation{Name: name, Prec: prec, Descrs: descrs, BaseTy: baseTy})
	return cs2, nil
}

func decimalToInt(s parser.Syntax) (int, error) {
	v, err := s.Num.Int64()
	if err != nil {
		return 0, kernelerr.MalformedSyntax("numeric literal")
	}
	return int(v), nil
}

func buildFVMap(fctx []tactic.FVarEntry) (map[string]int, int) {
	fdepth := len(fctx)
	fvMap := make(map[string]int, fdepth)
	for i, f := range fctx {
		fvMap[f.Name] = fdepth - i - 1
	}
	return fvMap, fdepth
}

func elabApplyArg(fvMap map[string]int, fdepth int, cs CoreState, s parser.Syntax) (tactic.ApplyArg, error) {
	if s.Args[0].Kind == parser.SynIdent {
		return tactic.ApplyArg{IsName: true, Name: s.Args[0].Text}, nil
	}
	t, err := elabTerm(0, fdepth, map[string]int{}, fvMap, cs, s.Args[0])
	if err != nil {
		return tactic.ApplyArg{}, err
	}
	return tactic.ApplyArg{Term: t}, nil
}

// elabTactic dispatches on the leading atom of a "tactic" Syntax node.
func elabTactic(cs CoreState, ts tactic.State, s parser.Syntax) (tactic.State, error) {
	if len(ts.Goals) == 0 {
		return ts, kernelerr.NoGoals()
	}
	g := ts.Goals[0]
	fvMap, fdepth := buildFVMap(g.FCtx)

	switch {
	case len(s.Args) == 1 && parser.IsAtom(s.Args[0], "assum"):
		return tactic.Assumption(ts)
	case len(s.Args) == 2 && parser.IsAtom(s.Args[0], "intro"):
		names, err := identNames(s.Args[1])
		if err != nil {
			return ts, err
		}
		cur := ts
		for _, name := range names {
			var err error
			cur, err = tactic.Intro(cur, name)
			if err != nil {
				return ts, err
			}
		}
		return cur, nil
	case len(s.Args) == 3 && parser.IsAtom(s.Args[0], "apply"):
		name := s.Args[1].Text
		argSyns := s.Args[2].Args
		args := make([]tactic.ApplyArg, 0, len(argSyns))
		for _, as := range argSyns {
			a, err := elabApplyArg(fvMap, fdepth, cs, as)
			if err != nil {
				return ts, err
			}
			args = append(args, a)
		}
		return tactic.Apply(ts, name, args)
	case len(s.Args) == 4 && parser.IsAtom(s.Args[0], "have"):
		name := s.Args[1].Text
		r, err := elabRule(fdepth, fvMap, cs, s.Args[3])
		if err != nil {
			return ts, err
		}
		return tactic.Have(ts, name, r)
	default:
		if len(s.Args) > 0 && s.Args[0].Kind == parser.SynAtom {
			return ts, kernelerr.UnknownTactic(s.Args[0].Text)
		}
		return ts, kernelerr.MalformedSyntax("tactic")
	}
}

// goalSummary renders a tactic.Goal into a kernelerr.GoalSummary for
// UnsolvedGoals reporting.
func goalSummary(g tactic.Goal) kernelerr.GoalSummary {
	hyps := make([]string, len(g.Ctx))
	for i, h := range g.Ctx {
		hyps[i] = h.Name + " : " + h.R.String()
	}
	fvars := make([]string, len(g.FCtx))
	for i, f := range g.FCtx {
		fvars[i] = f.Name + " : " + f.S.String()
	}
	return kernelerr.GoalSummary{Hole: g.Hole, Target: g.Target.String(), Hyps: hyps, FVars: fvars}
}

// ElabCommand handles the three command shapes, producing a new
// CoreState or an error.
func ElabCommand(cs CoreState, s parser.Syntax) (CoreState, error) {
	switch {
	case len(s.Args) == 8 && parser.IsAtom(s.Args[0], "notation"):
		prec, err := decimalToInt(s.Args[2])
		if err != nil {
			return cs, err
		}
		name := s.Args[7].Text
		return elabNotation(cs, s.Args[3].Args, name, prec, s.Args[5])
	case len(s.Args) == 4 && parser.IsAtom(s.Args[0], "axiom"):
		name := s.Args[1].Text
		if _, exists := cs.Axioms[name]; exists {
			return cs, kernelerr.AxiomConflict(name)
		}
		r, err := elabRule(0, nil, cs, s.Args[3])
		if err != nil {
			return cs, err
		}
		if err := rule.IsWF(term.NewMCtx(), cs.Constants, nil, r); err != nil {
			return cs, err
		}
		na := make(map[string]rule.Rule, len(cs.Axioms)+1)
		for k, v := range cs.Axioms {
			na[k] = v
		}
		na[name] = r
		cs2 := cs
		cs2.Axioms = na
		return cs2, nil
	case len(s.Args) == 6 && parser.IsAtom(s.Args[0], "prove"):
		name := s.Args[1].Text
		if _, exists := cs.Axioms[name]; exists {
			return cs, kernelerr.AxiomConflict(name)
		}
		target, err := elabRule(0, nil, cs, s.Args[3])
		if err != nil {
			return cs, err
		}
		if err := rule.IsWF(term.NewMCtx(), cs.Constants, nil, target); err != nil {
			return cs, err
		}
		ts := tactic.NewState(cs.Axioms, cs.Constants, target)
		for _, tacSyn := range s.Args[5].Args {
			ts, err = elabTactic(cs, ts, tacSyn)
			if err != nil {
				return cs, err
			}
		}
		if len(ts.Goals) != 0 {
			summaries := make([]kernelerr.GoalSummary, len(ts.Goals))
			for i, g := range ts.Goals {
				summaries[i] = goalSummary(g)
			}
			return cs, kernelerr.UnsolvedGoals(summaries)
		}
		established, err := proof.Check(ts.MCtx, cs.Constants, cs.Axioms, nil, nil, ts.Proof())
		if err != nil {
			return cs, err
		}
		if _, eq := rule.IsDefEq(ts.MCtx, target, established); !eq {
			return cs, kernelerr.NotDefEq(target, established)
		}
		na := make(map[string]rule.Rule, len(cs.Axioms)+1)
		for k, v := range cs.Axioms {
			na[k] = v
		}
		na[name] = target
		cs2 := cs
		cs2.Axioms = na
		return cs2, nil
	default:
		if len(s.Args) > 0 && s.Args[0].Kind == parser.SynAtom {
			return cs, kernelerr.UnknownCommand(s.Args[0].Text)
		}
		return cs, kernelerr.MalformedSyntax("command")
	}
}
