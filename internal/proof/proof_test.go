package proof

import (
	"testing"

	"github.com/orizon-lang/minihol/internal/rule"
	"github.com/orizon-lang/minihol/internal/term"
	"github.com/orizon-lang/minihol/internal/ty"
)

var (
	propTy = ty.Base{Name: "Prop"}
	natTy  = ty.Base{Name: "nat"}
)

func TestCheckHoleFails(t *testing.T) {
	mctx := term.NewMCtx()
	_, err := Check(mctx, term.CCtx{}, nil, nil, nil, Hole{Name: "m0"})
	if err == nil {
		t.Error("a proof containing a hole should never check as closed")
	}
}

func TestCheckAx(t *testing.T) {
	mctx := term.NewMCtx()
	axioms := map[string]rule.Rule{"foo": rule.Proves{P: term.Const{Name: "p"}}}
	got, err := Check(mctx, term.CCtx{}, axioms, nil, nil, Ax{Name: "foo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(rule.Proves); !ok {
		t.Errorf("expected the axiom's rule, got %v", got)
	}
}

func TestCheckAxUnknownFails(t *testing.T) {
	mctx := term.NewMCtx()
	if _, err := Check(mctx, term.CCtx{}, map[string]rule.Rule{}, nil, nil, Ax{Name: "nope"}); err == nil {
		t.Error("expected an unknown axiom reference to fail")
	}
}

func TestCheckHyp(t *testing.T) {
	mctx := term.NewMCtx()
	ctx := []rule.Rule{rule.Proves{P: term.Const{Name: "most-recent"}}, rule.Proves{P: term.Const{Name: "older"}}}
	got, err := Check(mctx, term.CCtx{}, nil, ctx, nil, Hyp{Idx: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := got.(rule.Proves).P.(term.Const); c.Name != "older" {
		t.Errorf("Hyp{1} should reach the older hypothesis, got %v", got)
	}
}

func TestCheckHypOutOfRangeFails(t *testing.T) {
	mctx := term.NewMCtx()
	if _, err := Check(mctx, term.CCtx{}, nil, nil, nil, Hyp{Idx: 0}); err == nil {
		t.Error("expected an out-of-range hypothesis index to fail")
	}
}

func TestCheckImpIImpE(t *testing.T) {
	mctx := term.NewMCtx()
	p := rule.Proves{P: term.Const{Name: "p"}}
	q := rule.Proves{P: term.Const{Name: "q"}}

	// assume p, prove q by the older hypothesis (index 1 once p is
	// pushed at the head), yielding a proof of p => q
	impIProof := ImpI{P: p, Hq: Hyp{Idx: 1}}
	got, err := Check(mctx, term.CCtx{}, nil, []rule.Rule{q}, nil, impIProof)
	if err != nil {
		t.Fatalf("unexpected error from ImpI: %v", err)
	}
	impl, ok := got.(rule.Implies)
	if !ok {
		t.Fatalf("expected an Implies rule, got %v", got)
	}

	// now eliminate it against a hypothesis of p to get q back
	ctx := []rule.Rule{impl, p}
	elim := ImpE{Hpq: Hyp{Idx: 0}, Hp: Hyp{Idx: 1}}
	got2, err := Check(mctx, term.CCtx{}, nil, ctx, nil, elim)
	if err != nil {
		t.Fatalf("unexpected error from ImpE: %v", err)
	}
	if c := got2.(rule.Proves).P.(term.Const); c.Name != "q" {
		t.Errorf("expected ImpE to yield q, got %v", got2)
	}
}

func TestCheckImpEShapeMismatch(t *testing.T) {
	mctx := term.NewMCtx()
	p := rule.Proves{P: term.Const{Name: "p"}}
	ctx := []rule.Rule{p, p}
	elim := ImpE{Hpq: Hyp{Idx: 0}, Hp: Hyp{Idx: 1}}
	if _, err := Check(mctx, term.CCtx{}, nil, ctx, nil, elim); err == nil {
		t.Error("expected ImpE to fail when the left proof is not an Implies")
	}
}

func TestCheckImpENotDefEqFails(t *testing.T) {
	mctx := term.NewMCtx()
	impl := rule.Implies{P: rule.Proves{P: term.Const{Name: "p"}}, Q: rule.Proves{P: term.Const{Name: "q"}}}
	wrong := rule.Proves{P: term.Const{Name: "not-p"}}
	ctx := []rule.Rule{impl, wrong}
	elim := ImpE{Hpq: Hyp{Idx: 0}, Hp: Hyp{Idx: 1}}
	if _, err := Check(mctx, term.CCtx{}, nil, ctx, nil, elim); err == nil {
		t.Error("expected ImpE to fail when the supplied antecedent does not match P")
	}
}

func TestCheckAllIAllE(t *testing.T) {
	mctx := term.NewMCtx()
	cctx := term.CCtx{"a": natTy}

	// prove !!x:nat, proves(x) via an axiom stated under the extra free variable
	allI := AllI{Name: "x", S: natTy, H: Ax{Name: "trivial"}}
	axioms := map[string]rule.Rule{"trivial": rule.Proves{P: term.FVar{Idx: 0}}}
	got, err := Check(mctx, cctx, axioms, nil, nil, allI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, ok := got.(rule.All)
	if !ok {
		t.Fatalf("expected an All rule, got %v", got)
	}

	allE := AllE{H: Ax{Name: "univ"}, T: term.Const{Name: "a"}}
	axioms2 := map[string]rule.Rule{"univ": all}
	got2, err2 := Check(mctx, cctx, axioms2, nil, nil, allE)
	if err2 != nil {
		t.Fatalf("unexpected error from AllE: %v", err2)
	}
	if c := got2.(rule.Proves).P.(term.Const); c.Name != "a" {
		t.Errorf("expected AllE to substitute a into the body, got %v", got2)
	}
}

func TestCheckAllETypeMismatchFails(t *testing.T) {
	mctx := term.NewMCtx()
	cctx := term.CCtx{"p": propTy}
	all := rule.All{Name: "x", S: natTy, P: rule.Proves{P: term.FVar{Idx: 0}}}
	axioms := map[string]rule.Rule{"univ": all}
	allE := AllE{H: Ax{Name: "univ"}, T: term.Const{Name: "p"}}
	if _, err := Check(mctx, cctx, axioms, nil, nil, allE); err == nil {
		t.Error("expected AllE to fail when the witness type does not match the quantifier's domain")
	}
}

func TestCheckAllEShapeMismatchFails(t *testing.T) {
	mctx := term.NewMCtx()
	cctx := term.CCtx{"a": natTy}
	axioms := map[string]rule.Rule{"notAll": rule.Proves{P: term.Const{Name: "a"}}}
	allE := AllE{H: Ax{Name: "notAll"}, T: term.Const{Name: "a"}}
	if _, err := Check(mctx, cctx, axioms, nil, nil, allE); err == nil {
		t.Error("expected AllE to fail when the eliminated proof is not an All")
	}
}

func TestInstHoleResolvesRecursively(t *testing.T) {
	p := ImpI{P: rule.Proves{P: term.Const{Name: "p"}}, Hq: Hole{Name: "m0"}}
	proofs := map[string]Proof{
		"m0": Hole{Name: "m1"},
		"m1": Hyp{Idx: 0},
	}
	got := InstHole(p, proofs).(ImpI)
	if _, ok := got.Hq.(Hyp); !ok {
		t.Errorf("expected InstHole to chase m0 -> m1 -> Hyp{0}, got %v", got.Hq)
	}
}

func TestInstHoleLeavesUnsolvedHoles(t *testing.T) {
	p := Hole{Name: "unsolved"}
	got := InstHole(p, map[string]Proof{})
	if _, ok := got.(Hole); !ok {
		t.Errorf("expected an unsolved hole to pass through unchanged, got %v", got)
	}
}
