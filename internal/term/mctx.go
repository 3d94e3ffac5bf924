package term

import (
	"fmt"

	"github.com/orizon-lang/minihol/internal/ty"
)

// MCtx is the metavariable context: a persistent assignment map (an
// assigned metavariable is fully resolved via InstM), a type table
// used for inference, and a shared gensym counter. MCtx lives in
// package term, not a separate package, because every assignment
// stores a Term-valued entry and a standalone mctx package would import term while term's own whnf/
// isDefEq need MCtx — this keeps the dependency graph a DAG while
// still giving the metavariable context its own file and API surface.
//
// The same counter also mints tactic hole names (see package tactic),
// keeping metavariable and hole names from ever colliding.
type MCtx struct {
	Assign  map[string]Term
	Types   map[string]ty.Ty
	Counter int
}

// NewMCtx returns an empty metavariable context.
func NewMCtx() MCtx {
	return MCtx{Assign: map[string]Term{}, Types: map[string]ty.Ty{}}
}

func (m MCtx) clone() MCtx {
	a := make(map[string]Term, len(m.Assign))
	for k, v := range m.Assign {
		a[k] = v
	}
	t := make(map[string]ty.Ty, len(m.Types))
	for k, v := range m.Types {
		t[k] = v
	}
	return MCtx{Assign: a, Types: t, Counter: m.Counter}
}

func (m MCtx) assign(name string, t Term) MCtx {
	nm := m.clone()
	nm.Assign[name] = t
	return nm
}

// Fresh mints a new metavariable of type s, registering its type so
// InferType can recover it later.
func (m MCtx) Fresh(s ty.Ty) (MCtx, string) {
	name := fmt.Sprintf("m%d", m.Counter)
	nm := m.clone()
	nm.Types[name] = s
	nm.Counter++
	return nm, name
}

// FreshName mints a gensym name without registering a type, used by
// the tactic engine to name proof holes from the same shared counter.
func (m MCtx) FreshName() (MCtx, string) {
	name := fmt.Sprintf("m%d", m.Counter)
	nm := m.clone()
	nm.Counter++
	return nm, name
}
