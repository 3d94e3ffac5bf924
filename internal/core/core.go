// Package core implements the command driver: given source text,
// repeatedly parse a "command" and elaborate it against the running
// CoreState, stopping at clean end-of-input or the first failure.
// This is the single synchronous "process text -> status message"
// surface the rest of the system (cmd/proveit) is a thin wrapper over,
// a pure value-in/value-out function rather than a stateful read-eval
// loop.
package core

import (
	"github.com/google/uuid"

	"github.com/orizon-lang/minihol/internal/elab"
	"github.com/orizon-lang/minihol/internal/lexer"
	"github.com/orizon-lang/minihol/internal/parser"
)

// Session wraps a CoreState with a process-local identifier used only
// for the caller's own log correlation; it is never consulted by
// kernel logic and never affects determinism.
type Session struct {
	ID    uuid.UUID
	State elab.CoreState
}

// NewSession returns a fresh session over the default bootstrap
// CoreState (the default grammar and separator set).
func NewSession() Session {
	return Session{ID: uuid.New(), State: elab.DefaultCoreState()}
}

// ProcessText feeds text through the parser/elaborator one command at
// a time, returning the session advanced past everything it could
// elaborate and a status message: a terminal success marker, or the
// first reason string/parser diagnostic/kernel-or-tactic error
// message encountered.
func (s Session) ProcessText(text string) (Session, string) {
	stream := lexer.New(text)
	cs := s.State
	for {
		syn, rest, failure := parser.Parse(cs.Grammar, cs.Trie, "command", 0, stream)
		if failure != nil {
			if _, hasNext := stream.Peek(cs.Trie); failure.Fatal || hasNext {
				return Session{ID: s.ID, State: cs}, failure.Reason
			}
			return Session{ID: s.ID, State: cs}, "all good"
		}

		cs2, err := elab.ElabCommand(cs, syn)
		if err != nil {
			return Session{ID: s.ID, State: cs}, err.Error()
		}
		cs = cs2
		stream = rest
	}
}
