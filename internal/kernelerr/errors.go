// Package kernelerr provides the standardized error taxonomy for the
// kernel and tactic engine: a small set of categories, each with typed
// constructor functions grouped by the layer that raised them.
package kernelerr

import (
	"fmt"
	"strings"

	"github.com/eaburns/pretty"
)

// Category groups errors by the layer that raised them.
type Category string

const (
	CategoryParse  Category = "PARSE"
	CategoryKernel Category = "KERNEL"
	CategoryTactic Category = "TACTIC"
	CategoryElab   Category = "ELAB"
)

// Error is the single error type used across the kernel, tactic engine,
// and elaborator. Context carries structured detail for callers that
// want more than the rendered message.
type Error struct {
	Category Category
	Code     string
	Message  string
	Context  map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

func newErr(cat Category, code, msg string, ctx map[string]any) *Error {
	return &Error{Category: cat, Code: code, Message: msg, Context: ctx}
}

// --- Kernel errors ---

func InvalidIndex(kind string, idx int) *Error {
	return newErr(CategoryKernel, "INVALID_INDEX",
		fmt.Sprintf("invalid %s index %d", kind, idx),
		map[string]any{"kind": kind, "idx": idx})
}

func UnknownConst(name string) *Error {
	return newErr(CategoryKernel, "UNKNOWN_CONST",
		fmt.Sprintf("unknown const: `%s`", name),
		map[string]any{"name": name})
}

func UnknownAxiom(name string) *Error {
	return newErr(CategoryKernel, "UNKNOWN_AXIOM",
		fmt.Sprintf("unknown axiom: `%s`", name),
		map[string]any{"name": name})
}

func ArrowExpected(got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "ARROW_EXPECTED",
		fmt.Sprintf("expected an arrow type, got %s", got),
		map[string]any{"got": got.String()})
}

func TypeMismatchApp(expected, got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "TYPE_MISMATCH_APP",
		fmt.Sprintf("type mismatch in application: expected %s, got %s", expected, got),
		map[string]any{"expected": expected.String(), "got": got.String()})
}

func ProofHasHole(name string) *Error {
	return newErr(CategoryKernel, "PROOF_HAS_HOLE",
		fmt.Sprintf("closed proof still contains hole `%s`", name),
		map[string]any{"name": name})
}

func ImpEShapeMismatch(got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "IMPE_SHAPE_MISMATCH",
		fmt.Sprintf("impE expects an implication, got %s", got),
		map[string]any{"got": got.String()})
}

func ImpENotDefEq(expected, got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "IMPE_NOT_DEFEQ",
		fmt.Sprintf("impE antecedent mismatch: expected %s, got %s", expected, got),
		map[string]any{"expected": expected.String(), "got": got.String()})
}

func AllEShapeMismatch(got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "ALLE_SHAPE_MISMATCH",
		fmt.Sprintf("allE expects a universal, got %s", got),
		map[string]any{"got": got.String()})
}

func AllETypeMismatch(expected, got fmt.Stringer) *Error {
	return newErr(CategoryKernel, "ALLE_TYPE_MISMATCH",
		fmt.Sprintf("allE argument type mismatch: expected %s, got %s", expected, got),
		map[string]any{"expected": expected.String(), "got": got.String()})
}

func RuleNotWellFormed(reason string) *Error {
	return newErr(CategoryKernel, "RULE_NOT_WF", reason, map[string]any{"reason": reason})
}

func AxiomConflict(name string) *Error {
	return newErr(CategoryKernel, "AXIOM_CONFLICT",
		fmt.Sprintf("axiom or theorem `%s` already exists", name),
		map[string]any{"name": name})
}

func NotationConflict(name string) *Error {
	return newErr(CategoryKernel, "NOTATION_CONFLICT",
		fmt.Sprintf("constant `%s` already declared", name),
		map[string]any{"name": name})
}

// --- Elaborator errors ---

func NoNotationMatch() *Error {
	return newErr(CategoryElab, "NO_NOTATION_MATCH", "no notation or built-in rule matches this syntax", nil)
}

func MalformedSyntax(context string) *Error {
	return newErr(CategoryElab, "MALFORMED_SYNTAX",
		fmt.Sprintf("malformed syntax in %s", context),
		map[string]any{"context": context})
}

func UnknownTactic(name string) *Error {
	return newErr(CategoryElab, "UNKNOWN_TACTIC",
		fmt.Sprintf("unknown tactic: `%s`", name),
		map[string]any{"name": name})
}

func UnknownCommand(name string) *Error {
	return newErr(CategoryElab, "UNKNOWN_COMMAND",
		fmt.Sprintf("unknown command: `%s`", name),
		map[string]any{"name": name})
}

// --- Tactic errors ---

func NoGoals() *Error {
	return newErr(CategoryTactic, "NO_GOALS", "no open goals", nil)
}

func Assumption(target fmt.Stringer) *Error {
	return newErr(CategoryTactic, "ASSUMPTION",
		fmt.Sprintf("no hypothesis is definitionally equal to %s", target),
		map[string]any{"target": target.String()})
}

func Intro(target fmt.Stringer) *Error {
	return newErr(CategoryTactic, "INTRO",
		fmt.Sprintf("intro requires an implication or universal goal, got %s", target),
		map[string]any{"target": target.String()})
}

func UnknownId(name string) *Error {
	return newErr(CategoryTactic, "UNKNOWN_ID",
		fmt.Sprintf("unknown identifier: `%s`", name),
		map[string]any{"name": name})
}

func NotDefEq(lhs, rhs fmt.Stringer) *Error {
	return newErr(CategoryTactic, "NOT_DEFEQ",
		fmt.Sprintf("not definitionally equal: %s vs %s", lhs, rhs),
		map[string]any{"lhs": lhs.String(), "rhs": rhs.String()})
}

func TacticTypeMismatch(term, have, expected fmt.Stringer) *Error {
	return newErr(CategoryTactic, "TYPE_MISMATCH",
		fmt.Sprintf("%s has type %s, expected %s", term, have, expected),
		map[string]any{"term": term.String(), "have": have.String(), "expected": expected.String()})
}

func ApplyExcessArgument() *Error {
	return newErr(CategoryTactic, "APPLY_EXCESS_ARGUMENT", "apply given more arguments than the rule accepts", nil)
}

func NotApplicable(rule fmt.Stringer) *Error {
	return newErr(CategoryTactic, "NOT_APPLICABLE",
		fmt.Sprintf("cannot apply a term argument to %s", rule),
		map[string]any{"rule": rule.String()})
}

// GoalSummary is a structure-preserving, package-agnostic rendering of
// one open goal, built by the tactic/elab layers (which know the real
// Goal type) so that kernelerr itself never has to import them.
type GoalSummary struct {
	Hole   string
	Target string
	Hyps   []string
	FVars  []string
}

// UnsolvedGoals reports every goal left open at the end of a proof
// script.
func UnsolvedGoals(goals []GoalSummary) *Error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d unsolved goal(s):\n", len(goals))
	for i, g := range goals {
		fmt.Fprintf(&b, "goal %d (%s): %s\n", i, g.Hole, g.Target)
		for _, v := range g.FVars {
			fmt.Fprintf(&b, "  var  %s\n", v)
		}
		for _, h := range g.Hyps {
			fmt.Fprintf(&b, "  hyp  %s\n", h)
		}
	}
	b.WriteString(pretty.String(goals))
	return newErr(CategoryTactic, "UNSOLVED_GOALS", b.String(), map[string]any{"goals": goals})
}
