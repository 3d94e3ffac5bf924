package elab

import (
	"github.com/orizon-lang/minihol/internal/parser"
	"github.com/orizon-lang/minihol/internal/rule"
	"github.com/orizon-lang/minihol/internal/trie"
	"github.com/orizon-lang/minihol/internal/ty"
)

// Notation is a registered user notation: the declared constant name,
// the grammar precedence it was installed at, its descriptor shape
// (atoms and term slots, in source order), and the declared base
// type used to build the constant's curried type.
type Notation struct {
	Name   string
	Prec   int
	Descrs []NotationDescr
	BaseTy ty.Ty
}

// NotationDescrKind distinguishes a literal keyword atom from a term
// slot in a notation's descriptor list.
type NotationDescrKind int

const (
	NDAtom NotationDescrKind = iota
	NDTerm
)

// NotationDescr is one element of a notation's descriptor list.
type NotationDescr struct {
	Kind    NotationDescrKind
	Literal string
	MinPrec int
}

// CoreState is the kernel's persistent global state: the parser's
// grammar table and separator trie (both extended at run time by
// "notation" commands), the registered notations (used to re-match a
// parsed node back to the notation that produced it), the table of
// declared constants, and the table of established axioms/theorems.
type CoreState struct {
	Grammar   parser.Grammar
	Trie      *trie.Trie
	Notations []Notation
	Constants map[string]ty.Ty
	Axioms    map[string]rule.Rule
}

var initialSeparators = []string{
	"(", ")", "->", "\\", ":", ",", "!!", "=>", ":=",
	"notation", "axiom", "prove", "by",
	"assum", "intro", "apply", "have",
}

func recurseDescr(nonterm string, minPrec int) parser.Descr {
	return parser.Descr{Kind: parser.DescrRecurse, Nonterm: nonterm, MinPrec: minPrec}
}

func symbolDescr(lit string) parser.Descr {
	return parser.Descr{Kind: parser.DescrSymbol, Literal: lit}
}

var identDescr = parser.Descr{Kind: parser.DescrIdent}
var strDescr = parser.Descr{Kind: parser.DescrStr}
var numDescr = parser.Descr{Kind: parser.DescrNum}

func many1Descr(inner parser.Descr) parser.Descr {
	return parser.Descr{Kind: parser.DescrMany1, Inner: &inner}
}

func manyDescr(inner parser.Descr) parser.Descr {
	return parser.Descr{Kind: parser.DescrMany, Inner: &inner}
}

// DefaultCoreState bootstraps the grammar table, separator trie, and
// empty constant/axiom tables for a fresh session.
func DefaultCoreState() CoreState {
	g := parser.NewGrammar()

	// ty := '(' ty ')' | ident | ty@31 '->' ty@30
	g = g.AddRule("ty", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("("), recurseDescr("ty", 0), symbolDescr(")")}})
	g = g.AddRule("ty", parser.Rule{Prec: 1000, Descr: []parser.Descr{identDescr}})
	g = g.AddRule("ty", parser.Rule{Prec: 30, Descr: []parser.Descr{recurseDescr("ty", 0), symbolDescr("->"), recurseDescr("ty", 30)}})

	// term := '(' term ')' | ident | '\' ident ':' ty ',' term | term@0 term@1
	g = g.AddRule("term", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("("), recurseDescr("term", 0), symbolDescr(")")}})
	g = g.AddRule("term", parser.Rule{Prec: 1000, Descr: []parser.Descr{identDescr}})
	g = g.AddRule("term", parser.Rule{Prec: 1000, Descr: []parser.Descr{
		symbolDescr("\\"), identDescr, symbolDescr(":"), recurseDescr("ty", 0), symbolDescr(","), recurseDescr("term", 0),
	}})
	g = g.AddRule("term", parser.Rule{Prec: 0, Descr: []parser.Descr{recurseDescr("term", 0), recurseDescr("term", 1)}})

	// rule := '(' rule ')' | term | '!!' ident+ ':' ty ',' rule | rule@31 '=>' rule@30
	g = g.AddRule("rule", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("("), recurseDescr("rule", 0), symbolDescr(")")}})
	g = g.AddRule("rule", parser.Rule{Prec: 1000, Descr: []parser.Descr{
		symbolDescr("!!"), many1Descr(identDescr), symbolDescr(":"), recurseDescr("ty", 0), symbolDescr(","), recurseDescr("rule", 0),
	}})
	g = g.AddRule("rule", parser.Rule{Prec: 1000, Descr: []parser.Descr{recurseDescr("term", 0)}})
	g = g.AddRule("rule", parser.Rule{Prec: 30, Descr: []parser.Descr{recurseDescr("rule", 0), symbolDescr("=>"), recurseDescr("rule", 30)}})

	// notation := string | '(' ty ':' num ')'
	g = g.AddRule("notation", parser.Rule{Prec: 1000, Descr: []parser.Descr{strDescr}})
	g = g.AddRule("notation", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("("), recurseDescr("ty", 0), symbolDescr(":"), numDescr, symbolDescr(")")}})

	// applyArg := ident | term@61
	g = g.AddRule("applyArg", parser.Rule{Prec: 1000, Descr: []parser.Descr{identDescr}})
	g = g.AddRule("applyArg", parser.Rule{Prec: 500, Descr: []parser.Descr{recurseDescr("term", 61)}})

	// tactic := 'assum' | 'intro' ident+ | 'apply' ident applyArg* | 'have' ident ':' rule
	g = g.AddRule("tactic", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("assum")}})
	g = g.AddRule("tactic", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("intro"), many1Descr(identDescr)}})
	g = g.AddRule("tactic", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("apply"), identDescr, manyDescr(recurseDescr("applyArg", 0))}})
	g = g.AddRule("tactic", parser.Rule{Prec: 1000, Descr: []parser.Descr{symbolDescr("have"), identDescr, symbolDescr(":"), recurseDescr("rule", 0)}})

	// command := 'notation' ':' num notation+ ':' ty ':=' ident
	//          | 'axiom' ident ':' rule
	//          | 'prove' ident ':' rule 'by' tactic*
	g = g.AddRule("command", parser.Rule{Prec: 1000, Descr: []parser.Descr{
		symbolDescr("notation"), symbolDescr(":"), numDescr, many1Descr(recurseDescr("notation", 0)),
		symbolDescr(":"), recurseDescr("ty", 0), symbolDescr(":="), identDescr,
	}})
	g = g.AddRule("command", parser.Rule{Prec: 1000, Descr: []parser.Descr{
		symbolDescr("axiom"), identDescr, symbolDescr(":"), recurseDescr("rule", 0),
	}})
	g = g.AddRule("command", parser.Rule{Prec: 1000, Descr: []parser.Descr{
		symbolDescr("prove"), identDescr, symbolDescr(":"), recurseDescr("rule", 0), symbolDescr("by"), manyDescr(recurseDescr("tactic", 0)),
	}})

	t := trie.New()
	for _, sep := range initialSeparators {
		t = t.Insert(sep)
	}

	return CoreState{
		Grammar:   g,
		Trie:      t,
		Constants: map[string]ty.Ty{},
		Axioms:    map[string]rule.Rule{},
	}
}
