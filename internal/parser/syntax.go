package parser

import "github.com/cockroachdb/apd/v3"

// SyntaxKind distinguishes the five shapes a parsed Syntax value can
// take.
type SyntaxKind int

const (
	SynIdent SyntaxKind = iota
	SynAtom
	SynStr
	SynNum
	SynNode
)

// Syntax is the parser's sole output type: an identifier, a matched
// symbol literal, a decoded string literal, a decoded numeral, or a
// node tagged by the nonterminal whose rule produced it, carrying its
// children in source order.
type Syntax struct {
	Kind     SyntaxKind
	Text     string
	Num      apd.Decimal
	NodeType string
	Args     []Syntax
}

// IsAtom reports whether s is the atom produced by matching the
// symbol literal lit.
func IsAtom(s Syntax, lit string) bool {
	return s.Kind == SynAtom && s.Text == lit
}
