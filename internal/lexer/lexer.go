// Package lexer implements an immutable token stream. A Stream is
// just a (text, index) pair; Peek and Next never mutate
// the receiver, matching the kernel's purely value-threaded style.
// Tokenization order is fixed: whitespace is skipped, then a string
// literal, then a digit run, then the longest separator the trie
// knows, then a fallback identifier scan.
package lexer

import (
	"unicode/utf8"

	"github.com/orizon-lang/minihol/internal/trie"
)

// Token is a single recognized lexeme together with its byte span in
// the original text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Stream is an immutable cursor over source text.
type Stream struct {
	Text string
	Idx  int
}

// New returns a stream positioned at the start of text.
func New(text string) Stream {
	return Stream{Text: text, Idx: 0}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func skipSpace(text string, idx int) int {
	for idx < len(text) {
		r, size := utf8.DecodeRuneInString(text[idx:])
		if !isSpace(r) {
			break
		}
		idx += size
	}
	return idx
}

// Peek returns the next token without consuming it, or false if the
// stream (after skipping whitespace) is exhausted.
func (s Stream) Peek(tr *trie.Trie) (Token, bool) {
	idx := skipSpace(s.Text, s.Idx)
	if idx >= len(s.Text) {
		return Token{}, false
	}
	c := s.Text[idx]
	switch {
	case c == '"':
		end := scanString(s.Text, idx)
		return Token{Text: s.Text[idx:end], Start: idx, End: end}, true
	case isDigit(c):
		end := idx
		for end < len(s.Text) && isDigit(s.Text[end]) {
			end++
		}
		return Token{Text: s.Text[idx:end], Start: idx, End: end}, true
	default:
		if n := tr.MatchLongest(s.Text, idx); n > 0 {
			return Token{Text: s.Text[idx : idx+n], Start: idx, End: idx + n}, true
		}
		end := scanIdent(s.Text, idx, tr)
		return Token{Text: s.Text[idx:end], Start: idx, End: end}, true
	}
}

// scanString consumes a string literal starting at the opening quote.
// Backslash unconditionally skips the next byte without interpreting
// it; an unterminated literal simply runs to end of input, leaving
// decoding failures to the elaborator.
func scanString(text string, idx int) int {
	end := idx + 1
	for end < len(text) {
		if text[end] == '\\' {
			end++
			if end < len(text) {
				end++
			}
			continue
		}
		if text[end] == '"' {
			end++
			break
		}
		end++
	}
	return end
}

// scanIdent consumes a run of non-whitespace bytes that the trie does
// not claim, stopping as soon as either condition would apply to the
// remaining input.
func scanIdent(text string, idx int, tr *trie.Trie) int {
	end := idx
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if isSpace(r) {
			break
		}
		if tr.MatchLongest(text, end) > 0 {
			break
		}
		end += size
	}
	if end == idx {
		end = idx + 1
	}
	return end
}

// Next returns the stream positioned past the next token, or s
// unchanged if the stream is exhausted.
func (s Stream) Next(tr *trie.Trie) Stream {
	tok, ok := s.Peek(tr)
	if !ok {
		return s
	}
	return Stream{Text: s.Text, Idx: tok.End}
}
