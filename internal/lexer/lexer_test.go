package lexer

import (
	"testing"

	"github.com/orizon-lang/minihol/internal/trie"
)

func sepTrie() *trie.Trie {
	t := trie.New()
	for _, s := range []string{"(", ")", "->", ":", ",", "=>"} {
		t = t.Insert(s)
	}
	return t
}

func TestPeekIdent(t *testing.T) {
	tr := sepTrie()
	s := New("foo bar")
	tok, ok := s.Peek(tr)
	if !ok || tok.Text != "foo" {
		t.Fatalf("got %+v, %v, want foo", tok, ok)
	}
}

func TestPeekNumber(t *testing.T) {
	tr := sepTrie()
	s := New("123abc")
	tok, ok := s.Peek(tr)
	if !ok || tok.Text != "123" {
		t.Fatalf("got %+v, %v, want 123", tok, ok)
	}
}

func TestPeekSeparatorLongestMatch(t *testing.T) {
	tr := sepTrie()
	s := New("=>x")
	tok, ok := s.Peek(tr)
	if !ok || tok.Text != "=>" {
		t.Fatalf("got %+v, %v, want =>", tok, ok)
	}
}

func TestPeekString(t *testing.T) {
	tr := sepTrie()
	s := New(`"hello \" world" rest`)
	tok, ok := s.Peek(tr)
	if !ok {
		t.Fatal("expected a token")
	}
	if tok.Text != `"hello \" world"` {
		t.Fatalf("got %q", tok.Text)
	}
}

func TestPeekUnterminatedString(t *testing.T) {
	tr := sepTrie()
	s := New(`"unterminated`)
	tok, ok := s.Peek(tr)
	if !ok {
		t.Fatal("expected a token even when unterminated")
	}
	if tok.Text != `"unterminated` {
		t.Fatalf("got %q", tok.Text)
	}
}

func TestPeekEmptyIsFalse(t *testing.T) {
	tr := sepTrie()
	s := New("   ")
	if _, ok := s.Peek(tr); ok {
		t.Fatal("expected no token on whitespace-only input")
	}
}

func TestNextAdvancesPastToken(t *testing.T) {
	tr := sepTrie()
	s := New("foo bar")
	s2 := s.Next(tr)
	tok, ok := s2.Peek(tr)
	if !ok || tok.Text != "bar" {
		t.Fatalf("got %+v, %v, want bar", tok, ok)
	}
}

func TestStreamIsImmutable(t *testing.T) {
	tr := sepTrie()
	s := New("foo bar")
	_ = s.Next(tr)
	tok, ok := s.Peek(tr)
	if !ok || tok.Text != "foo" {
		t.Fatalf("original stream mutated: got %+v, %v", tok, ok)
	}
}

func TestIdentStopsAtSeparator(t *testing.T) {
	tr := sepTrie()
	s := New("foo->bar")
	tok, _ := s.Peek(tr)
	if tok.Text != "foo" {
		t.Fatalf("got %q, want foo", tok.Text)
	}
	s2 := s.Next(tr)
	tok2, _ := s2.Peek(tr)
	if tok2.Text != "->" {
		t.Fatalf("got %q, want ->", tok2.Text)
	}
}
