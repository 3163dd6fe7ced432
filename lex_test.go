package calculator

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []lexToken{{text: "0", kind: lexNum, pos: 1}}},
		{"9876543210", []lexToken{{text: "9876543210", kind: lexNum, pos: 1}}},
		{"1 0", []lexToken{{text: "1", kind: lexNum, pos: 1}, {text: "0", kind: lexNum, pos: 3}}},
		{"1.0", []lexToken{{text: "1.0", kind: lexNum, pos: 1}}},
		{".5", []lexToken{{text: ".5", kind: lexNum, pos: 1}}},
		{"1e1", []lexToken{{text: "1e1", kind: lexNum, pos: 1}}},
		{"1E-3", []lexToken{{text: "1E-3", kind: lexNum, pos: 1}}},
		{"1.e+3", []lexToken{{text: "1.e+3", kind: lexNum, pos: 1}}},
		{"1-1", []lexToken{{text: "1", kind: lexNum, pos: 1}, {text: "-", kind: lexSpecial, pos: 2}, {text: "1", kind: lexNum, pos: 3}}},
		{"1e-1-1", []lexToken{{text: "1e-1", kind: lexNum, pos: 1}, {text: "-", kind: lexSpecial, pos: 5}, {text: "1", kind: lexNum, pos: 6}}},
		{"2pi", []lexToken{{text: "2", kind: lexNum, pos: 1}, {text: "pi", kind: lexIdent, pos: 2}}},
		{"1.1.1", []lexToken{{text: "1.1.1", kind: lexNum, pos: 1}}},
		// identifiers
		{"e", []lexToken{{text: "e", kind: lexIdent, pos: 1}}},
		{"x1", []lexToken{{text: "x1", kind: lexIdent, pos: 1}}},
		{"_a_b", []lexToken{{text: "_a_b", kind: lexIdent, pos: 1}}},
		{"π", []lexToken{{text: "π", kind: lexIdent, pos: 1}}},
		{"sin(x)", []lexToken{
			{text: "sin", kind: lexIdent, pos: 1},
			{text: "(", kind: lexSpecial, pos: 4},
			{text: "x", kind: lexIdent, pos: 5},
			{text: ")", kind: lexSpecial, pos: 6},
		}},
		{"log 2~8", []lexToken{
			{text: "log", kind: lexIdent, pos: 1},
			{text: "2", kind: lexNum, pos: 5},
			{text: "~", kind: lexSpecial, pos: 6},
			{text: "8", kind: lexNum, pos: 7},
		}},
		// specials
		{"+", []lexToken{{text: "+", kind: lexSpecial, pos: 1}}},
		{"*-", []lexToken{{text: "*-", kind: lexSpecial, pos: 1}}},
		{"* -", []lexToken{{text: "*", kind: lexSpecial, pos: 1}, {text: "-", kind: lexSpecial, pos: 3}}},
		{"3!", []lexToken{{text: "3", kind: lexNum, pos: 1}, {text: "!", kind: lexSpecial, pos: 2}}},
		// single-rune specials
		{"()", []lexToken{{text: "(", kind: lexSpecial, pos: 1}, {text: ")", kind: lexSpecial, pos: 2}}},
		{"||", []lexToken{{text: "|", kind: lexSpecial, pos: 1}, {text: "|", kind: lexSpecial, pos: 2}}},
		{"-(", []lexToken{{text: "-", kind: lexSpecial, pos: 1}, {text: "(", kind: lexSpecial, pos: 2}}},
		{"+|-", []lexToken{{text: "+", kind: lexSpecial, pos: 1}, {text: "|", kind: lexSpecial, pos: 2}, {text: "-", kind: lexSpecial, pos: 3}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src), "")
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		got, err := scan.next()
		if err != nil || got.kind != lexEOF {
			t.Errorf("scanning %q: want EOF, got %v with error %v", c.src, got, err)
		}
		if _, err := scan.next(); err != io.EOF {
			t.Errorf("scanning %q: want io.EOF after EOF token, got %v", c.src, err)
		}
	}
}

func TestLexStopOn(t *testing.T) {
	scan := lex(strings.NewReader("\n 1 +\n2"), "\n")
	var got []string
	for {
		tok, err := scan.next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.kind == lexEOF {
			break
		}
		got = append(got, tok.text)
	}
	if len(got) != 2 || got[0] != "1" || got[1] != "+" {
		t.Errorf("want [1 +], got %q", got)
	}
}
