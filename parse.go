package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Parse scans an expression into a token stream that can be evaluated any
// number of times. The given options are applied in order.
//
// Words are resolved in order as operators, named constants, then variables
// from the set given with WithVars; any other word is a *LexError. The
// ambiguous symbols - and | are resolved from the token before them: after an
// operand, a variable, or an operator that takes nothing on its right, they
// are subtraction and a closing absolute value bar; otherwise they are
// negation and an opening bar.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	p := parsectx{reg: defaultRegistry}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	scan := lex(src, p.wseof)
	toks := []Token{{kind: TokenOperator, op: p.reg.Start()}}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		var t Token
		switch tok.kind {
		case lexEOF:
			toks = append(toks, Token{kind: TokenOperator, op: p.reg.End(), pos: tok.pos})
			return &Expr{toks: toks, vars: p.vars}, nil
		case lexNum:
			t, err = parsenum(tok)
		case lexIdent:
			t, err = p.word(tok, toks[len(toks)-1])
		case lexSpecial:
			t, err = p.operator(tok, toks[len(toks)-1])
		default:
			panic("calculator: invalid token " + tok.String())
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
	}
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

func parsenum(tok lexToken) (Token, error) {
	v, err := strconv.ParseFloat(tok.text, 64)
	// Out of range numbers become infinity or zero.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return Token{kind: TokenOperand, num: NewOperand(v), pos: tok.pos}, nil
}

func (p *parsectx) word(tok lexToken, prev Token) (Token, error) {
	if p.reg.Exists(tok.text) {
		return p.operator(tok, prev)
	}
	if c, ok := Constant(tok.text); ok {
		return Token{kind: TokenOperand, num: c, pos: tok.pos}, nil
	}
	if p.vars != nil {
		if v, ok := p.vars.lookup(tok.text); ok {
			return Token{kind: TokenVariable, v: v, pos: tok.pos}, nil
		}
	}
	return Token{}, &LexError{Text: tok.text, Kind: "identifier", Col: tok.pos}
}

func (p *parsectx) operator(tok lexToken, prev Token) (Token, error) {
	op, err := p.reg.Resolve(tok.text, prev)
	if err != nil {
		var lerr *LexError
		if errors.As(err, &lerr) {
			lerr.Col = tok.pos
		}
		return Token{}, err
	}
	return Token{kind: TokenOperator, op: op, pos: tok.pos}, nil
}
