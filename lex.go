package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind lexKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type lexKind int

const (
	lexNone lexKind = iota
	// lexEOF indicates the end of the input.
	lexEOF
	// lexNum is a decimal number, possibly in scientific notation.
	lexNum
	// lexIdent is a word: an operator name, constant, or variable.
	lexIdent
	// lexSpecial is a run of symbol characters naming an operator.
	lexSpecial
)

func (k lexKind) String() string {
	switch k {
	case lexNone:
		return "None"
	case lexEOF:
		return "EOF"
	case lexNum:
		return "Num"
	case lexIdent:
		return "Ident"
	case lexSpecial:
		return "Special"
	default:
		return "lexKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Singles contains the runes which always form one-rune tokens.
const Singles = "()|"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	// wseof is the set of whitespace runes that end the input once a token
	// has been scanned.
	wseof string
	seen  bool
	eof   bool
}

func lex(src io.RuneScanner, wseof string) *lexer {
	return &lexer{
		src:   src,
		wseof: wseof,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isSpecial reports whether r belongs to a special token.
func isSpecial(r rune) bool {
	return !unicode.IsSpace(r) && !isDigit(r) && r != '.' && !isWord(r)
}

// next scans the next token from the input. The first time the input ends,
// the result is an EOF token with a nil error. Subsequent calls return an
// empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		tok := lexToken{pos: l.rune}
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.pos++
				tok.kind = lexEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if l.seen && strings.ContainsRune(l.wseof, r) {
				tok.kind = lexEOF
				l.eof = true
				return tok, nil
			}
			continue
		case isDigit(r), r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.kind = lexNum
		case isWord(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.kind = lexIdent
		case strings.ContainsRune(Singles, r):
			l.buf.WriteRune(r)
			tok.kind = lexSpecial
		default:
			l.unreadRune()
			if err := l.scanSpecial(); err != nil {
				return tok, err
			}
			tok.kind = lexSpecial
		}
		l.seen = true
		tok.text = l.buf.String()
		return tok, nil
	}
}

// scanNum scans digits and dots. An e or E continues the number when it
// follows a digit or dot, and a sign continues it only immediately after the
// exponent marker. The text is validated by the parser.
func (l *lexer) scanNum() error {
	var prev rune
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case isDigit(r), r == '.':
		case r == 'e' || r == 'E':
			if !isDigit(prev) && prev != '.' {
				l.unreadRune()
				return nil
			}
		case r == '+' || r == '-':
			if prev != 'e' && prev != 'E' {
				l.unreadRune()
				return nil
			}
		default:
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
		prev = r
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !isWord(r) && !isDigit(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanSpecial() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !isSpecial(r) || strings.ContainsRune(Singles, r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}
