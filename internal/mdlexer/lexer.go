package mdlexer

import (
	"strconv"

	"github.com/ortfero/mandalang/internal/mderror"
)

// Lexer scans Mandalang source text into Tokens. It holds one token of
// pushback so the parser can peek a single token ahead.
type Lexer struct {
	source   string
	pos      int
	line     uint
	pushedBack bool
	last     Token
}

// New creates a Lexer over source, starting at line 1.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

// Line returns the line of the most recently scanned token.
func (l *Lexer) Line() uint { return l.line }

func (l *Lexer) at(offset int) byte {
	i := l.pos + offset
	if i < 0 || i >= len(l.source) {
		return 0
	}
	return l.source[i]
}

func (l *Lexer) cur() byte { return l.at(0) }

// Next returns the next token, replaying the pushed-back one if Back was
// called since the last Next.
func (l *Lexer) Next() (Token, error) {
	if l.pushedBack {
		l.pushedBack = false
		return l.last, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.last = tok
	return tok, nil
}

// Expect reads the next token and requires it have the given tag,
// otherwise failing with the supplied error kind.
func (l *Lexer) Expect(tag TokenTag, kind mderror.Kind) (Token, error) {
	tok, err := l.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Tag != tag {
		return Token{}, mderror.At(kind, tok.Line)
	}
	return tok, nil
}

// Back pushes the most recently returned token back onto the stream.
func (l *Lexer) Back() {
	l.pushedBack = true
}

func (l *Lexer) scan() (Token, error) {
	if done, tok := l.skipSpacesAndComments(); done {
		return tok, nil
	}
	c := l.cur()
	switch {
	case c == '(':
		l.pos++
		return Token{Tag: TokenLeftParenthesis, Line: l.line}, nil
	case c == ')':
		l.pos++
		return Token{Tag: TokenRightParenthesis, Line: l.line}, nil
	case c == '[':
		l.pos++
		return Token{Tag: TokenLeftSquareBrace, Line: l.line}, nil
	case c == ']':
		l.pos++
		return Token{Tag: TokenRightSquareBrace, Line: l.line}, nil
	case c == '+':
		l.pos++
		return Token{Tag: TokenPlus, Line: l.line}, nil
	case c == '-':
		l.pos++
		if l.cur() == '>' {
			l.pos++
			return Token{Tag: TokenMinusGreater, Line: l.line}, nil
		}
		return Token{Tag: TokenMinus, Line: l.line}, nil
	case c == '*':
		l.pos++
		return Token{Tag: TokenAsterisk, Line: l.line}, nil
	case c == '/':
		l.pos++
		return Token{Tag: TokenSlash, Line: l.line}, nil
	case c == ',':
		l.pos++
		return Token{Tag: TokenComma, Line: l.line}, nil
	case c == '=':
		l.pos++
		if l.cur() == '=' {
			l.pos++
			return Token{Tag: TokenDoubleEquals, Line: l.line}, nil
		}
		return Token{Tag: TokenEquals, Line: l.line}, nil
	case c == '!':
		l.pos++
		if l.cur() == '=' {
			l.pos++
			return Token{Tag: TokenExclamationEquals, Line: l.line}, nil
		}
		return Token{Tag: TokenExclamation, Line: l.line}, nil
	case c == '>':
		l.pos++
		if l.cur() == '=' {
			l.pos++
			return Token{Tag: TokenGreaterEquals, Line: l.line}, nil
		}
		return Token{Tag: TokenGreater, Line: l.line}, nil
	case c == '<':
		l.pos++
		if l.cur() == '=' {
			l.pos++
			return Token{Tag: TokenLessEquals, Line: l.line}, nil
		}
		return Token{Tag: TokenLess, Line: l.line}, nil
	case c == '&':
		l.pos++
		if l.cur() != '&' {
			return Token{}, mderror.WithDetails(mderror.InvalidOperator, l.line, "&")
		}
		l.pos++
		return Token{Tag: TokenDoubleAmpersand, Line: l.line}, nil
	case c == '|':
		l.pos++
		if l.cur() != '|' {
			return Token{}, mderror.WithDetails(mderror.InvalidOperator, l.line, "|")
		}
		l.pos++
		return Token{Tag: TokenDoubleVertical, Line: l.line}, nil
	case isDigit(c):
		return l.scanNumber()
	case c == '\x00':
		return Token{Tag: TokenStop, Line: l.line}, nil
	case isLetterOrUnderscore(c):
		return l.scanNameOrKeyword()
	default:
		return Token{}, mderror.WithDetails(mderror.InvalidCharacter, l.line, string(c))
	}
}

func (l *Lexer) skipSpacesAndComments() (bool, Token) {
	for {
		switch c := l.cur(); c {
		case ' ', '\t', '\r':
			l.pos++
			continue
		case '\n':
			l.pos++
			l.line++
			continue
		case '-':
			l.pos++
			switch l.cur() {
			case '-':
				l.skipComment()
				continue
			case '>':
				l.pos++
				return true, Token{Tag: TokenMinusGreater, Line: l.line}
			default:
				return true, Token{Tag: TokenMinus, Line: l.line}
			}
		default:
			return false, Token{}
		}
	}
}

func (l *Lexer) skipComment() {
	l.pos++
	for {
		switch l.cur() {
		case 0:
			return
		case '\n':
			l.pos++
			l.line++
			return
		default:
			l.pos++
		}
	}
}

func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	l.pos++
	hasPoint := false
	hasExponent := false
	for {
		c := l.cur()
		switch {
		case isDigit(c):
			l.pos++
		case c == '.':
			if hasPoint {
				return Token{}, mderror.At(mderror.InvalidNumber, l.line)
			}
			l.pos++
			if !isDigit(l.cur()) {
				return Token{}, mderror.At(mderror.InvalidNumber, l.line)
			}
			hasPoint = true
		case c == 'e' || c == 'E':
			if hasExponent {
				return Token{}, mderror.At(mderror.InvalidNumber, l.line)
			}
			hasExponent = true
			l.pos++
			if l.cur() == '+' || l.cur() == '-' {
				l.pos++
			}
			if !isDigit(l.cur()) {
				return Token{}, mderror.At(mderror.InvalidNumber, l.line)
			}
		default:
			text := l.source[start:l.pos]
			if hasPoint || hasExponent {
				v, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return Token{}, mderror.At(mderror.InvalidNumber, l.line)
				}
				return Token{Tag: TokenFloat, Float: v, Line: l.line}, nil
			}
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return Token{}, mderror.At(mderror.InvalidNumber, l.line)
			}
			return Token{Tag: TokenInt, Int: v, Line: l.line}, nil
		}
	}
}

var keywords = map[string]TokenTag{
	"fn":     TokenKeywordFn,
	"let":    TokenKeywordLet,
	"type":   TokenKeywordType,
	"if":     TokenKeywordIf,
	"then":   TokenKeywordThen,
	"else":   TokenKeywordElse,
	"vector": TokenKeywordVector,
}

func (l *Lexer) scanNameOrKeyword() (Token, error) {
	start := l.pos
	l.pos++
	for isLetterOrDigit(l.cur()) {
		l.pos++
	}
	name := l.source[start:l.pos]
	if tag, ok := keywords[name]; ok {
		return Token{Tag: tag, Line: l.line}, nil
	}
	return Token{Tag: TokenName, Name: name, Line: l.line}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetterOrUnderscore(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isLetterOrDigit(c byte) bool {
	return isLetterOrUnderscore(c) || isDigit(c)
}
