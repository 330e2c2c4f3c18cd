package script

import (
	"strconv"
	"strings"
)

// lexer scans raw story text into tokens. Whitespace, including newlines, is
// insignificant between tokens.
type lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 1-based column of cur

	// position of the token currently being scanned
	tokLine int
	tokCol  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) makeToken(typ tokenType) token {
	return token{
		typ:    typ,
		lexeme: l.src[l.start:l.cur],
		line:   l.tokLine,
		col:    l.tokCol,
	}
}

// scanString consumes a quoted string literal. The opening quote has already
// been consumed. Supported escapes: \" and \\; any other backslash is kept
// literally.
func (l *lexer) scanString() (token, error) {
	var b strings.Builder
	for {
		if l.isAtEnd() {
			return token{}, errAt(l.tokLine, l.tokCol, "unterminated string literal")
		}
		ch := l.advance()
		switch ch {
		case '"':
			tok := l.makeToken(tokString)
			tok.str = b.String()
			return tok, nil
		case '\\':
			switch l.peek() {
			case '"', '\\':
				b.WriteByte(l.advance())
			default:
				b.WriteByte(ch)
			}
		default:
			b.WriteByte(ch)
		}
	}
}

func (l *lexer) scanIdentifier() token {
	for !l.isAtEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if typ, ok := keywords[word]; ok {
		return l.makeToken(typ)
	}
	if word == "true" || word == "false" {
		tok := l.makeToken(tokBool)
		tok.bool = word == "true"
		return tok
	}
	return l.makeToken(tokIdent)
}

func (l *lexer) scanNumber() (token, error) {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	tok := l.makeToken(tokNumber)
	n, err := strconv.Atoi(tok.lexeme)
	if err != nil {
		return token{}, errAt(l.tokLine, l.tokCol, "invalid number literal %q", tok.lexeme)
	}
	tok.num = n
	return tok, nil
}

func (l *lexer) scanToken() (token, error) {
	l.skipWhitespace()
	l.start = l.cur
	l.tokLine = l.line
	l.tokCol = l.col

	if l.isAtEnd() {
		return l.makeToken(tokEOF), nil
	}

	ch := l.advance()
	switch {
	case ch == '"':
		return l.scanString()
	case ch == '=':
		return l.makeToken(tokEquals), nil
	case ch == '>':
		return l.makeToken(tokGreater), nil
	case ch == '<':
		return l.makeToken(tokLess), nil
	case ch == '[':
		return l.makeToken(tokLBracket), nil
	case ch == ']':
		return l.makeToken(tokRBracket), nil
	case ch == '!':
		if l.peek() == '=' {
			l.advance()
			return l.makeToken(tokNotEqual), nil
		}
		return token{}, errAt(l.tokLine, l.tokCol, "unexpected character '!'")
	case ch == '-':
		if l.peek() == '>' {
			l.advance()
			return l.makeToken(tokArrow), nil
		}
		if isDigit(l.peek()) {
			return l.scanNumber()
		}
		return token{}, errAt(l.tokLine, l.tokCol, "unexpected character '-'")
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch):
		return l.scanIdentifier(), nil
	default:
		return token{}, errAt(l.tokLine, l.tokCol, "unexpected character %q", string(ch))
	}
}

// scan tokenizes the whole input, stopping at the first lexical error.
func (l *lexer) scan() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokEOF {
			return tokens, nil
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
