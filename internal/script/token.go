package script

import "fmt"

// tokenType represents the kind of token.
type tokenType int

const (
	tokEOF tokenType = iota

	// Literals & identifiers
	tokIdent
	tokString
	tokNumber
	tokBool

	// Keywords
	tokSet
	tokIf
	tokThen

	// Operators & punctuation
	tokEquals   // "="
	tokNotEqual // "!="
	tokGreater  // ">"
	tokLess     // "<"
	tokArrow    // "->"
	tokLBracket // "["
	tokRBracket // "]"
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string literal"
	case tokNumber:
		return "number literal"
	case tokBool:
		return "boolean literal"
	case tokSet:
		return "'SET'"
	case tokIf:
		return "'IF'"
	case tokThen:
		return "'THEN'"
	case tokEquals:
		return "'='"
	case tokNotEqual:
		return "'!='"
	case tokGreater:
		return "'>'"
	case tokLess:
		return "'<'"
	case tokArrow:
		return "'->'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// token is a lexical token with its decoded literal value and source position.
type token struct {
	typ    tokenType
	lexeme string // raw text slice
	str    string // decoded value for string literals
	num    int    // value for number literals
	bool   bool   // value for boolean literals
	line   int    // 1-based
	col    int    // 1-based
}

var keywords = map[string]tokenType{
	"SET":  tokSet,
	"IF":   tokIf,
	"THEN": tokThen,
}
