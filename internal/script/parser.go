package script

import (
	"github.com/rockysnow7/cyoa/pkg/story"
)

// parser turns a token stream into an unresolved story graph. The grammar is
// unambiguous without line structure: a top-level "=" can only start a scene
// header, and every choice starts with a string literal.
type parser struct {
	tokens []token
	pos    int
}

// Parse turns raw story text into a story graph. The result still needs
// Resolve before it can be served; Load does both.
func Parse(source string) (*story.Story, error) {
	tokens, err := newLexer(source).scan()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

func (p *parser) peek() token { return p.tokens[p.pos] }
func (p *parser) next() token { t := p.tokens[p.pos]; p.pos++; return t }

func (p *parser) check(typ tokenType) bool { return p.peek().typ == typ }

func (p *parser) expect(typ tokenType) (token, error) {
	tok := p.peek()
	if tok.typ != typ {
		return token{}, errAt(tok.line, tok.col, "expected %s, found %s", typ, describe(tok))
	}
	return p.next(), nil
}

func describe(tok token) string {
	switch tok.typ {
	case tokEOF:
		return "end of input"
	case tokIdent, tokNumber, tokBool:
		return "'" + tok.lexeme + "'"
	case tokString:
		return "string literal"
	default:
		return tok.typ.String()
	}
}

func (p *parser) parseProgram() (*story.Story, error) {
	st := &story.Story{
		Scenes:  make(map[string]*story.Scene),
		Initial: make(story.Environment),
		Entry:   story.EntryScene,
	}
	for {
		tok := p.peek()
		switch tok.typ {
		case tokEOF:
			return st, nil
		case tokSet:
			if err := p.parseSet(st); err != nil {
				return nil, err
			}
		case tokEquals:
			if err := p.parseScene(st); err != nil {
				return nil, err
			}
		default:
			return nil, errAt(tok.line, tok.col, "expected 'SET' or a scene header, found %s", describe(tok))
		}
	}
}

// parseSet handles `SET name literal`, building the initial environment.
// A repeated SET for the same name overwrites the earlier binding.
func (p *parser) parseSet(st *story.Story) error {
	p.next() // SET
	name, err := p.expect(tokIdent)
	if err != nil {
		return err
	}
	val, err := p.parseLiteral()
	if err != nil {
		return err
	}
	st.Initial[name.lexeme] = val
	return nil
}

func (p *parser) parseLiteral() (story.Value, error) {
	tok := p.peek()
	switch tok.typ {
	case tokNumber:
		p.next()
		return story.Number(tok.num), nil
	case tokString:
		p.next()
		return story.String(tok.str), nil
	case tokBool:
		p.next()
		return story.Boolean(tok.bool), nil
	default:
		return story.Value{}, errAt(tok.line, tok.col, "expected a literal value, found %s", describe(tok))
	}
}

func (p *parser) parseScene(st *story.Story) error {
	header := p.next() // "="
	name, err := p.expect(tokIdent)
	if err != nil {
		return err
	}
	if _, exists := st.Scenes[name.lexeme]; exists {
		return errAt(name.line, name.col, "duplicate scene %q", name.lexeme)
	}

	// The first quoted string after the header is the narration.
	if !p.check(tokString) {
		return errAt(header.line, header.col, "scene %q is missing a narration string", name.lexeme)
	}
	narrTok := p.next()
	narration, err := story.ParseTemplate(narrTok.str)
	if err != nil {
		return errAt(narrTok.line, narrTok.col, "%v", err)
	}

	scene := &story.Scene{Name: name.lexeme, Narration: narration}
	for p.check(tokString) {
		choice, err := p.parseChoice()
		if err != nil {
			return err
		}
		scene.Choices = append(scene.Choices, choice)
	}
	st.Scenes[scene.Name] = scene
	return nil
}

// parseChoice handles `"text" -> Target [IF expr] [THEN assignment]`.
func (p *parser) parseChoice() (story.Choice, error) {
	textTok := p.next()
	text, err := story.ParseTemplate(textTok.str)
	if err != nil {
		return story.Choice{}, errAt(textTok.line, textTok.col, "%v", err)
	}
	if _, err := p.expect(tokArrow); err != nil {
		return story.Choice{}, err
	}
	target, err := p.expect(tokIdent)
	if err != nil {
		return story.Choice{}, err
	}

	choice := story.Choice{Text: text, Target: target.lexeme}
	if p.check(tokLBracket) {
		guard, effect, err := p.parseClause(choice)
		if err != nil {
			return story.Choice{}, err
		}
		choice.Guard, choice.Effect = guard, effect
		if p.check(tokLBracket) {
			if choice.Effect != nil {
				open := p.peek()
				return story.Choice{}, errAt(open.line, open.col, "unexpected clause after THEN effect")
			}
			_, effect, err := p.parseClause(choice)
			if err != nil {
				return story.Choice{}, err
			}
			choice.Effect = effect
		}
	}
	return choice, nil
}

// parseClause handles one bracketed [IF expr] or [THEN assignment] clause.
// Grammar order is IF before THEN; a second IF or an IF after THEN is
// rejected.
func (p *parser) parseClause(c story.Choice) (*story.Expr, *story.Assignment, error) {
	p.next() // "["
	tok := p.next()
	switch tok.typ {
	case tokIf:
		if c.Guard != nil {
			return nil, nil, errAt(tok.line, tok.col, "duplicate IF guard")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, nil, err
		}
		return &expr, c.Effect, nil
	case tokThen:
		assign, err := p.parseAssignment()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, nil, err
		}
		return c.Guard, &assign, nil
	default:
		return nil, nil, errAt(tok.line, tok.col, "expected 'IF' or 'THEN', found %s", describe(tok))
	}
}

func (p *parser) parseOperand() (story.Operand, error) {
	tok := p.peek()
	if tok.typ == tokIdent {
		p.next()
		return story.VarOperand(tok.lexeme), nil
	}
	val, err := p.parseLiteral()
	if err != nil {
		return story.Operand{}, errAt(tok.line, tok.col, "expected a variable or literal, found %s", describe(tok))
	}
	return story.LitOperand(val), nil
}

// parseExpr handles the strictly binary guard form: operand op operand.
func (p *parser) parseExpr() (story.Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return story.Expr{}, err
	}
	opTok := p.next()
	var op story.Op
	switch opTok.typ {
	case tokEquals:
		op = story.OpEqual
	case tokNotEqual:
		op = story.OpNotEqual
	case tokGreater:
		op = story.OpGreater
	case tokLess:
		op = story.OpLess
	default:
		return story.Expr{}, errAt(opTok.line, opTok.col, "expected a comparison operator, found %s", describe(opTok))
	}
	right, err := p.parseOperand()
	if err != nil {
		return story.Expr{}, err
	}
	return story.Expr{Left: left, Op: op, Right: right}, nil
}

// parseAssignment handles the single effect form: variable = operand.
func (p *parser) parseAssignment() (story.Assignment, error) {
	target, err := p.expect(tokIdent)
	if err != nil {
		return story.Assignment{}, err
	}
	if _, err := p.expect(tokEquals); err != nil {
		return story.Assignment{}, err
	}
	operand, err := p.parseOperand()
	if err != nil {
		return story.Assignment{}, err
	}
	return story.Assignment{Target: target.lexeme, Operand: operand}, nil
}
