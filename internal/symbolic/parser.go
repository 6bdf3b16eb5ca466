package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// ParseError is a backend parse failure with the offending position.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Message)
}

// Parse turns a validated expression string into an expression tree without
// evaluating it: "2+3*4" parses to a Sum over a Product, not to 14, so the
// orchestrator can classify the problem shape before any folding happens.
// The input must not contain '=' — the orchestrator splits equations first.
func Parse(text string) (Expr, error) {
	p := &parser{src: []rune(text)}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos < len(p.src) {
		return nil, &ParseError{Pos: p.pos, Message: fmt.Sprintf("unexpected %q", p.src[p.pos])}
	}
	return e, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() rune {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

// parseSum := term (('+'|'-') term)*
func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Sum{Terms: []Expr{left, right}}
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Sum{Terms: []Expr{left, &Product{Factors: []Expr{numInt(-1), right}}}}
		default:
			return left, nil
		}
	}
}

// parseTerm := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Product{Factors: []Expr{left, right}}
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Product{Factors: []Expr{left, &Power{Base: right, Exp: numInt(-1)}}}
		default:
			return left, nil
		}
	}
}

// parseUnary := '-' unary | power
func (p *parser) parseUnary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Product{Factors: []Expr{numInt(-1), inner}}, nil
	}
	return p.parsePower()
}

// parsePower := atom ('^' unary)?   — right-associative, so 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	// parseUnary descends back through parsePower, so chains like 2^3^2
	// nest to the right.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Power{Base: base, Exp: exp}, nil
}

// parseAtom := number | identifier ['(' args ')'] | '(' sum ')'
func (p *parser) parseAtom() (Expr, error) {
	r := p.peek()
	switch {
	case r == 0:
		return nil, p.errf("unexpected end of expression")
	case r == '(':
		p.pos++
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case unicode.IsDigit(r) || r == '.':
		return p.parseNumber()
	case unicode.IsLetter(r):
		return p.parseIdentifier()
	default:
		return nil, p.errf("unexpected %q", r)
	}
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	sawDot := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' {
			if sawDot {
				return nil, p.errf("number has two decimal points")
			}
			sawDot = true
			p.pos++
			continue
		}
		if !unicode.IsDigit(c) {
			break
		}
		p.pos++
	}
	lit := string(p.src[start:p.pos])
	if lit == "." {
		return nil, p.errf("stray decimal point")
	}
	// Implicit multiplication is not supported: "2x" is a parse error the
	// caller can report, not a product.
	if p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
		return nil, p.errf("unexpected letter after number %q (write 2*x, not 2x)", lit)
	}
	val, ok := ratFromLiteral(lit)
	if !ok {
		return nil, p.errf("malformed number %q", lit)
	}
	return num(val), nil
}

// ratFromLiteral converts a decimal literal to an exact rational: "0.25"
// becomes 1/4, never a float.
func ratFromLiteral(lit string) (*big.Rat, bool) {
	if dot := strings.IndexByte(lit, '.'); dot >= 0 {
		digits := lit[:dot] + lit[dot+1:]
		if digits == "" {
			return nil, false
		}
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return nil, false
		}
		den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(lit)-dot-1)), nil)
		return new(big.Rat).SetFrac(n, den), true
	}
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, false
	}
	return r, true
}

func (p *parser) parseIdentifier() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	name := string(p.src[start:p.pos])

	if p.peek() != '(' {
		return variable(name), nil
	}

	// Function call.
	arity, known := knownFunctions[name]
	if !known {
		return nil, &ParseError{Pos: start, Message: fmt.Sprintf("unknown function %q (known: %s)",
			name, strings.Join(KnownFunctionNames(), ", "))}
	}
	p.pos++ // consume '('
	var args []Expr
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != ')' {
		return nil, p.errf("missing closing parenthesis in call to %s", name)
	}
	p.pos++
	if arity >= 0 && len(args) != arity {
		return nil, &ParseError{Pos: start, Message: fmt.Sprintf("%s takes %d argument(s), got %d", name, arity, len(args))}
	}
	if arity < 0 && (len(args) < 1 || len(args) > 2) {
		return nil, &ParseError{Pos: start, Message: fmt.Sprintf("%s takes 1 or 2 arguments, got %d", name, len(args))}
	}
	return &Call{Name: name, Args: args}, nil
}
