package manifest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Expr is a parsed type expression.
type Expr struct {
	// Name is the (possibly qualified) type name; empty for wildcards.
	Name string

	// Args are the type arguments. Nil means a raw or non-generic reference.
	Args []*Expr

	// Dims is the number of trailing [] array dimensions.
	Dims int

	// Wildcard marks "?"; Bound is its extends bound (nil when unbounded
	// or when only a lower bound was given).
	Wildcard bool
	Bound    *Expr
}

// String returns the canonical form of the expression.
func (e *Expr) String() string {
	var b strings.Builder

	e.write(&b)

	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	if e.Wildcard {
		b.WriteByte('?')

		if e.Bound != nil {
			b.WriteString(" extends ")
			e.Bound.write(b)
		}

		return
	}

	b.WriteString(e.Name)

	if len(e.Args) > 0 {
		b.WriteByte('<')

		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			a.write(b)
		}

		b.WriteByte('>')
	}

	for range e.Dims {
		b.WriteString("[]")
	}
}

// ParseExpr parses a type expression such as "Map<String, List<? extends T>>[]".
func ParseExpr(s string) (*Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty type expression")
	}

	p := &exprParser{src: s}

	e, err := p.expr()
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", s, err)
	}

	p.skipSpace()

	if p.pos < len(p.src) {
		return nil, fmt.Errorf("invalid type expression %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}

	return e, nil
}

// ParseTypeParam parses "T" or "T extends Bound".
func ParseTypeParam(s string) (name string, bound *Expr, err error) {
	p := &exprParser{src: s}

	name = p.ident()
	if name == "" {
		return "", nil, fmt.Errorf("invalid type parameter %q: missing name", s)
	}

	p.skipSpace()

	if p.pos == len(p.src) {
		return name, nil, nil
	}

	if !p.keyword("extends") {
		return "", nil, fmt.Errorf("invalid type parameter %q: expected extends", s)
	}

	bound, err = ParseExpr(p.src[p.pos:])
	if err != nil {
		return "", nil, fmt.Errorf("type parameter %s: %w", name, err)
	}

	return name, bound, nil
}

// exprParser is a recursive-descent parser over a single expression.
type exprParser struct {
	src string
	pos int
}

func (p *exprParser) expr() (*Expr, error) {
	p.skipSpace()

	if p.accept('?') {
		return p.wildcard()
	}

	name := p.qualifiedName()
	if name == "" {
		return nil, fmt.Errorf("expected type name at %d", p.pos)
	}

	e := &Expr{Name: name}

	p.skipSpace()

	if p.accept('<') {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}

			e.Args = append(e.Args, arg)

			p.skipSpace()

			if p.accept('>') {
				break
			}

			if !p.accept(',') {
				return nil, fmt.Errorf("expected ',' or '>' at %d", p.pos)
			}
		}
	}

	for {
		p.skipSpace()

		if !p.accept('[') {
			break
		}

		p.skipSpace()

		if !p.accept(']') {
			return nil, fmt.Errorf("expected ']' at %d", p.pos)
		}

		e.Dims++
	}

	return e, nil
}

func (p *exprParser) wildcard() (*Expr, error) {
	e := &Expr{Wildcard: true}

	p.skipSpace()

	switch {
	case p.keyword("extends"):
		bound, err := p.expr()
		if err != nil {
			return nil, err
		}

		e.Bound = bound
	case p.keyword("super"):
		// lower bounds say nothing about the value's shape
		if _, err := p.expr(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (p *exprParser) qualifiedName() string {
	var parts []string

	for {
		id := p.ident()
		if id == "" {
			break
		}

		parts = append(parts, id)

		if p.pos+1 < len(p.src) && p.src[p.pos] == '.' && isIdentStart(rune(p.src[p.pos+1])) {
			p.pos++
			continue
		}

		break
	}

	return strings.Join(parts, ".")
}

func (p *exprParser) ident() string {
	p.skipSpace()

	start := p.pos

	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if p.pos == start && !isIdentStart(r) {
			break
		}

		if !isIdentStart(r) && !unicode.IsDigit(r) {
			break
		}

		p.pos++
	}

	return p.src[start:p.pos]
}

// keyword consumes kw when it is followed by a non-identifier character.
func (p *exprParser) keyword(kw string) bool {
	if !strings.HasPrefix(p.src[p.pos:], kw) {
		return false
	}

	end := p.pos + len(kw)
	if end < len(p.src) && (isIdentStart(rune(p.src[end])) || unicode.IsDigit(rune(p.src[end]))) {
		return false
	}

	p.pos = end

	return true
}

func (p *exprParser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}

	return false
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
