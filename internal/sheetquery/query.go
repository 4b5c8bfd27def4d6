package sheetquery

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax indicates a query could not be parsed.
var ErrSyntax = errors.New("sheetquery: syntax error")

// Record supplies column values to a query.
type Record interface {
	// Get returns the value of a column and whether the column exists.
	Get(column string) (string, bool)
}

// MapRecord is a Record backed by a map of column name to value.
type MapRecord map[string]string

// Get implements Record.
func (m MapRecord) Get(column string) (string, bool) {
	v, ok := m[column]
	return v, ok
}

// Query is a compiled structured query.
type Query struct {
	src  string
	root node
}

// Compile parses a query. An empty or blank query matches every record.
func Compile(q string) (*Query, error) {
	if strings.TrimSpace(q) == "" {
		return &Query{src: q}, nil
	}

	toks, err := lex(q)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %s at position %d", ErrSyntax, t, t.pos)
	}

	return &Query{src: q, root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(q string) *Query {
	query, err := Compile(q)
	if err != nil {
		panic(err)
	}
	return query
}

// String returns the source text of the query.
func (q *Query) String() string {
	return q.src
}

// IsEmpty reports whether the query matches everything.
func (q *Query) IsEmpty() bool {
	return q.root == nil
}

// Columns returns the column names referenced by the query.
func (q *Query) Columns() []string {
	if q.root == nil {
		return nil
	}
	seen := make(map[string]bool)
	var cols []string
	q.root.columns(func(c string) {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	})
	return cols
}

// Match reports whether a record satisfies the query.
func (q *Query) Match(r Record) bool {
	if q.root == nil {
		return true
	}
	return q.root.eval(r)
}

type node interface {
	eval(r Record) bool
	columns(fn func(string))
}

type orNode struct{ left, right node }

func (n orNode) eval(r Record) bool      { return n.left.eval(r) || n.right.eval(r) }
func (n orNode) columns(fn func(string)) { n.left.columns(fn); n.right.columns(fn) }

type andNode struct{ left, right node }

func (n andNode) eval(r Record) bool      { return n.left.eval(r) && n.right.eval(r) }
func (n andNode) columns(fn func(string)) { n.left.columns(fn); n.right.columns(fn) }

type notNode struct{ x node }

func (n notNode) eval(r Record) bool      { return !n.x.eval(r) }
func (n notNode) columns(fn func(string)) { n.x.columns(fn) }

type cmpNode struct {
	name   string // as written, words joined
	column string // normalised
	op     string
	value  string
}

func (n cmpNode) columns(fn func(string)) { fn(n.column) }

func (n cmpNode) eval(r Record) bool {
	// Missing columns read as empty cells.
	v, _ := lookup(r, n.name)
	c := Compare(v, n.value)
	switch n.op {
	case "=", "==":
		return c == 0
	case "!=", "<>":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (node, error) {
	if p.peek().kind == tokNot {
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokLParen:
		p.next()
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected \")\" at position %d, got %s", ErrSyntax, closing.pos, closing)
		}
		return x, nil
	case tokWord:
		return p.parseComparison()
	default:
		return nil, fmt.Errorf("%w: expected column name at position %d, got %s", ErrSyntax, t.pos, t)
	}
}

// parseComparison reads `column op literal`. Consecutive words on either
// side are joined, so headers and values may contain spaces.
func (p *parser) parseComparison() (node, error) {
	var words []string
	for p.peek().kind == tokWord {
		words = append(words, p.next().text)
	}
	name := strings.Join(words, "")
	column := NormalizeColumn(name)

	opTok := p.next()
	if opTok.kind != tokOp {
		return nil, fmt.Errorf("%w: expected operator at position %d, got %s", ErrSyntax, opTok.pos, opTok)
	}

	lit := p.next()
	switch lit.kind {
	case tokString:
		return cmpNode{name: name, column: column, op: opTok.text, value: lit.text}, nil
	case tokWord:
		parts := []string{lit.text}
		for p.peek().kind == tokWord {
			parts = append(parts, p.next().text)
		}
		return cmpNode{name: name, column: column, op: opTok.text, value: strings.Join(parts, " ")}, nil
	default:
		return nil, fmt.Errorf("%w: expected value at position %d, got %s", ErrSyntax, lit.pos, lit)
	}
}
