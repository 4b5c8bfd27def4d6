package sheetquery

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokOp
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of query"
	}
	return fmt.Sprintf("%q", t.text)
}

// lex splits a query into tokens.
func lex(q string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(q[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string at position %d", ErrSyntax, i)
			}
			toks = append(toks, token{kind: tokString, text: q[i+1 : i+1+end], pos: i})
			i += end + 2
		case isOpByte(c):
			op, err := lexOp(q, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		default:
			start := i
			for i < len(q) && !isDelimiter(q[i]) {
				i++
			}
			word := q[start:i]
			toks = append(toks, token{kind: keywordKind(word), text: word, pos: start})
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(q)})
	return toks, nil
}

func lexOp(q string, i int) (string, error) {
	two := ""
	if i+1 < len(q) {
		two = q[i : i+2]
	}
	switch two {
	case "==", "!=", "<>", "<=", ">=":
		return two, nil
	}
	switch q[i] {
	case '=', '<', '>':
		return q[i : i+1], nil
	}
	return "", fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, q[i], i)
}

func keywordKind(word string) tokenKind {
	switch strings.ToLower(word) {
	case "and":
		return tokAnd
	case "or":
		return tokOr
	case "not":
		return tokNot
	default:
		return tokWord
	}
}

func isOpByte(c byte) bool {
	return c == '=' || c == '!' || c == '<' || c == '>'
}

func isDelimiter(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' ||
		c == '(' || c == ')' || c == '"' || c == '\'' || isOpByte(c)
}
