package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Environment is the set of variables an environment marker is evaluated
// against, e.g. python_version or sys_platform.
type Environment map[string]string

// markerVariables is the closed set of variable names a marker may reference.
// Anything else is rejected at parse time.
var markerVariables = map[string]struct{}{
	"python_version":                 {},
	"python_full_version":            {},
	"os_name":                        {},
	"sys_platform":                   {},
	"platform_release":               {},
	"platform_system":                {},
	"platform_version":               {},
	"platform_machine":               {},
	"platform_python_implementation": {},
	"implementation_name":            {},
	"implementation_version":         {},
	"extra":                          {},
}

// IsMarkerVariable reports whether name is a recognized marker variable.
func IsMarkerVariable(name string) bool {
	_, ok := markerVariables[name]
	return ok
}

// Marker is a parsed environment marker expression.
type Marker struct {
	expr markerNode
	raw  string
}

// ParseMarker parses an environment marker expression such as
// `platform_python_implementation != 'PyPy' and python_version >= '3.8'`.
func ParseMarker(s string) (*Marker, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, zerr.Wrap(ErrInvalidMarker, "empty marker expression")
	}

	p := &markerParser{input: raw}
	expr, err := p.parseOr()
	if err != nil {
		return nil, zerr.With(err, "marker", raw)
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		err := zerr.Wrap(ErrInvalidMarker, "trailing input after expression")
		err = zerr.With(err, "marker", raw)
		return nil, zerr.With(err, "offset", p.pos)
	}

	return &Marker{expr: expr, raw: raw}, nil
}

// Eval evaluates the marker against the given environment.
// Missing variables evaluate as empty strings.
func (m *Marker) Eval(env Environment) bool {
	return m.expr.eval(env)
}

// String returns the marker exactly as authored.
func (m *Marker) String() string {
	return m.raw
}

type markerNode interface {
	eval(env Environment) bool
}

type markerOr struct{ left, right markerNode }

func (n markerOr) eval(env Environment) bool { return n.left.eval(env) || n.right.eval(env) }

type markerAnd struct{ left, right markerNode }

func (n markerAnd) eval(env Environment) bool { return n.left.eval(env) && n.right.eval(env) }

// markerOperand is either a variable reference or a quoted literal.
type markerOperand struct {
	value    string
	variable bool
}

func (o markerOperand) resolve(env Environment) string {
	if o.variable {
		return env[o.value]
	}
	return o.value
}

type markerCompare struct {
	left  markerOperand
	op    string
	right markerOperand
}

func (n markerCompare) eval(env Environment) bool {
	lhs := n.left.resolve(env)
	rhs := n.right.resolve(env)

	switch n.op {
	case "in":
		return strings.Contains(rhs, lhs)
	case "not in":
		return !strings.Contains(rhs, lhs)
	}

	// Compare as versions when both sides parse as one; pip falls back to
	// plain string comparison otherwise.
	lv, lerr := ParseVersion(lhs)
	rv, rerr := ParseVersion(rhs)
	if lerr == nil && rerr == nil {
		return evalCmp(lv.Compare(rv), n.op)
	}
	return evalCmp(strings.Compare(lhs, rhs), n.op)
}

func evalCmp(c int, op string) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	case "~=":
		// Rare in markers; treated as >= since the series bound needs a
		// structured version, which string operands may not be.
		return c >= 0
	default:
		return false
	}
}

// markerParser is a recursive-descent parser over the marker grammar:
//
//	or    := and ("or" and)*
//	and   := atom ("and" atom)*
//	atom  := "(" or ")" | operand op operand
type markerParser struct {
	input string
	pos   int
}

func (p *markerParser) parseOr() (markerNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.consumeWord("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = markerOr{left: left, right: right}
	}
	return left, nil
}

func (p *markerParser) parseAnd() (markerNode, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.consumeWord("and") {
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = markerAnd{left: left, right: right}
	}
	return left, nil
}

func (p *markerParser) parseAtom() (markerNode, error) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, zerr.Wrap(ErrInvalidMarker, "missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return markerCompare{left: left, op: op, right: right}, nil
}

func (p *markerParser) parseOperand() (markerOperand, error) {
	p.skipSpace()
	c := p.peek()

	if c == '\'' || c == '"' {
		quote := c
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return markerOperand{}, zerr.Wrap(ErrInvalidMarker, "unterminated string literal")
		}
		value := p.input[start:p.pos]
		p.pos++
		return markerOperand{value: value}, nil
	}

	word := p.readWord()
	if word == "" {
		return markerOperand{}, zerr.Wrap(ErrInvalidMarker, "expected operand")
	}
	if !IsMarkerVariable(word) {
		return markerOperand{}, zerr.With(
			zerr.Wrap(ErrUnknownMarkerVariable, "unrecognized marker variable"),
			"variable", word)
	}
	return markerOperand{value: word, variable: true}, nil
}

func (p *markerParser) parseOp() (string, error) {
	p.skipSpace()

	for _, op := range []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"} {
		if strings.HasPrefix(p.input[p.pos:], op) {
			p.pos += len(op)
			if op == "===" {
				op = "=="
			}
			return op, nil
		}
	}

	if p.consumeWord("not") {
		if !p.consumeWord("in") {
			return "", zerr.Wrap(ErrInvalidMarker, "expected 'in' after 'not'")
		}
		return "not in", nil
	}
	if p.consumeWord("in") {
		return "in", nil
	}

	return "", zerr.Wrap(ErrInvalidMarker, "expected comparison operator")
}

func (p *markerParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *markerParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *markerParser) readWord() string {
	start := p.pos
	for p.pos < len(p.input) && isWordByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// consumeWord consumes the given keyword if it appears next as a whole word.
func (p *markerParser) consumeWord(word string) bool {
	p.skipSpace()
	end := p.pos + len(word)
	if end > len(p.input) || p.input[p.pos:end] != word {
		return false
	}
	if end < len(p.input) && isWordByte(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
