package value

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// maxRangeElems bounds eager range expansion so a short literal such as
	// 1..999999999 cannot balloon memory far beyond the file that carried it.
	maxRangeElems = 1 << 16

	// maxNesting bounds sequence depth to keep recursion stack-safe.
	maxNesting = 64
)

// Parse evaluates a value literal and returns the resulting Value.
//
// The accepted grammar:
//
//	literal  = element
//	element  = operand [ ".." operand ]
//	operand  = string | number | sequence
//	string   = "'" text "'" | '"' text '"'
//	number   = [ "-" | "+" ] digits [ "." digits ]
//	sequence = "[" [ element { "," element } [ "," ] ] "]"
//
// Strings carry no escape sequences; a string simply cannot contain its own
// delimiter. Range endpoints must both be integers or both be
// single-character strings, and the range expands immediately to a Sequence
// of every intervening value, both ends inclusive. A reversed range (first
// endpoint greater than the last) expands to an empty Sequence. Inside a
// bracketed sequence a range splices its elements into the surrounding list.
//
// On malformed input Parse returns a *SyntaxError locating the failure.
func Parse(expr string) (Value, error) {
	p := &parser{src: expr}
	p.skipSpace()
	if p.eof() {
		return nil, p.errf(p.pos, "empty value")
	}
	vals, ranged, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errf(p.pos, "unexpected character after value")
	}
	if ranged {
		return Sequence(vals), nil
	}
	return vals[0], nil
}

type parser struct {
	src   string
	pos   int
	depth int
}

// operand is a parsed string, number, or sequence along with the literal
// details range expansion needs.
type operand struct {
	val   Value
	start int    // offset of the first byte of the literal
	lit   string // raw literal text, set for numbers
	isInt bool   // number written without a fractional part
}

// parseElement parses one operand, then expands it against a second operand
// if a ".." follows. The returned values are a single-element slice for a
// plain operand or the full expansion for a range; spliced reports which.
func (p *parser) parseElement() ([]Value, bool, error) {
	first, err := p.parseOperand()
	if err != nil {
		return nil, false, err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "..") {
		return []Value{first.val}, false, nil
	}
	p.pos += 2
	p.skipSpace()
	second, err := p.parseOperand()
	if err != nil {
		return nil, false, err
	}
	vals, err := p.expandRange(first, second)
	if err != nil {
		return nil, false, err
	}
	return vals, true, nil
}

func (p *parser) parseOperand() (operand, error) {
	if p.eof() {
		return operand{}, p.errf(p.pos, "expected a string, number, or sequence")
	}
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '[':
		return p.parseSequence()
	case c == '-' || c == '+' || isDigit(c):
		return p.parseNumber()
	default:
		return operand{}, p.errf(p.pos, "expected a string, number, or sequence")
	}
}

func (p *parser) parseString() (operand, error) {
	start := p.pos
	quote := p.src[p.pos]
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], quote)
	if end < 0 {
		return operand{}, p.errf(start, "unterminated string")
	}
	content := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return operand{val: String(content), start: start}, nil
}

func (p *parser) parseNumber() (operand, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	digits := 0
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
		digits++
	}
	if digits == 0 {
		return operand{}, p.errf(start, "malformed number")
	}
	isInt := true
	// A '.' continues the number only when a digit follows, so the first
	// dot of a range operator is left in place.
	if p.pos+1 < len(p.src) && p.src[p.pos] == '.' && isDigit(p.src[p.pos+1]) {
		isInt = false
		p.pos++
		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
	}
	lit := p.src[start:p.pos]
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return operand{}, p.errf(start, "malformed number %q", lit)
	}
	return operand{val: Number(f), start: start, lit: lit, isInt: isInt}, nil
}

func (p *parser) parseSequence() (operand, error) {
	start := p.pos
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return operand{}, p.errf(start, "sequence nested more than %d levels deep", maxNesting)
	}
	p.pos++ // consume '['
	p.skipSpace()
	seq := Sequence{}
	if !p.eof() && p.peek() == ']' {
		p.pos++
		return operand{val: seq, start: start}, nil
	}
	for {
		if p.eof() {
			return operand{}, p.errf(p.pos, "unterminated sequence")
		}
		elems, _, err := p.parseElement()
		if err != nil {
			return operand{}, err
		}
		seq = append(seq, elems...)
		p.skipSpace()
		switch {
		case p.eof():
			return operand{}, p.errf(p.pos, "unterminated sequence")
		case p.peek() == ',':
			p.pos++
			p.skipSpace()
			if !p.eof() && p.peek() == ']' {
				p.pos++
				return operand{val: seq, start: start}, nil
			}
		case p.peek() == ']':
			p.pos++
			return operand{val: seq, start: start}, nil
		default:
			return operand{}, p.errf(p.pos, "expected ',' or ']' in sequence")
		}
	}
}

// expandRange produces the inclusive expansion of first..second.
func (p *parser) expandRange(first, second operand) ([]Value, error) {
	af, aOK := first.val.(String)
	bf, bOK := second.val.(String)
	if aOK && bOK {
		if utf8.RuneCountInString(string(af)) != 1 || utf8.RuneCountInString(string(bf)) != 1 {
			return nil, p.errf(second.start, "string range endpoints must be single characters")
		}
		lo, _ := utf8.DecodeRuneInString(string(af))
		hi, _ := utf8.DecodeRuneInString(string(bf))
		return expandRunes(lo, hi, p, second.start)
	}
	if first.isInt && second.isInt {
		lo, err1 := strconv.ParseInt(first.lit, 10, 64)
		hi, err2 := strconv.ParseInt(second.lit, 10, 64)
		if err1 != nil || err2 != nil {
			return nil, p.errf(second.start, "range endpoint out of integer range")
		}
		return expandInts(lo, hi, p, second.start)
	}
	return nil, p.errf(second.start, "range endpoints must both be integers or both be single characters")
}

func expandInts(lo, hi int64, p *parser, at int) ([]Value, error) {
	if lo > hi {
		return []Value{}, nil
	}
	// hi-lo can overflow for extreme endpoints; a negative difference only
	// ever means the true span is far past the limit.
	if d := hi - lo; d < 0 || d >= maxRangeElems {
		return nil, p.errf(at, "range spans more than %d values", maxRangeElems)
	}
	n := hi - lo + 1
	out := make([]Value, 0, n)
	for i := lo; i <= hi; i++ {
		out = append(out, Number(float64(i)))
	}
	return out, nil
}

func expandRunes(lo, hi rune, p *parser, at int) ([]Value, error) {
	if lo > hi {
		return []Value{}, nil
	}
	n := int64(hi) - int64(lo) + 1
	if n > maxRangeElems {
		return nil, p.errf(at, "range expands to %d values, limit is %d", n, maxRangeElems)
	}
	out := make([]Value, 0, n)
	for r := lo; r <= hi; r++ {
		out = append(out, String(string(r)))
	}
	return out, nil
}

func (p *parser) skipSpace() {
	for !p.eof() {
		if c := p.peek(); c != ' ' && c != '\t' {
			return
		}
		p.pos++
	}
}

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) errf(offset int, format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
