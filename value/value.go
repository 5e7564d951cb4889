// Package value defines the typed values a configuration file can carry and
// the constrained literal grammar that produces them.
//
// A value is one of three shapes:
//
//   - String: quoted text, single or double quotes, no escape sequences
//   - Number: integer or decimal
//   - Sequence: bracketed, comma-separated list of values, arbitrarily nested
//
// Range literals such as 1..5 or 'a'..'c' are a notation, not a fourth shape:
// they expand eagerly at parse time to the explicit Sequence of intervening
// values, inclusive of both ends. A range written inside a bracketed list
// splices its elements into that list, so ['a'..'c'] is the flat three-element
// sequence "a", "b", "c".
//
// The grammar is deliberately not a general-purpose expression language.
// [Parse] accepts exactly the shapes above and nothing else.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	// KindString is a text value.
	KindString Kind = iota

	// KindNumber is an integer or decimal value.
	KindNumber

	// KindSequence is an ordered list of values.
	KindSequence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is a typed configuration value: a String, a Number, or a Sequence.
// A nil Value represents absence (a key that has never been set).
type Value interface {
	// Kind returns the shape of the value.
	Kind() Kind

	// Text renders the value back to literal syntax.
	Text() string

	// Native converts the value to its plain Go representation:
	// string, float64, or []any.
	Native() any
}

// String is a text value.
type String string

// Kind returns KindString.
func (String) Kind() Kind { return KindString }

// Text renders the string as a quoted literal. Double quotes are preferred;
// single quotes are used when the content itself contains a double quote.
func (s String) Text() string {
	if strings.ContainsRune(string(s), '"') {
		return "'" + string(s) + "'"
	}
	return "\"" + string(s) + "\""
}

// Native returns the content as a plain string.
func (s String) Native() any { return string(s) }

// Number is a numeric value. Integers and decimals share this shape;
// equality is numeric, so 10 and 10.0 are the same Number.
type Number float64

// Kind returns KindNumber.
func (Number) Kind() Kind { return KindNumber }

// Text renders the number in minimal form: integral values without
// a decimal point.
func (n Number) Text() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Native returns the value as a float64.
func (n Number) Native() any { return float64(n) }

// Sequence is an ordered list of values. Elements may themselves be
// sequences; nesting is preserved as written.
type Sequence []Value

// Kind returns KindSequence.
func (Sequence) Kind() Kind { return KindSequence }

// Text renders the sequence as a bracketed literal.
func (q Sequence) Text() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range q {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Text())
	}
	b.WriteByte(']')
	return b.String()
}

// Native returns the sequence as a []any with every element converted.
func (q Sequence) Native() any {
	out := make([]any, len(q))
	for i, v := range q {
		out[i] = v.Native()
	}
	return out
}

// Equal reports whether two values are structurally equal: strings by
// content, numbers by numeric value, sequences element-wise. A nil Value
// (absence) is distinct from every non-nil value; two absences are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
