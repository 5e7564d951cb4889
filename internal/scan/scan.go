// Package scan classifies raw configuration lines.
//
// Classification is purely lexical: one line in, one classification out.
// Tracking the current block and deciding whether a key-value line is
// legal where it appears is the caller's job.
package scan

import (
	"regexp"
	"strings"
)

// SectionType is the reserved block type applied to headers written
// without an explicit type.
const SectionType = "section"

// Kind is the classification of a single line.
type Kind uint8

const (
	// KindSkip is a blank line or a comment. It carries no content.
	KindSkip Kind = iota

	// KindBlockHeader is a block header, [type: name] or [name].
	// Type and Name carry the trimmed components; a header without an
	// explicit type gets Type set to SectionType.
	KindBlockHeader

	// KindKeyValue is a key-value line. Key carries the key and Expr the
	// untouched value expression.
	KindKeyValue

	// KindInvalid is a line matching none of the recognized shapes.
	KindInvalid
)

// String returns the classification name.
func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindBlockHeader:
		return "block header"
	case KindKeyValue:
		return "key-value"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Line is one classified line.
type Line struct {
	Kind Kind
	Type string
	Name string
	Key  string
	Expr string
}

var (
	namedHeaderRE   = regexp.MustCompile(`^\[\s*(.+?)\s*:\s*(.+?)\s*\]$`)
	unnamedHeaderRE = regexp.MustCompile(`^\[\s*(.+?)\s*\]$`)
	keyValueRE      = regexp.MustCompile(`^([\w:]+)\s*[:=]+\s*(.+)$`)
)

// Classify trims a raw line and reports what it is. Surrounding whitespace
// never matters; interior whitespace is preserved in the value expression.
func Classify(raw string) Line {
	line := strings.TrimSpace(raw)

	if line == "" || strings.HasPrefix(line, "#") {
		return Line{Kind: KindSkip}
	}
	if m := namedHeaderRE.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindBlockHeader, Type: m[1], Name: m[2]}
	}
	if m := unnamedHeaderRE.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindBlockHeader, Type: SectionType, Name: m[1]}
	}
	if m := keyValueRE.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindKeyValue, Key: m[1], Expr: m[2]}
	}
	return Line{Kind: KindInvalid}
}
