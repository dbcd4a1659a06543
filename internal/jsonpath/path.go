// Package jsonpath implements the small path language used by data fields:
// dotted keys, [*] array spread, [n] index, * object wildcard, and optional
// $ or $.. roots. Every path is normalised to a recursive-descent root.
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Root is the normalised prefix of every sanitised path.
const Root = "$.."

// ErrInvalidFormat reports a path that is empty, root-only or unparseable.
var ErrInvalidFormat = errors.New("invalid path format")

type opKind int

const (
	opSpread opKind = iota
	opIndex
)

type op struct {
	kind  opKind
	index int
}

// segment is one dotted component, e.g. "weeks[*]".
type segment struct {
	key string // "" means the node itself, "*" means every child
	ops []op
}

// Path is a parsed, normalised path expression.
type Path struct {
	segments []segment
}

// Sanitize normalises raw to begin with "$..".
func Sanitize(raw string) (string, error) {
	p, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// Parse parses raw, accepting "$..a.b", "$.a.b", "a.b" and "$[*].a" forms.
func Parse(raw string) (Path, error) {
	rest := strings.TrimSpace(raw)
	if rest == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidFormat)
	}
	switch {
	case strings.HasPrefix(rest, "$.."):
		rest = rest[3:]
	case strings.HasPrefix(rest, "$."):
		rest = rest[2:]
	case strings.HasPrefix(rest, "$"):
		rest = rest[1:]
	}
	if rest == "" {
		return Path{}, fmt.Errorf("%w: %q has no segments", ErrInvalidFormat, raw)
	}

	tokens := strings.Split(rest, ".")
	segs := make([]segment, 0, len(tokens))
	for i, tok := range tokens {
		seg, err := parseSegment(tok, i == 0)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, raw, err)
		}
		segs = append(segs, seg)
	}
	return Path{segments: segs}, nil
}

func parseSegment(tok string, first bool) (segment, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return segment{}, fmt.Errorf("empty segment")
	}
	open := strings.IndexByte(tok, '[')
	key := tok
	brackets := ""
	if open >= 0 {
		key, brackets = tok[:open], tok[open:]
	}
	if strings.ContainsAny(key, "]$") {
		return segment{}, fmt.Errorf("unexpected character in %q", tok)
	}
	if key == "" && (!first || brackets == "") {
		return segment{}, fmt.Errorf("segment %q has no key", tok)
	}

	seg := segment{key: key}
	for brackets != "" {
		end := strings.IndexByte(brackets, ']')
		if brackets[0] != '[' || end < 0 {
			return segment{}, fmt.Errorf("unbalanced brackets in %q", tok)
		}
		inner := strings.TrimSpace(brackets[1:end])
		switch {
		case inner == "*":
			seg.ops = append(seg.ops, op{kind: opSpread})
		default:
			n, err := strconv.Atoi(inner)
			if err != nil || n < 0 {
				return segment{}, fmt.Errorf("unsupported index %q in %q", inner, tok)
			}
			seg.ops = append(seg.ops, op{kind: opIndex, index: n})
		}
		brackets = brackets[end+1:]
	}
	return seg, nil
}

// String renders the canonical "$.."-rooted form.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(Root)
	for i, s := range p.segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.key)
		for _, o := range s.ops {
			if o.kind == opSpread {
				b.WriteString("[*]")
			} else {
				fmt.Fprintf(&b, "[%d]", o.index)
			}
		}
	}
	return b.String()
}

// Prefix returns the path up to and including the last [*] spread, or
// false when the path has no spread. For "$..movies[*].title" the prefix is
// "$..movies[*]".
func (p Path) Prefix() (Path, bool) {
	for i := len(p.segments) - 1; i >= 0; i-- {
		ops := p.segments[i].ops
		for j := len(ops) - 1; j >= 0; j-- {
			if ops[j].kind != opSpread {
				continue
			}
			segs := make([]segment, i+1)
			copy(segs, p.segments[:i+1])
			last := segs[i]
			last.ops = append([]op(nil), ops[:j+1]...)
			segs[i] = last
			return Path{segments: segs}, true
		}
	}
	return Path{}, false
}

// Child returns p extended by one key segment.
func (p Path) Child(key string) Path {
	segs := make([]segment, len(p.segments), len(p.segments)+1)
	copy(segs, p.segments)
	return Path{segments: append(segs, segment{key: key})}
}

// LastKey returns the key of the final segment, or "" when it is a bare spread.
func (p Path) LastKey() string {
	if len(p.segments) == 0 {
		return ""
	}
	k := p.segments[len(p.segments)-1].key
	if k == "*" {
		return ""
	}
	return k
}
