// Package structtext implements the textual fallback form for struct
// values: `(Member1=Value1,Member2="quoted",...)`.
//
// Parsing is a hand-rolled scanner rather than a grammar because member
// values may themselves nest parenthesized structs or carry escaped quotes.
// The scanner extracts one member span at a time; recursive decoding of the
// spans is the property codec's job.
package structtext

import "strings"

// Pair is one rendered member of a struct text form.
type Pair struct {
	Name  string
	Value string
	// Quote marks values that must be rendered inside double quotes, with
	// embedded quotes and backslashes escaped.
	Quote bool
}

// Render produces the canonical textual form of a struct value.
func Render(pairs []Pair) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		if p.Quote {
			sb.WriteString(quote(p.Value))
		} else {
			sb.WriteString(p.Value)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// MemberSpan locates the value span for the named member inside a struct
// text form. The search for `name=` is case-insensitive. A quoted span ends
// at its matching unescaped closing quote and is returned unescaped; an
// unquoted span ends at the first comma at paren depth zero, or at end of
// string. Unmatched trailing text is ignored.
func MemberSpan(text, name string) (string, bool) {
	lower := strings.ToLower(text)
	needle := strings.ToLower(name) + "="
	start := strings.Index(lower, needle)
	if start < 0 {
		return "", false
	}
	pos := start + len(needle)
	if pos >= len(text) {
		return "", true
	}

	if text[pos] == '"' {
		return quotedSpan(text[pos+1:])
	}
	return bareSpan(text[pos:]), true
}

// quotedSpan consumes up to the first unescaped double quote, resolving
// backslash escapes along the way.
func quotedSpan(rest string) (string, bool) {
	var sb strings.Builder
	escaped := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if escaped {
			sb.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return sb.String(), true
		default:
			sb.WriteByte(c)
		}
	}
	// Unterminated quote: take everything. Downstream validation re-checks
	// the final decoded state, so accepted inexactness here is safe.
	return sb.String(), true
}

// bareSpan consumes up to the first top-level comma, tracking paren depth so
// nested struct forms stay intact. A closing paren at depth zero also ends
// the span, since the member itself may be the last inside an enclosing form.
func bareSpan(rest string) string {
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return rest[:i]
			}
			depth--
		case ',':
			if depth == 0 {
				return rest[:i]
			}
		}
	}
	return rest
}
