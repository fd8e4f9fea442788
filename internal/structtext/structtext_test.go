package structtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		pairs    []Pair
		expected string
	}{
		{
			name:     "scalars",
			pairs:    []Pair{{Name: "X", Value: "1.5"}, {Name: "Y", Value: "2"}},
			expected: "(X=1.5,Y=2)",
		},
		{
			name:     "quoted string",
			pairs:    []Pair{{Name: "Path", Value: "/Game/T_Wood", Quote: true}},
			expected: `(Path="/Game/T_Wood")`,
		},
		{
			name:     "embedded quote is escaped",
			pairs:    []Pair{{Name: "Label", Value: `say "hi"`, Quote: true}},
			expected: `(Label="say \"hi\"")`,
		},
		{
			name:     "empty struct",
			pairs:    nil,
			expected: "()",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Render(tc.pairs))
		})
	}
}

func TestMemberSpan(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		member   string
		expected string
		found    bool
	}{
		{
			name:     "bare value ends at comma",
			text:     "(X=1.5,Y=2)",
			member:   "X",
			expected: "1.5",
			found:    true,
		},
		{
			name:     "last bare value ends at closing paren",
			text:     "(X=1.5,Y=2)",
			member:   "Y",
			expected: "2",
			found:    true,
		},
		{
			name:     "case-insensitive member search",
			text:     "(x=1.5)",
			member:   "X",
			expected: "1.5",
			found:    true,
		},
		{
			name:     "nested parens stay in one span",
			text:     "(Constant=(R=1,G=0.5,B=0),Other=7)",
			member:   "Constant",
			expected: "(R=1,G=0.5,B=0)",
			found:    true,
		},
		{
			name:     "quoted span with escaped quote",
			text:     `(Label="say \"hi\"",Y=2)`,
			member:   "Label",
			expected: `say "hi"`,
			found:    true,
		},
		{
			name:     "quoted span may contain commas",
			text:     `(Path="a,b",Y=2)`,
			member:   "Path",
			expected: "a,b",
			found:    true,
		},
		{
			name:   "missing member",
			text:   "(X=1)",
			member: "Z",
			found:  false,
		},
		{
			name:     "unterminated quote takes the remainder",
			text:     `(Label="dangling`,
			member:   "Label",
			expected: "dangling",
			found:    true,
		},
		{
			name:     "trailing garbage is ignored",
			text:     "(X=3)garbage",
			member:   "X",
			expected: "3",
			found:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			span, found := MemberSpan(tc.text, tc.member)
			require.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.expected, span)
			}
		})
	}
}
