package argument

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Whitespace(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "plain words",
			source: "one two three",
			want:   []string{"one", "two", "three"},
		},
		{
			name:   "double quoted span",
			source: `"hello world" test`,
			want:   []string{"hello world", "test"},
		},
		{
			name:   "single quoted span",
			source: "'a b' c",
			want:   []string{"a b", "c"},
		},
		{
			name:   "escaped space",
			source: `line\ break end`,
			want:   []string{"line break", "end"},
		},
		{
			name:   "escaped quote inside quotes",
			source: `"a \"quote\" inside" b`,
			want:   []string{`a "quote" inside`, "b"},
		},
		{
			name:   "consecutive delimiters collapse",
			source: "a   \t  b",
			want:   []string{"a", "b"},
		},
		{
			name:   "mixed whitespace class",
			source: "a\tb\nc\rd",
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "empty input",
			source: "",
			want:   nil,
		},
		{
			name:   "only delimiters",
			source: "  \t\n ",
			want:   nil,
		},
		{
			name:   "quote opening mid-token joins",
			source: `ab"c d"e`,
			want:   []string{"abc de"},
		},
		{
			name:   "differing quote inside span is literal",
			source: `"it's fine" x`,
			want:   []string{"it's fine", "x"},
		},
		{
			name:   "unterminated quote takes the tail",
			source: `a "b c`,
			want:   []string{"a", "b c"},
		},
		{
			name:   "empty quoted pair produces nothing",
			source: `"" x`,
			want:   []string{"x"},
		},
		{
			name:   "trailing backslash is dropped",
			source: `a b\`,
			want:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.source, Whitespace))
		})
	}
}

func TestSplit_CustomDelimiter(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("a,b,c", ','))
	// Spaces are ordinary characters when a custom delimiter is set.
	assert.Equal(t, []string{"a b", "c d"}, Split("a b,c d", ','))
	// Quoting still protects the delimiter.
	assert.Equal(t, []string{"a,b", "c"}, Split(`"a,b",c`, ','))
}

func TestSplitString(t *testing.T) {
	tokens, err := SplitString("a;b", ";")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tokens)

	_, err = SplitString("a;b", ";;")
	require.Error(t, err)
	_, err = SplitString("a;b", "")
	require.Error(t, err)
}

// Tokens without special characters survive a join/re-split round trip.
func TestSplit_RoundTrip(t *testing.T) {
	tokens := []string{"alpha", "beta-2", "gamma_3"}
	joined := strings.Join(tokens, " ")
	assert.Equal(t, tokens, Split(joined, Whitespace))
}
