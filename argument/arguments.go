package argument

import (
	"fmt"
	"strings"
)

// Arguments wraps a tokenized command line. It carries the original source
// string, the immutable token sequence, and a mutable cursor for positional
// iteration. Keyed lookups are cursor-independent.
//
// The failure policy is asymmetric by design: positional Next/SetIndex raise
// hard errors, keyed Get with a default degrades to the default and records
// the conversion failure in the problem slot.
//
// An Arguments value is not safe for concurrent use; each dispatch builds
// its own fresh instance.
type Arguments struct {
	source   string
	elements []string
	index    int
	problem  error
	lastKey  string
}

// Parse tokenizes source on whitespace.
func Parse(source string) *Arguments {
	return &Arguments{
		source:   source,
		elements: Split(source, Whitespace),
	}
}

// ParseDelim tokenizes source on a custom single-rune delimiter.
func ParseDelim(source string, delimiter rune) *Arguments {
	return &Arguments{
		source:   source,
		elements: Split(source, delimiter),
	}
}

// FromSlice builds a resolver directly from pre-split tokens. A quoted
// source string is reconstructed for reference.
func FromSlice(args []string) *Arguments {
	return &Arguments{
		source:   collectSource(args),
		elements: args,
	}
}

func collectSource(args []string) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(a, `"`, `\"`))
		sb.WriteByte('"')
	}
	return sb.String()
}

// Source returns the original command line.
func (a *Arguments) Source() string {
	return a.source
}

// Elements returns the full token sequence, independent of the cursor.
// Callers must not mutate the returned slice.
func (a *Arguments) Elements() []string {
	return a.elements
}

// Size returns the number of tokens.
func (a *Arguments) Size() int {
	return len(a.elements)
}

// IsEmpty reports whether there are no tokens at all.
func (a *Arguments) IsEmpty() bool {
	return len(a.elements) == 0
}

// HasNext reports whether the cursor has tokens left.
func (a *Arguments) HasNext() bool {
	return a.index < len(a.elements)
}

// Next returns the token at the cursor and advances it. Calling Next with
// the cursor at the end is a hard failure.
func (a *Arguments) Next() (string, error) {
	return Next[string](a)
}

// Skip advances the cursor past one token.
func (a *Arguments) Skip() error {
	_, err := a.Next()
	return err
}

// SkipN advances the cursor past n tokens.
func (a *Arguments) SkipN(n int) error {
	for i := 0; i < n; i++ {
		if err := a.Skip(); err != nil {
			return err
		}
	}
	return nil
}

// Index returns the current cursor position.
func (a *Arguments) Index() int {
	return a.index
}

// SetIndex moves the cursor. Positions at or past the end are rejected.
func (a *Arguments) SetIndex(index int) error {
	if index < 0 || index >= len(a.elements) {
		return &ParseError{
			Message: fmt.Sprintf("index out of bounds, index: %d, elements: %d", index, len(a.elements)),
		}
	}
	a.index = index
	return nil
}

// ResetIndex moves the cursor back to the first token.
func (a *Arguments) ResetIndex() {
	a.index = 0
}

// Contains scans all tokens for any of the given keys. A token matches a key
// when it equals the key exactly or starts with "key=". The first matching
// key is recorded for later no-key Get calls.
func (a *Arguments) Contains(keys ...string) bool {
	for _, e := range a.elements {
		for _, k := range keys {
			if e == k || strings.HasPrefix(e, k+"=") {
				a.lastKey = k
				return true
			}
		}
	}
	return false
}

// HasProblem reports whether a soft lookup has swallowed a conversion
// failure since the resolver was built.
func (a *Arguments) HasProblem() bool {
	return a.problem != nil
}

// Problem returns the last swallowed conversion failure, or nil.
func (a *Arguments) Problem() error {
	return a.problem
}

// Lookup finds the raw string value for any of the given keys: either the
// token following an exact key match, or the substring after "key=". Keys
// are tried in order; the first match anywhere in the token sequence wins.
// The second return value reports whether anything matched.
func (a *Arguments) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		for i, e := range a.elements {
			if e == key {
				if i+1 < len(a.elements) {
					return a.elements[i+1], true
				}
				continue
			}
			if strings.HasPrefix(e, key+"=") {
				return e[len(key)+1:], true
			}
		}
	}
	return "", false
}

// Next returns the token at the cursor converted to T and advances the
// cursor. Both an exhausted cursor and a failed conversion are hard errors.
func Next[T Scalar](a *Arguments) (T, error) {
	var zero T
	if a.index >= len(a.elements) {
		return zero, &ParseError{
			Message: fmt.Sprintf("next: index out of bounds, index: %d, elements: %d", a.index, len(a.elements)),
		}
	}
	v, err := Convert(a.elements[a.index], kindOf[T]())
	if err != nil {
		return zero, err
	}
	a.index++
	return v.(T), nil
}

// NextOr is Next with a soft conversion policy: the cursor still has to be
// in range, but a failed conversion is stashed in the problem slot and def
// is returned instead.
func NextOr[T Scalar](a *Arguments, def T) (T, error) {
	if a.index >= len(a.elements) {
		var zero T
		return zero, &ParseError{
			Message: fmt.Sprintf("next: index out of bounds, index: %d, elements: %d", a.index, len(a.elements)),
		}
	}
	v, err := Convert(a.elements[a.index], kindOf[T]())
	a.index++
	if err != nil {
		a.problem = err
		return def, nil
	}
	return v.(T), nil
}

// At returns the token at an absolute position converted to T, or def when
// the position is out of range or the conversion fails. A conversion failure
// is stashed in the problem slot. The cursor is not touched.
func At[T Scalar](a *Arguments, index int, def T) T {
	if index < 0 || index >= len(a.elements) {
		return def
	}
	v, err := Convert(a.elements[index], kindOf[T]())
	if err != nil {
		a.problem = err
		return def
	}
	return v.(T)
}

// Get looks up a keyed value and converts it to T. Both "--key value" and
// "--key=value" forms match; keys are tried in order and the first match
// anywhere in the token sequence wins. A missing key or a failed conversion
// returns def; the failure, if any, lands in the problem slot.
//
// With no keys, Get operates on whichever key the last Contains call
// matched.
func Get[T Scalar](a *Arguments, def T, keys ...string) T {
	if len(keys) == 0 {
		if a.lastKey == "" {
			return def
		}
		keys = []string{a.lastKey}
	}
	raw, ok := a.Lookup(keys...)
	if !ok {
		return def
	}
	v, err := Convert(raw, kindOf[T]())
	if err != nil {
		a.problem = err
		return def
	}
	return v.(T)
}
