// Package filter provides output text filters for the repl runner. Filters
// are plain string -> string functions applied in registration order before
// text reaches the output stream.
package filter

import (
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

// The empty pair <> is a valid tag, the reset shortcut.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Colorize rewrites markup tags like <red>, <bg-blue>, <bold> and the reset
// shortcut <> into ANSI escape sequences. Unknown tags are removed. When
// disabled, all tags are stripped and no escape codes are emitted.
//
// Unless the text already ends with a reset tag, a trailing reset is
// appended so colors never leak into the next line.
type Colorize struct {
	tags    map[string]string
	enabled bool
}

// NewColorize builds the filter with the full tag table.
func NewColorize() *Colorize {
	c := &Colorize{
		tags:    make(map[string]string),
		enabled: true,
	}

	names := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
	shortcuts := []string{"k", "r", "g", "y", "b", "m", "c", "w"}

	for i, name := range names {
		fg := seq(termenv.ANSIColor(i).Sequence(false))
		bg := seq(termenv.ANSIColor(i).Sequence(true))
		brightFg := seq(termenv.ANSIColor(i + 8).Sequence(false))
		brightBg := seq(termenv.ANSIColor(i + 8).Sequence(true))

		c.tags["<"+name+">"] = fg
		c.tags["<"+shortcuts[i]+">"] = fg
		c.tags["<bright-"+name+">"] = brightFg
		c.tags["<bg-"+name+">"] = bg
		c.tags["<bg-bright-"+name+">"] = brightBg
	}

	c.tags["<bold>"] = seq(termenv.BoldSeq)
	c.tags["<underline>"] = seq(termenv.UnderlineSeq)
	c.tags["<blink>"] = seq(termenv.BlinkSeq)
	c.tags["<reset>"] = seq(termenv.ResetSeq)
	c.tags["<>"] = seq(termenv.ResetSeq)

	return c
}

func seq(code string) string {
	return termenv.CSI + code + "m"
}

// SetEnabled toggles color emission. A disabled filter still strips tags.
func (c *Colorize) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether escape codes are emitted.
func (c *Colorize) Enabled() bool {
	return c.enabled
}

// Apply rewrites all tags in input. Suitable as a runner output filter.
func (c *Colorize) Apply(input string) string {
	if !c.enabled {
		return tagPattern.ReplaceAllString(input, "")
	}

	out := tagPattern.ReplaceAllStringFunc(input, func(tag string) string {
		return c.tags[tag]
	})

	if !strings.HasSuffix(input, "<reset>") && !strings.HasSuffix(input, "<>") {
		out += seq(termenv.ResetSeq)
	}
	return out
}
