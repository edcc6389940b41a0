// Package argument parses free-form command-line text into typed values.
//
// A line is first split into tokens by Split (quoting and escaping aware),
// then wrapped in an Arguments resolver that offers positional cursor-based
// iteration and keyed lookup with type coercion.
package argument

import "strings"

// Whitespace is the sentinel delimiter for Split. It selects the whitespace
// delimiter class (space, tab, CR, LF, backspace) instead of a single
// delimiter rune.
const Whitespace rune = 0

const spaceChars = "\n\t\r\b "

// Split tokenizes source in a single left-to-right scan.
//
// A backslash escapes the following rune unconditionally, inside or outside
// quotes. Single and double quotes open a span in which delimiters are
// literal; the quote runes themselves are never part of a token, and a quote
// may open mid-token without flushing the pending buffer. Quoting does not
// nest: only the opening quote rune closes its span. Consecutive delimiters
// never produce empty tokens, and an unterminated quote takes the remainder
// of the input literally as the last token.
func Split(source string, delimiter rune) []string {
	var result []string
	var buffer strings.Builder

	runes := []rune(source)
	length := len(runes)
	insideQuotes := false
	var quoteChar rune

	for i := 0; i < length; {
		current := runes[i]
		i++

		if current == '\\' && i < length {
			buffer.WriteRune(runes[i])
			i++
			continue
		}

		if insideQuotes {
			if current == quoteChar {
				insideQuotes = false
			} else {
				buffer.WriteRune(current)
			}
			continue
		}

		if current == '"' || current == '\'' {
			insideQuotes = true
			quoteChar = current
			continue
		}

		var isDelimiter bool
		if delimiter == Whitespace {
			isDelimiter = strings.ContainsRune(spaceChars, current)
		} else {
			isDelimiter = current == delimiter
		}

		if isDelimiter {
			if buffer.Len() > 0 {
				result = append(result, buffer.String())
				buffer.Reset()
			}
			continue
		}

		buffer.WriteRune(current)
	}

	if buffer.Len() > 0 {
		result = append(result, buffer.String())
	}

	return result
}

// SplitString is Split with the delimiter given as a string. The string must
// contain exactly one rune.
func SplitString(source, delimiter string) ([]string, error) {
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return nil, &ParseError{Message: "delimiter string must contain one character"}
	}
	return Split(source, runes[0]), nil
}
