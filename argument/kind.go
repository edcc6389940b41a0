package argument

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a scalar conversion target. The set is closed: every
// supported target has an entry in the conversion table, and asking for
// anything else is a hard failure regardless of positional or keyed context.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Int64
	Int16
	Int8
	Float32
	Float64
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Int64:
		return "int64"
	case Int16:
		return "int16"
	case Int8:
		return "int8"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var converters = map[Kind]func(string) (any, error){
	String: func(s string) (any, error) { return s, nil },
	Bool: func(s string) (any, error) {
		// Presence-style booleans: anything but "true" is false, never an error.
		return strings.EqualFold(s, "true"), nil
	},
	Int: func(s string) (any, error) {
		n, err := strconv.Atoi(s)
		return n, err
	},
	Int64: func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err
	},
	Int16: func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err
	},
	Int8: func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, 8)
		return int8(n), err
	},
	Float32: func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	},
	Float64: func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, 64)
		return f, err
	},
}

// Convert coerces a single token to the given kind.
func Convert(token string, kind Kind) (any, error) {
	convert, ok := converters[kind]
	if !ok {
		return nil, &ParseError{Message: fmt.Sprintf("type %s not supported", kind)}
	}
	v, err := convert(token)
	if err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("cannot convert %q to %s", token, kind),
			Cause:   err,
		}
	}
	return v, nil
}

// Scalar constrains the generic accessors to the kinds the engine supports.
// The constraint is exact on purpose: the conversion set stays closed and
// exhaustively checkable against the Kind table.
type Scalar interface {
	string | bool | int | int64 | int16 | int8 | float32 | float64
}

// kindOf maps a Scalar type parameter to its Kind.
func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return String
	case bool:
		return Bool
	case int:
		return Int
	case int64:
		return Int64
	case int16:
		return Int16
	case int8:
		return Int8
	case float32:
		return Float32
	default:
		return Float64
	}
}
