// Package bind populates tagged structs from an argument resolver.
//
// Fields are tagged with the "arg" key. A numeric tag binds a positional
// token; flag names bind a keyed option:
//
//	type serveArgs struct {
//		Target  string  `arg:"0"`
//		Port    int     `arg:"--port -p"`
//		Ratio   float64 `arg:"--ratio"`
//		Verbose bool    `arg:"--verbose -v"`
//		Config  string  `arg:"--config,required"`
//	}
//
// Boolean option fields are set by key presence alone. The "required"
// modifier makes a missing option a hard failure. Untagged fields are left
// alone.
package bind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/repline-tools/repline/argument"
)

// Error reports a binding failure: a malformed tag, an unsupported field
// type, a missing required option, or a value that does not convert.
type Error struct {
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return "bind: " + e.Message
	}
	return fmt.Sprintf("bind: field %s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

type fieldSpec struct {
	positional bool
	index      int
	names      []string
	required   bool
}

// Bind fills target, which must be a non-nil pointer to a struct, from the
// resolver's tokens. The resolver's cursor is not touched.
func Bind(args *argument.Arguments, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return &Error{Message: "target must be a non-nil pointer to a struct"}
	}

	elem := v.Elem()
	t := elem.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("arg")
		if !ok || !field.IsExported() {
			continue
		}

		spec, err := parseTag(tag)
		if err != nil {
			return &Error{Field: field.Name, Message: err.Error()}
		}

		if err := bindField(args, elem.Field(i), field, spec); err != nil {
			return err
		}
	}
	return nil
}

func parseTag(tag string) (fieldSpec, error) {
	var spec fieldSpec

	parts := strings.Split(tag, ",")
	head := strings.TrimSpace(parts[0])
	if head == "" {
		return spec, fmt.Errorf("empty arg tag")
	}

	for _, mod := range parts[1:] {
		switch strings.TrimSpace(mod) {
		case "required":
			spec.required = true
		case "":
		default:
			return spec, fmt.Errorf("unknown tag modifier %q", mod)
		}
	}

	if idx, err := strconv.Atoi(head); err == nil {
		if idx < 0 {
			return spec, fmt.Errorf("negative positional index %d", idx)
		}
		spec.positional = true
		spec.index = idx
		return spec, nil
	}

	spec.names = strings.Fields(head)
	return spec, nil
}

func bindField(args *argument.Arguments, value reflect.Value, field reflect.StructField, spec fieldSpec) error {
	if spec.positional {
		elements := args.Elements()
		if spec.index >= len(elements) {
			if spec.required {
				return &Error{Field: field.Name, Message: fmt.Sprintf("required positional argument %d not found", spec.index)}
			}
			return nil
		}
		return setScalar(value, field, elements[spec.index])
	}

	// Boolean options are presence-only.
	if value.Kind() == reflect.Bool {
		present := args.Contains(spec.names...)
		if spec.required && !present {
			return &Error{Field: field.Name, Message: fmt.Sprintf("required option %v not found", spec.names)}
		}
		value.SetBool(present)
		return nil
	}

	raw, ok := args.Lookup(spec.names...)
	if !ok {
		if spec.required {
			return &Error{Field: field.Name, Message: fmt.Sprintf("required option %v not found", spec.names)}
		}
		return nil
	}
	return setScalar(value, field, raw)
}

var kindTable = map[reflect.Kind]argument.Kind{
	reflect.String:  argument.String,
	reflect.Bool:    argument.Bool,
	reflect.Int:     argument.Int,
	reflect.Int64:   argument.Int64,
	reflect.Int16:   argument.Int16,
	reflect.Int8:    argument.Int8,
	reflect.Float32: argument.Float32,
	reflect.Float64: argument.Float64,
}

func setScalar(value reflect.Value, field reflect.StructField, raw string) error {
	kind, ok := kindTable[value.Kind()]
	if !ok {
		return &Error{Field: field.Name, Message: fmt.Sprintf("unsupported field type %s", field.Type)}
	}

	converted, err := argument.Convert(raw, kind)
	if err != nil {
		return &Error{Field: field.Name, Message: fmt.Sprintf("cannot convert %q", raw), Cause: err}
	}

	switch v := converted.(type) {
	case string:
		value.SetString(v)
	case bool:
		value.SetBool(v)
	case int:
		value.SetInt(int64(v))
	case int64:
		value.SetInt(v)
	case int16:
		value.SetInt(int64(v))
	case int8:
		value.SetInt(int64(v))
	case float32:
		value.SetFloat(float64(v))
	case float64:
		value.SetFloat(v)
	}
	return nil
}
