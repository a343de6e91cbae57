package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

// String returns the tag used in config files.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseKind converts a file tag back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrMalformed, s)
	}
}

// Value is a config scalar: Bool, Int, Float or String. The set of variants
// is closed.
type Value interface {
	Kind() Kind
	// String returns the unquoted textual form, parseable by ParseValue.
	String() string
	isValue()
}

type (
	Bool   bool
	Int    int64
	Float  float64
	String string
)

func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }

func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v String) String() string { return string(v) }

// String always includes a decimal point or exponent so the text reads back
// as a float.
func (v Float) String() string {
	f := float64(v)
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}

// ParseValue builds a Value of the given kind from its String form.
func ParseValue(kind Kind, s string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad bool %q", ErrMalformed, s)
		}
		return Bool(b), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad int %q", ErrMalformed, s)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad float %q", ErrMalformed, s)
		}
		return Float(f), nil
	case KindString:
		return String(s), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrMalformed, int(kind))
	}
}
