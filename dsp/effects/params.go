package effects

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindString
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged parameter variant over float64, int, bool, and
// string. The zero Value is Float(0).
type Value struct {
	kind Kind
	f    float64
	i    int
	b    bool
	s    string
}

// Float returns a float-variant Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Int returns an int-variant Value.
func Int(v int) Value { return Value{kind: KindInt, i: v} }

// Bool returns a bool-variant Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String returns a string-variant Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsFloat returns the numeric payload as float64. Int values widen
// exactly; Bool and String values do not convert.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsInt returns the numeric payload as int. Float values truncate toward
// zero; Bool and String values do not convert.
func (v Value) AsInt() (int, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int(v.f), true
	default:
		return 0, false
	}
}

// AsBool returns the bool payload. No other variant converts.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the string payload. No other variant converts.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// String renders the payload for display.
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Def describes one parameter for introspection: the name Configure
// accepts, a short description, the default, and the inclusive range.
// Min and Max share the Default's variant and are informational; each
// effect enforces its own clamping.
type Def struct {
	Name        string
	Description string
	Default     Value
	Min         Value
	Max         Value
}

// Set carries parameter assignments to Configure. It is consumed in map
// order; Configure applies entries until the first failure.
type Set map[string]Value

func floatDef(name, description string, def, min, max float64) Def {
	return Def{
		Name:        name,
		Description: description,
		Default:     Float(def),
		Min:         Float(min),
		Max:         Float(max),
	}
}

func intDef(name, description string, def, min, max int) Def {
	return Def{
		Name:        name,
		Description: description,
		Default:     Int(def),
		Min:         Int(min),
		Max:         Int(max),
	}
}

// applySet feeds every entry of set to apply, stopping at the first
// error. Entries applied before a failure stay applied.
func applySet(set Set, apply func(name string, value Value) error) error {
	for name, value := range set {
		if err := apply(name, value); err != nil {
			return err
		}
	}

	return nil
}

func errUnknownParam(name string) error {
	return fmt.Errorf("unknown parameter %q", name)
}

// floatArg extracts the numeric payload for the named parameter.
func floatArg(name string, value Value) (float64, error) {
	f, ok := value.AsFloat()
	if !ok {
		return 0, fmt.Errorf("parameter %q must be numeric, got %s", name, value.Kind())
	}

	return f, nil
}

// intArg extracts the integer payload for the named parameter.
func intArg(name string, value Value) (int, error) {
	i, ok := value.AsInt()
	if !ok {
		return 0, fmt.Errorf("parameter %q must be numeric, got %s", name, value.Kind())
	}

	return i, nil
}
