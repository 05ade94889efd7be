package interp

import (
	"fmt"
	"strconv"
)

// Value is the runtime representation of a Lox value: a tagged union of
// nil, boolean, number, string, callable, and instance (spec.md §3),
// realized as a small interface with one concrete type per variant —
// mirroring the teacher's internal/interp/value.go pattern.
type Value interface {
	Type() string
	String() string
}

// Nil is the single Lox nil value.
type Nil struct{}

func (Nil) Type() string   { return "NIL" }
func (Nil) String() string { return "nil" }

// Bool wraps a Lox boolean.
type Bool bool

func (Bool) Type() string { return "BOOLEAN" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number wraps a Lox number, always an IEEE-754 double (spec.md §3).
type Number float64

func (Number) Type() string { return "NUMBER" }

// String formats integral-valued doubles without a fractional part and
// non-integral values with a minimal fractional part (spec.md §9).
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String wraps a Lox string.
type String string

func (String) Type() string     { return "STRING" }
func (s String) String() string { return string(s) }

// Callable is any value that can appear as the callee of a Call
// expression: a native function, a user function, or a class (whose call
// constructs an instance).
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// NativeFunction wraps a Go function as a callable Lox builtin (spec.md §6).
type NativeFunction struct {
	NameStr string
	Ar      int
	Fn      func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string { return "NATIVE_FUNCTION" }
func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.NameStr)
}
func (n *NativeFunction) Arity() int { return n.Ar }
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// Truthy implements the truthiness coercion from spec.md §4.4: only nil
// and false are falsey, everything else — including 0, "", instances —
// is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// Equal implements Lox `==`: nil == nil; same-kind primitives by natural
// equality; instances and callables by identity; bound methods by identity
// of the underlying method and instance; any cross-kind comparison is false
// (spec.md §4.4).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		// Each Get of a method binds a fresh *Function; two of them are equal
		// when they wrap the same declaration and closure and hold the same
		// `this` (only bind's environment defines "this").
		if av.decl != bv.decl || av.closure.enclosing != bv.closure.enclosing {
			return false
		}
		at, aBound := av.closure.vars["this"]
		bt, bBound := bv.closure.vars["this"]
		return aBound && bBound && at == bt
	default:
		// Other callables (native functions, classes) compare by identity of
		// the underlying Go pointer.
		return a == b
	}
}
