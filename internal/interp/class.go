package interp

import "fmt"

// Class is a Lox class value: a name, an optional superclass, and a
// mapping from method name to user function (spec.md §3). The
// initializer, if present, is the method conventionally named "init".
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Type() string      { return "CLASS" }
func (c *Class) String() string  { return c.Name }

// Arity is the initializer's arity, or zero if the class has none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and, if the class (or an ancestor)
// defines `init`, runs it bound to the new instance (spec.md §4.4).
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// FindMethod searches the class's own method map, then recursively its
// superclass's; first hit wins (spec.md §4.4's "method lookup").
func (c *Class) FindMethod(name string) *Function {
	if fn, ok := c.Methods[name]; ok {
		return fn
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Instance is a runtime class instance: an immutable class pointer plus a
// per-instance field map, added to on first assignment (spec.md §3).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) Type() string     { return "INSTANCE" }
func (i *Instance) String() string { return i.Class.Name }

// Get looks up a field first, then a bound method; returns an error if
// neither exists (spec.md §4.4).
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.bind(i), nil
	}
	return nil, fmt.Errorf("undefined property '%s'", name)
}

// Set stores value into the instance's field map, creating the field on
// first assignment.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
