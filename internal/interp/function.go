package interp

import (
	"fmt"

	"github.com/insertnamehere77/loxo/pkg/ast"
)

// Function is a user-defined Lox function or method: the Fun AST node it
// was declared from, the environment captured at declaration time (its
// closure), and whether it is a class initializer (spec.md §3).
type Function struct {
	decl          *ast.FunStmt
	closure       *Environment
	isInitializer bool
}

func (*Function) Type() string { return "FUNCTION" }
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}

// Arity is the declared parameter count.
func (f *Function) Arity() int {
	return len(f.decl.Params)
}

// Call creates a new environment enclosed by the function's closure, binds
// parameters, and evaluates the body. A Return unwind supplies the result;
// falling off the end of the body yields nil, except that an initializer
// call always returns the bound instance (spec.md §4.4).
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(*returnUnwind); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// bind produces a new Function whose closure is a fresh environment
// enclosing the original closure and binding `this` to instance (spec.md
// §4.4's "method binding"). The initializer flag is preserved.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}
