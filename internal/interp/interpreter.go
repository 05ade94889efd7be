// Package interp implements the evaluator: it walks the AST with a mutable
// current-environment pointer and produces side effects for statements and
// values for expressions (spec.md §4.4).
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/insertnamehere77/loxo/internal/diagnostics"
	"github.com/insertnamehere77/loxo/pkg/ast"
	"github.com/insertnamehere77/loxo/pkg/token"
)

// returnUnwind is the non-local control-flow signal for `return` (spec.md
// §7: "a tagged unwind signal that must be caught by exactly the call
// dispatch and never surface as a user-visible error"). It is threaded
// through the evaluator as an ordinary error value — one of the unwind
// mechanisms spec.md §9 explicitly sanctions — and is only ever consumed
// inside Function.Call.
type returnUnwind struct {
	value Value
}

func (*returnUnwind) Error() string { return "return outside of call" }

// Interpreter walks a resolved AST and evaluates it against an environment
// chain rooted at globals.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int
	out     io.Writer
	trace   io.Writer
}

// New creates an Interpreter that prints to out and pre-populates the
// globals environment with clock, assert and assertFalse (spec.md §6).
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment()
	in := &Interpreter{globals: globals, env: globals, out: out, locals: make(map[ast.Expr]int)}
	in.defineBuiltins()
	return in
}

// SetLocals installs the resolution map produced by the resolver. It must
// be called before Interpret.
func (in *Interpreter) SetLocals(locals map[ast.Expr]int) {
	in.locals = locals
}

// SetTrace makes the interpreter write one line per top-level statement it
// executes to w, for golox run's --trace flag. A nil w (the default)
// disables tracing.
func (in *Interpreter) SetTrace(w io.Writer) {
	in.trace = w
}

// Interpret executes a program's statements in order. The first runtime
// error aborts the program and is returned to the driver (spec.md §5).
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if in.trace != nil {
			fmt.Fprintf(in.trace, "trace: line %d: %T\n", stmt.Pos().Line, stmt)
		}
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- statement execution ---------------------------------------------------

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v.String())
		return nil

	case *ast.VarStmt:
		var value Value = Nil{}
		if s.Init != nil {
			v, err := in.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunStmt:
		fn := &Function{decl: s, closure: in.env, isInitializer: false}
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = Nil{}
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnUnwind{value: value}

	case *ast.ClassStmt:
		return in.executeClass(s)

	default:
		return in.runtimeError(stmt.Pos().Line, "unhandled statement type %T", stmt)
	}
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// current-environment on every exit path — normal completion, a `return`
// unwind, or a runtime error (spec.md §4.4, §5).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass evaluates a class declaration exactly as spec.md §4.4
// prescribes: evaluate the superclass expression (must be a class),
// pre-declare the name as nil, push a `super` environment if there is a
// superclass, build each method closing over the current environment, pop
// `super`, and assign (not define) the finished class value into the
// earlier-declared slot.
func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return in.runtimeError(s.Superclass.Pos().Line, "superclass must be a class")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, Nil{})

	classEnv := in.env
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:          m,
			closure:       classEnv,
			isInitializer: m.Kind == ast.FunKindInitializer,
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return in.env.Assign(s.Name.Lexeme, class)
}

// ---- expression evaluation --------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookupVariable(e.Name.Lexeme, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e]; ok {
			in.env.AssignAt(distance, e.Name.Lexeme, value)
		} else if err := in.globals.Assign(e.Name.Lexeme, value); err != nil {
			return nil, in.runtimeError(e.Pos().Line, "%s", err)
		}
		return value, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookupVariable("this", e)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		return nil, in.runtimeError(expr.Pos().Line, "unhandled expression type %T", expr)
	}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	default:
		return Nil{}
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	operand, err := in.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		n, ok := operand.(Number)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operand must be a number")
		}
		return -n, nil
	case token.BANG:
		return Bool(!Truthy(operand)), nil
	}
	return nil, in.runtimeError(e.Pos().Line, "unknown unary operator %q", e.Op.Lexeme)
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	// and/or short-circuit and return the value that decided, not a
	// coerced boolean (spec.md §4.4).
	if e.Op.Type == token.OR {
		if Truthy(left) {
			return left, nil
		}
	} else {
		if !Truthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.BANG_EQUAL:
		return Bool(!Equal(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(Equal(left, right)), nil
	case token.PLUS:
		return in.evalPlus(e, left, right)
	case token.MINUS:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return l - r, nil
	case token.STAR:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return l * r, nil
	case token.SLASH:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		// Division by zero yields the platform's IEEE result (Inf/NaN)
		// without error (spec.md §4.4).
		return l / r, nil
	case token.GREATER:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return Bool(l > r), nil
	case token.GREATER_EQUAL:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return Bool(l >= r), nil
	case token.LESS:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return Bool(l < r), nil
	case token.LESS_EQUAL:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, in.runtimeError(e.Pos().Line, "operands must be numbers")
		}
		return Bool(l <= r), nil
	}
	return nil, in.runtimeError(e.Pos().Line, "unknown binary operator %q", e.Op.Lexeme)
}

// evalPlus implements the overloaded `+`: number+number adds, string+string
// concatenates, any other combination is a runtime error (spec.md §4.4).
func (in *Interpreter) evalPlus(e *ast.Binary, left, right Value) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(String); ok {
		if r, ok := right.(String); ok {
			return l + r, nil
		}
	}
	return nil, in.runtimeError(e.Pos().Line, "operands must be two numbers or two strings")
}

func bothNumbers(left, right Value) (Number, Number, bool) {
	l, ok1 := left.(Number)
	r, ok2 := right.(Number)
	return l, r, ok1 && ok2
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, in.runtimeError(e.Paren.Line, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, in.runtimeError(e.Paren.Line, "expected %d arguments but got %d", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) (Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, in.runtimeError(e.Pos().Line, "only instances have properties")
	}
	v, err := instance.Get(e.Name.Lexeme)
	if err != nil {
		return nil, in.runtimeError(e.Pos().Line, "%s", err)
	}
	return v, nil
}

func (in *Interpreter) evalSet(e *ast.Set) (Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, in.runtimeError(e.Pos().Line, "only instances have fields")
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper retrieves the superclass at the resolved `super` distance and
// the bound instance one level inside it (spec.md §4.4: "the `this`
// environment is always one level inside the `super` environment").
func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance, ok := in.locals[e]
	if !ok {
		return nil, in.runtimeError(e.Pos().Line, "unresolved 'super'")
	}
	superclass, _ := in.env.GetAt(distance, "super").(*Class)
	instance, _ := in.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, in.runtimeError(e.Pos().Line, "undefined property '%s'", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}

func (in *Interpreter) lookupVariable(name string, use ast.Expr) (Value, error) {
	if distance, ok := in.locals[use]; ok {
		return in.env.GetAt(distance, name), nil
	}
	v, err := in.globals.Get(name)
	if err != nil {
		return nil, in.runtimeError(use.Pos().Line, "%s", err)
	}
	return v, nil
}

func (in *Interpreter) runtimeError(line int, format string, args ...any) error {
	return diagnostics.New(diagnostics.RuntimeStage, line, format, args...)
}

// defineBuiltins pre-populates globals with clock, assert and assertFalse
// (spec.md §6).
func (in *Interpreter) defineBuiltins() {
	in.globals.Define("clock", &NativeFunction{
		NameStr: "clock",
		Ar:      0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})

	in.globals.Define("assert", &NativeFunction{
		NameStr: "assert",
		Ar:      1,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			if !Truthy(args[0]) {
				return nil, in.runtimeError(0, "assertion failed")
			}
			return Nil{}, nil
		},
	})

	in.globals.Define("assertFalse", &NativeFunction{
		NameStr: "assertFalse",
		Ar:      1,
		Fn: func(in *Interpreter, args []Value) (Value, error) {
			if Truthy(args[0]) {
				return nil, in.runtimeError(0, "assertion failed: expected falsey value")
			}
			return Nil{}, nil
		},
	})
}
