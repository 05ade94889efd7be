// Package resolver performs the static lexical-scope analysis pass
// described in spec.md §4.3: it binds every variable use to the number of
// enclosing environments between the use site and its defining scope, and
// validates `return`, `this` and `super`.
package resolver

import (
	"github.com/insertnamehere77/loxo/internal/diagnostics"
	"github.com/insertnamehere77/loxo/pkg/ast"
	"github.com/insertnamehere77/loxo/pkg/token"
)

// functionKind tracks what kind of callable body is currently being
// resolved, grounded on the teacher's semantic.Analyzer current-context
// fields (currentFunction/currentClass in internal/semantic/analyzer.go).
type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// scope maps a name to whether it has finished initializing: false means
// "declared but its initializer has not yet been resolved" (used to reject
// `var a = a;`), true means fully defined.
type scope map[string]bool

// Resolver walks a parsed program once, before evaluation, and produces a
// Locals map consumed by the evaluator.
type Resolver struct {
	scopes []scope

	currentFunction functionKind
	currentClass    classKind

	// Locals maps a variable-use AST node (by identity) to the number of
	// environment links between the use site and its defining scope.
	// Uses absent from this map resolve against globals at evaluation time.
	Locals map[ast.Expr]int

	errors []*diagnostics.Diagnostic
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{Locals: make(map[ast.Expr]int)}
}

// Resolve walks stmts and returns the resolution map and any diagnostics.
// The walk does not stop at an error: it covers the whole program and
// returns every diagnostic it raised. Any non-empty list rejects the program.
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[ast.Expr]int, []*diagnostics.Diagnostic) {
	r.resolveStmts(stmts)
	return r.Locals, r.errors
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.FunStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	case *ast.ReturnStmt:
		if r.currentFunction == noFunction {
			r.errorAt(s.Pos().Line, "cannot return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.errorAt(s.Pos().Line, "cannot return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}

	default:
		// unreachable for a well-formed parse
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Superclass.Pos().Line, "a class cannot inherit from itself")
		} else {
			r.currentClass = inSubclass
			r.resolveExpr(s.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := inMethod
		if method.Kind == ast.FunKindInitializer {
			kind = inInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errorAt(e.Pos().Line, "cannot read local variable %q in its own initializer", e.Name.Lexeme)
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Operand)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// no children

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == noClass {
			r.errorAt(e.Pos().Line, "cannot use 'this' outside of a class")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentClass {
		case noClass:
			r.errorAt(e.Pos().Line, "cannot use 'super' outside of a class")
		case inClass:
			r.errorAt(e.Pos().Line, "cannot use 'super' in a class with no superclass")
		default:
			r.resolveLocal(e, "super")
		}

	default:
		// unreachable for a well-formed parse
	}
}

// resolveLocal scans the scope stack from innermost outward; if the
// innermost scope containing name is at index i, it records
// distance = (top - i) for this exact use-site node. If no local scope
// contains name, the use is left out of Locals and resolves against
// globals at evaluation time (spec.md §4.3).
func (r *Resolver) resolveLocal(use ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Locals[use] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.errorAt(name.Line, "variable %q already declared in this scope", name.Lexeme)
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) errorAt(line int, format string, args ...any) {
	r.errors = append(r.errors, diagnostics.New(diagnostics.ResolverStage, line, format, args...))
}
