package ast

import (
	"fmt"
	"strings"
)

// Printer renders an expression as a fully-parenthesized Lisp-style string,
// e.g. `1 + 2 * 3` prints as `(+ 1 (* 2 3))`. It exists to support
// spec.md §8's testable property that re-tokenizing and re-parsing a
// pretty-printed expression yields a structurally equivalent AST.
//
// The original reference implementation's ASTPrinter (printer.py) left
// Assign/Call/Get/Logical/Set/Super/This/Variable unimplemented; this
// port fills in every expression variant.
type Printer struct{}

// Print renders expr.
func (p *Printer) Print(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		if s, ok := e.Value.(string); ok {
			return s
		}
		return fmt.Sprint(e.Value)
	case *Grouping:
		return p.parenthesize("group", e.Inner)
	case *Unary:
		return p.parenthesize(e.Op.Lexeme, e.Operand)
	case *Binary:
		return p.parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Logical:
		return p.parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return p.parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return p.parenthesize("call "+p.Print(e.Callee), e.Args...)
	case *Get:
		return p.parenthesize(". "+e.Name.Lexeme, e.Object)
	case *Set:
		return p.parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super ." + e.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

func (p *Printer) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(p.Print(e))
	}
	b.WriteByte(')')
	return b.String()
}
