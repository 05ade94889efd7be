// Package diagnostics defines the stage-tagged error value every pipeline
// stage (scanner, parser, resolver, evaluator) reports through.
package diagnostics

import (
	"fmt"

	"github.com/insertnamehere77/loxo/pkg/token"
)

// Stage identifies which pipeline stage raised a Diagnostic, per the
// taxonomy in spec.md §7.
type Stage int

const (
	ScannerStage Stage = iota
	ParserStage
	ResolverStage
	RuntimeStage
)

func (s Stage) String() string {
	switch s {
	case ScannerStage:
		return "scanner"
	case ParserStage:
		return "parser"
	case ResolverStage:
		return "resolver"
	case RuntimeStage:
		return "runtime"
	default:
		return "unknown"
	}
}

// Diagnostic is a single error produced by a pipeline stage: a line number
// and a human-readable message, as required by spec.md §6.
type Diagnostic struct {
	Stage   Stage
	Pos     token.Position
	Message string
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped like any other Go error.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] %s error: %s", d.Pos.Line, d.Stage, d.Message)
}

// New builds a Diagnostic for the given stage, line and message. format is
// only run through fmt.Sprintf when args is non-empty, so callers that have
// already assembled their message (e.g. parser.errorAt) can pass it straight
// through without a stray '%' in a token's lexeme being read as a verb.
func New(stage Stage, line int, format string, args ...any) *Diagnostic {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Diagnostic{
		Stage:   stage,
		Pos:     token.Position{Line: line},
		Message: msg,
	}
}
