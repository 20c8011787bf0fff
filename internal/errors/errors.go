// Package errors formats NUML compiler and runtime errors with source
// context, line/column information, and a caret pointing at the
// offending position.
package errors

import (
	"fmt"
	"strings"
)

// Position is a 1-indexed source location.
type Position struct {
	Line   int
	Column int
}

// Kind classifies the failure so callers (and exitStatus) can react
// without string-matching the message.
type Kind int

const (
	// KindSyntax covers front-end failures and context-only tokens
	// (end, :) used outside an indexing context.
	KindSyntax Kind = iota
	// KindReference covers unbound-name reads.
	KindReference
	// KindEvaluation covers semantic failures: arity, invalid left
	// sides, invalid field access, RETLIST arity mismatches, etc.
	KindEvaluation
	// KindArithmetic covers factorial's domain guard and invalid
	// matrix indexing.
	KindArithmetic
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindReference:
		return "ReferenceError"
	case KindEvaluation:
		return "EvaluationError"
	case KindArithmetic:
		return "ArithmeticError"
	default:
		return "Error"
	}
}

// CompilerError is the single error shape raised by every phase:
// lexer, parser, and evaluator alike.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     Position
}

// New creates a CompilerError with no source context attached.
func New(kind Kind, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches position information, returning the same error for chaining.
func (e *CompilerError) At(pos Position) *CompilerError {
	e.Pos = pos
	return e
}

// WithSource attaches the original source text and file name, used to
// render the caret-annotated context in Format.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with source context and a caret indicator.
// If color is true, ANSI color codes are used.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column))
	} else if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("%s at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", e.Kind))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of errors, each with its own header.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d of %d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
