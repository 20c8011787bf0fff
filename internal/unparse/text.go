// Package unparse renders NUML AST nodes and runtime values back to
// text and to presentation MathML (spec §4.5). Both entry points are
// total: a failure during rendering yields a sentinel rather than a
// propagated error, since display must never itself crash evaluation.
package unparse

import (
	"fmt"
	"strings"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/value"
)

// Text renders an AST node to its canonical surface form. Errors
// during rendering (an unhandled discriminator, a malformed literal)
// never propagate; they collapse to the `<ERROR>` sentinel unless the
// node itself is simply not one this unparser recognizes, which
// yields `<INVALID>` instead.
func Text(node ast.Node) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "<ERROR>"
		}
	}()
	return textNode(node)
}

func textNode(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *ast.ScalarLiteral:
		return n.Literal
	case *ast.StringLiteral:
		return quoteString(n.Value, n.DoubleQuote)
	case *ast.Identifier:
		return n.Name
	case *ast.EndRange:
		return "end"
	case *ast.Colon:
		return ":"
	case *ast.Wildcard:
		return "~"
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", textNode(n.Left), n.Op, textNode(n.Right))
	case *ast.UnaryExpr:
		return unaryText(n)
	case *ast.PostfixExpr:
		return textNode(n.Operand) + n.Op
	case *ast.Paren:
		return "(" + textNode(n.Inner) + ")"
	case *ast.Assign:
		return fmt.Sprintf("%s %s %s", textNode(n.Left), n.Op, textNode(n.Right))
	case *ast.Range:
		return rangeText(n)
	case *ast.List:
		return listText(n)
	case *ast.Idx:
		return idxText(n)
	case *ast.Field:
		return fieldText(n)
	case *ast.Matrix:
		return matrixText(n)
	case *ast.CmdWList:
		return cmdWListText(n)
	case *ast.If:
		return ifText(n)
	default:
		return "<INVALID>"
	}
}

func unaryText(n *ast.UnaryExpr) string {
	switch n.Op {
	case "++_", "--_":
		return strings.TrimSuffix(n.Op, "_") + textNode(n.Operand)
	default:
		return strings.TrimSuffix(n.Op, "_") + textNode(n.Operand)
	}
}

func quoteString(s string, double bool) string {
	q := "'"
	if double {
		q = "\""
	}
	escaped := strings.ReplaceAll(s, q, q+q)
	return q + escaped + q
}

func rangeText(n *ast.Range) string {
	if n.Stride != nil {
		return fmt.Sprintf("%s:%s:%s", textNode(n.Start), textNode(n.Stride), textNode(n.Stop))
	}
	return fmt.Sprintf("%s:%s", textNode(n.Start), textNode(n.Stop))
}

func listText(n *ast.List) string {
	var lines []string
	for i, item := range n.Items {
		line := textNode(item)
		if i < len(n.OmitOut) && n.OmitOut[i] {
			line += ";"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func idxText(n *ast.Idx) string {
	open, close := "(", ")"
	if n.Brace {
		open, close = "{", "}"
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = textNode(a)
	}
	return textNode(n.Head) + open + strings.Join(args, ", ") + close
}

func fieldText(n *ast.Field) string {
	var sb strings.Builder
	sb.WriteString(textNode(n.Object))
	for _, d := range n.Path {
		sb.WriteByte('.')
		if d.Expr != nil {
			sb.WriteString("(" + textNode(d.Expr) + ")")
		} else {
			sb.WriteString(d.Name)
		}
	}
	return sb.String()
}

func matrixText(n *ast.Matrix) string {
	open, close := "[", "]"
	if n.Cell {
		open, close = "{", "}"
	}
	rows := make([]string, len(n.Rows))
	for i, row := range n.Rows {
		elems := make([]string, len(row))
		for j, e := range row {
			elems[j] = textNode(e)
		}
		rows[i] = strings.Join(elems, ", ")
	}
	return open + strings.Join(rows, "; ") + close
}

func cmdWListText(n *ast.CmdWList) string {
	if len(n.Args) == 0 {
		return n.Name
	}
	return n.Name + " " + strings.Join(n.Args, " ")
}

func ifText(n *ast.If) string {
	var sb strings.Builder
	sb.WriteString("IF ")
	sb.WriteString(textNode(n.Conds[0]))
	sb.WriteString("\n")
	sb.WriteString(textNode(n.Thens[0]))
	for i := 1; i < len(n.Conds); i++ {
		sb.WriteString("\nELSEIF ")
		sb.WriteString(textNode(n.Conds[i]))
		sb.WriteString("\n")
		sb.WriteString(textNode(n.Thens[i]))
	}
	if n.Else != nil {
		sb.WriteString("\nELSE\n")
		sb.WriteString(textNode(n.Else))
	}
	sb.WriteString("\nENDIF")
	return sb.String()
}

// Value renders a runtime value to its canonical text form. Like
// Text, it is total: an internal panic collapses to the sentinel.
func Value(v value.Value) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "<ERROR>"
		}
	}()
	if v == nil {
		return "<INVALID>"
	}
	return v.String()
}
