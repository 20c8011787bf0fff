package unparse

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/value"
)

// Display selects the `display` attribute of the emitted `<math>`
// root element (spec §4.1 `unparseMathML(ast | value, display)`).
type Display string

const (
	DisplayInline Display = "inline"
	DisplayBlock  Display = "block"
)

const mathmlNS = "http://www.w3.org/1998/Math/MathML"

// FuncRenderer renders a function call's MathML given its already-
// rendered argument fragments, e.g. wrapping the first argument in
// radical markup for `sqrt`.
type FuncRenderer func(args []string) string

// overrides is the registered table of decorative function renderers
// (spec §4.5); it mirrors the evaluator's Base function table's
// optional MathML unparser field, kept here so the text and MathML
// renderers can be exercised independently of a live evaluator.
var overrides = map[string]FuncRenderer{
	"abs": func(a []string) string {
		return fmt.Sprintf("<mrow><mo>|</mo>%s<mo>|</mo></mrow>", a[0])
	},
	"sqrt": func(a []string) string {
		return fmt.Sprintf("<msqrt>%s</msqrt>", a[0])
	},
	"log": func(a []string) string {
		return fmt.Sprintf("<mrow><mi>ln</mi><mo>&ApplyFunction;</mo><mfenced>%s</mfenced></mrow>", a[0])
	},
	"log10": func(a []string) string {
		return fmt.Sprintf("<mrow><msub><mi>log</mi><mn>10</mn></msub><mo>&ApplyFunction;</mo><mfenced>%s</mfenced></mrow>", a[0])
	},
	"logb": func(a []string) string {
		if len(a) != 2 {
			return defaultFuncRender("log", a)
		}
		return fmt.Sprintf("<mrow><msub><mi>log</mi>%s</msub><mo>&ApplyFunction;</mo><mfenced>%s</mfenced></mrow>", a[0], a[1])
	},
	"gamma": func(a []string) string {
		return fmt.Sprintf("<mrow><mi>&Gamma;</mi><mo>&ApplyFunction;</mo><mfenced>%s</mfenced></mrow>", a[0])
	},
	"factorial": func(a []string) string {
		return fmt.Sprintf("<mrow>%s<mo>!</mo></mrow>", a[0])
	},
}

// RegisterOverride adds or replaces a decorative renderer, mirroring
// how an external function table entry (spec §6) may carry its own
// MathML unparser.
func RegisterOverride(name string, r FuncRenderer) { overrides[name] = r }

func defaultFuncRender(name string, args []string) string {
	return fmt.Sprintf("<mrow><mi>%s</mi><mo>&ApplyFunction;</mo><mfenced>%s</mfenced></mrow>", escapeXML(name), strings.Join(args, "<mo>,</mo>"))
}

var infIdent = regexp.MustCompile(`^(?:[Ii]nf|INF)$`)

// MathML renders an AST node to a self-contained MathML fragment. A
// panic during rendering collapses to `<mi>error</mi>` unless debug
// is set, in which case the panic value is returned as a Go error.
func MathML(node ast.Node, display Display, debug bool) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if debug {
				err = fmt.Errorf("mathml render: %v", r)
				return
			}
			out = wrapMath(display, "<mi>error</mi>")
		}
	}()
	body := mathmlNode(node)
	return wrapMath(display, body), nil
}

func wrapMath(display Display, body string) string {
	d := display
	if d == "" {
		d = DisplayInline
	}
	return fmt.Sprintf(`<math xmlns=%q display=%q>%s</math>`, mathmlNS, string(d), body)
}

func mathmlNode(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *ast.ScalarLiteral:
		return fmt.Sprintf("<mn>%s</mn>", escapeXML(n.Literal))
	case *ast.StringLiteral:
		return fmt.Sprintf("<mtext>%s</mtext>", escapeXML(n.Value))
	case *ast.Identifier:
		return mathmlIdentifier(n.Name)
	case *ast.EndRange:
		return "<mi>end</mi>"
	case *ast.Colon:
		return "<mo>:</mo>"
	case *ast.Wildcard:
		return "<mo>~</mo>"
	case *ast.BinaryExpr:
		return fmt.Sprintf("<mrow>%s<mo>%s</mo>%s</mrow>", mathmlNode(n.Left), escapeXML(n.Op), mathmlNode(n.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("<mrow><mo>%s</mo>%s</mrow>", escapeXML(strings.TrimSuffix(n.Op, "_")), mathmlNode(n.Operand))
	case *ast.PostfixExpr:
		if n.Op == "'" || n.Op == ".'" {
			return fmt.Sprintf("<msup>%s<mo>T</mo></msup>", mathmlNode(n.Operand))
		}
		return fmt.Sprintf("<mrow>%s<mo>%s</mo></mrow>", mathmlNode(n.Operand), escapeXML(n.Op))
	case *ast.Paren:
		return fmt.Sprintf("<mfenced>%s</mfenced>", mathmlNode(n.Inner))
	case *ast.Assign:
		return fmt.Sprintf("<mrow>%s<mo>=</mo>%s</mrow>", mathmlNode(n.Left), mathmlNode(n.Right))
	case *ast.Range:
		return mathmlRange(n)
	case *ast.List:
		return mathmlList(n)
	case *ast.Idx:
		return mathmlIdx(n)
	case *ast.Field:
		return mathmlField(n)
	case *ast.Matrix:
		return mathmlMatrix(n)
	case *ast.CmdWList:
		return fmt.Sprintf("<mtext>%s</mtext>", escapeXML(cmdWListText(n)))
	case *ast.If:
		return mathmlIf(n)
	default:
		return "<mi>error</mi>"
	}
}

func mathmlIdentifier(name string) string {
	if infIdent.MatchString(name) {
		return "<mi>&infin;</mi>"
	}
	return fmt.Sprintf("<mi>%s</mi>", escapeXML(normalizeIdent(name)))
}

func normalizeIdent(s string) string {
	return norm.NFC.String(s)
}

func mathmlRange(n *ast.Range) string {
	if n.Stride != nil {
		return fmt.Sprintf("<mrow>%s<mo>:</mo>%s<mo>:</mo>%s</mrow>", mathmlNode(n.Start), mathmlNode(n.Stride), mathmlNode(n.Stop))
	}
	return fmt.Sprintf("<mrow>%s<mo>:</mo>%s</mrow>", mathmlNode(n.Start), mathmlNode(n.Stop))
}

func mathmlList(n *ast.List) string {
	var sb strings.Builder
	for _, item := range n.Items {
		sb.WriteString(mathmlNode(item))
	}
	return sb.String()
}

func mathmlIdx(n *ast.Idx) string {
	if id, ok := n.Head.(*ast.Identifier); ok {
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = mathmlNode(a)
		}
		if r, ok := overrides[id.Name]; ok {
			return r(args)
		}
		return defaultFuncRender(id.Name, args)
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = mathmlNode(a)
	}
	return fmt.Sprintf("<mrow>%s<mfenced>%s</mfenced></mrow>", mathmlNode(n.Head), strings.Join(args, "<mo>,</mo>"))
}

func mathmlField(n *ast.Field) string {
	var sb strings.Builder
	sb.WriteString(mathmlNode(n.Object))
	for _, d := range n.Path {
		sb.WriteString("<mo>.</mo>")
		if d.Expr != nil {
			sb.WriteString(mathmlNode(d.Expr))
		} else {
			sb.WriteString(fmt.Sprintf("<mi>%s</mi>", escapeXML(d.Name)))
		}
	}
	return sb.String()
}

func mathmlMatrix(n *ast.Matrix) string {
	var sb strings.Builder
	sb.WriteString("<mtable>")
	for _, row := range n.Rows {
		sb.WriteString("<mtr>")
		for _, e := range row {
			sb.WriteString("<mtd>")
			sb.WriteString(mathmlNode(e))
			sb.WriteString("</mtd>")
		}
		sb.WriteString("</mtr>")
	}
	sb.WriteString("</mtable>")
	return sb.String()
}

func mathmlIf(n *ast.If) string {
	var sb strings.Builder
	sb.WriteString("<mtable>")
	for i, cond := range n.Conds {
		sb.WriteString("<mtr><mtd>")
		sb.WriteString(mathmlNode(cond))
		sb.WriteString("</mtd><mtd>")
		sb.WriteString(mathmlNode(n.Thens[i]))
		sb.WriteString("</mtd></mtr>")
	}
	if n.Else != nil {
		sb.WriteString("<mtr><mtd><mtext>else</mtext></mtd><mtd>")
		sb.WriteString(mathmlNode(n.Else))
		sb.WriteString("</mtd></mtr>")
	}
	sb.WriteString("</mtable>")
	return sb.String()
}

// ValueMathML renders a runtime value's MathML presentation.
func ValueMathML(v value.Value, display Display) string {
	return wrapMath(display, mathmlValue(v))
}

func mathmlValue(v value.Value) string {
	switch t := v.(type) {
	case nil:
		return "<mi>error</mi>"
	case value.Scalar:
		return fmt.Sprintf("<mn>%s</mn>", escapeXML(t.String()))
	case value.String:
		return fmt.Sprintf("<mtext>%s</mtext>", escapeXML(t.Go()))
	case *value.Array:
		return mathmlArray(t)
	case *value.Struct:
		return mathmlStruct(t)
	default:
		return "<mi>error</mi>"
	}
}

func mathmlArray(a *value.Array) string {
	var sb strings.Builder
	sb.WriteString("<mtable>")
	rows, cols := a.Dim(1), a.Dim(2)
	for r := 0; r < rows; r++ {
		sb.WriteString("<mtr>")
		for c := 0; c < cols; c++ {
			sb.WriteString("<mtd>")
			sb.WriteString(mathmlValue(a.At(r, c)))
			sb.WriteString("</mtd>")
		}
		sb.WriteString("</mtr>")
	}
	sb.WriteString("</mtable>")
	return sb.String()
}

func mathmlStruct(s *value.Struct) string {
	var sb strings.Builder
	sb.WriteString("<mtable>")
	for _, name := range s.Fields() {
		v, _ := s.Get(name)
		sb.WriteString("<mtr><mtd><mi>")
		sb.WriteString(escapeXML(name))
		sb.WriteString("</mi></mtd><mtd>")
		sb.WriteString(mathmlValue(v))
		sb.WriteString("</mtd></mtr>")
	}
	sb.WriteString("</mtable>")
	return sb.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.String(s)
}
