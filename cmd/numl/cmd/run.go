package cmd

import (
	"fmt"
	"os"

	"github.com/numl-lang/numl/internal/unparse"
	"github.com/numl-lang/numl/pkg/numl"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	mathML   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a NUML script or expression",
	Long: `Execute a NUML program from a file or inline expression.

Examples:
  # Run a script file
  numl run script.m

  # Evaluate an inline expression
  numl run -e "a = 2 + 3*4"

  # Run with AST dump (for debugging)
  numl run --dump-ast script.m

  # Render the result as MathML instead of plain text
  numl run --mathml -e "[1,2;3,4]"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&mathML, "mathml", false, "render the result as MathML instead of plain text")
}

func runScript(cmd *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	program, parseErrs := numl.Parse(input)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintf(os.Stderr, "SyntaxError: %s\n", e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	if dumpAST {
		fmt.Println("AST:")
		for _, stmt := range program.Items {
			fmt.Println(unparse.Text(stmt))
		}
		fmt.Println()
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	interp := numl.New(numl.Config{})

	for i, stmt := range program.Items {
		omit := i < len(program.OmitOut) && program.OmitOut[i]
		v, suppressed, err := interp.EvaluateNode(stmt, omit)
		if err != nil {
			fmt.Fprintln(os.Stderr, numl.FormatError(err, input, filename, true))
			return fmt.Errorf("evaluation failed")
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "[exit=%d]\n", interp.ExitStatus())
		}
		if v == nil || suppressed {
			continue
		}
		if mathML {
			fmt.Println(interp.UnparseValueMathML(v, unparse.DisplayInline))
		} else {
			fmt.Println(interp.UnparseValue(v))
		}
	}
	return nil
}
