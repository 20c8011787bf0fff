package eval

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/errors"
)

func errorsUndefinedCommand(n *ast.CmdWList) error {
	return errors.New(errors.KindReference, "'%s' is undefined", n.Name).At(n.Pos())
}
