package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/lexer"
	"github.com/lpp-lang/lpp/internal/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var eval string

	cmd := &cobra.Command{
		Use:   "parse [archivo]",
		Short: "Construye el árbol sintáctico de un programa",
		Long: `Analiza un programa y muestra su árbol sintáctico. Los errores de
sintaxis se escriben en la salida de errores y el comando termina con
código 1.

Ejemplos:
  lpp parse programa.lpp
  lpp parse -o string -e "variable x = -a * b;"
  lpp parse --locale en -o json programa.lpp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args, eval)
			if err != nil {
				return err
			}
			return a.analyze(cmd.OutOrStdout(), cmd.ErrOrStderr(), name, src)
		},
	}
	cmd.Flags().StringVarP(&eval, "eval", "e", "", "Source text to parse")
	return cmd
}

// analyze parses src and renders the program to out. Suggestions and
// diagnostics go to errOut; ErrSyntax is returned when there were any
// diagnostics, in which case the program is not rendered.
func (a *app) analyze(out, errOut io.Writer, name, src string) error {
	p := parser.New(lexer.New(src), parser.WithCatalog(a.catalog), parser.WithFilename(name))
	program := p.ParseProgram()

	for _, s := range p.Suggestions() {
		fmt.Fprintf(errOut, "%s: %s\n", s.Position, s.Message)
	}

	if diags := p.Diagnostics(); len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintf(errOut, "Error: %s\n", d.Error())
		}
		a.logger.Debug("%d syntax errors", len(diags))
		return ErrSyntax
	}

	nodes := 0
	ast.Inspect(program, func(n ast.Node) bool {
		if n != nil {
			nodes++
		}
		return true
	})
	a.logger.Debug("%d statements, %d nodes", len(program.Statements), nodes)
	return format.Render(out, program, a.kind)
}
