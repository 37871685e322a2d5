package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var eval string

	cmd := &cobra.Command{
		Use:   "tokens [archivo]",
		Short: "Lista los tokens de un programa",
		Long: `Lista los tokens de un programa leído de un archivo, de -e o de la
entrada estándar.

Ejemplos:
  lpp tokens programa.lpp
  lpp tokens -e "variable x = 5;"
  echo "x + 1" | lpp tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, src, err := readSource(cmd, args, eval)
			if err != nil {
				return err
			}
			tokens := lexer.New(src).Tokens()
			a.logger.Debug("%d tokens", len(tokens))
			return format.RenderTokens(cmd.OutOrStdout(), tokens, a.kind, a.catalog)
		},
	}
	cmd.Flags().StringVarP(&eval, "eval", "e", "", "Source text to tokenize")
	return cmd
}
