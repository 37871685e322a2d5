package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/repl"
	"github.com/lpp-lang/lpp/internal/term"
)

func newReplCmd(a *app) *cobra.Command {
	var (
		astMode  bool
		loadFile string
		noPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Inicia una sesión interactiva",
		Long: `Inicia una sesión interactiva. Cada línea se tokeniza (modo tokens)
o se analiza (modo ast); :help lista los comandos disponibles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			maxHistory := a.cfg.MaxHistory
			if maxHistory == 0 {
				// max_history = 0 turns history off
				maxHistory = -1
			}
			opts := repl.Options{
				Prompt:      a.cfg.Prompt,
				HistoryFile: a.cfg.HistoryFile,
				MaxHistory:  maxHistory,
				Catalog:     a.catalog,
				Debug:       a.cfg.Debug,
				Interactive: !noPrompt && term.IsTerminalStream(in),
				Output:      format.KindTree,
			}
			if astMode {
				opts.Mode = repl.ModeAST
			}
			if cmd.Flags().Changed("output") {
				opts.Output = a.kind
			}

			r := repl.New(in, cmd.OutOrStdout(), opts)
			if err := r.LoadHistory(); err != nil {
				a.logger.Warn("could not load history: %v", err)
			}

			if loadFile != "" {
				if err := r.LoadFile(loadFile); err != nil {
					return err
				}
			}
			// An interrupt cancels the session; Run saves the history itself.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := r.Run(ctx); err != nil {
				return err
			}
			if ctx.Err() != nil && cmd.Context().Err() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "\n¡Hasta luego!")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&astMode, "ast", false, "Start in ast mode instead of tokens mode")
	cmd.Flags().StringVar(&loadFile, "load", "", "Analyze a file before reading input")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Disable the banner and prompt")
	return cmd
}
