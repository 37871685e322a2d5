package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <archivo>",
		Short: "Vuelve a analizar un archivo cada vez que cambia",
		Long: `Analiza un archivo y lo vuelve a analizar cada vez que se guarda.
Termina con Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			w, err := watch.New(path, a.cfg.Watch.Debounce.Duration)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.reanalyze(cmd, path)
			a.logger.Info("watching %s", w.Path())

			return w.Run(ctx, func(ev watch.Event) {
				a.logger.Debug("%s %s", ev.Op, ev.Path)
				if ev.Op&(watch.OpRemove|watch.OpRename) != 0 {
					if _, err := os.Stat(ev.Path); err != nil {
						a.logger.Warn("%s is gone, waiting for it to reappear", path)
						return
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s %s\n", ev.Time.Format("15:04:05"), path)
				a.reanalyze(cmd, path)
			})
		},
	}
}

// reanalyze reports the current contents of path. Errors are logged rather
// than returned so that watching carries on.
func (a *app) reanalyze(cmd *cobra.Command, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Error("%v", err)
		return
	}
	err = a.analyze(cmd.OutOrStdout(), cmd.ErrOrStderr(), path, string(data))
	if err != nil && !errors.Is(err, ErrSyntax) {
		a.logger.Error("%v", err)
	}
}
