package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lpp-lang/lpp/internal/cli"
	"github.com/lpp-lang/lpp/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expone el analizador sobre HTTP/3",
		Long: `Expone el analizador sobre HTTP/3 (QUIC).

Endpoints:
  POST /tokens   lista los tokens del cuerpo
  POST /parse    árbol sintáctico y diagnósticos del cuerpo
  GET  /healthz  estado del servicio

El parámetro ?locale= selecciona el idioma de los diagnósticos. Sin
cert_file ni key_file se genera un certificado autofirmado.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Serve.Addr = addr
			}
			return a.serve(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "UDP listen address (default from config, :8443)")
	return cmd
}

func (a *app) serve(parent context.Context, out io.Writer) error {
	cfg := a.cfg.Serve

	tlsCfg, selfSigned, err := server.TLSConfig(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return err
	}
	if selfSigned {
		a.logger.Warn("no certificate configured, using a self-signed one")
	}

	h, err := server.NewHandler(server.Options{Catalogs: a.registry, Logger: a.logger})
	if err != nil {
		return err
	}

	srv := server.NewHTTP3Server(cfg.Addr, tlsCfg, h)
	bound, err := srv.Start()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "lpp v%s escuchando en https://%s (HTTP/3)\n", cli.Version, bound)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-srv.Done():
			return errors.New("server stopped unexpectedly")
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}
