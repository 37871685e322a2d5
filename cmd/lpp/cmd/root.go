// Package cmd implements the lpp command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/cli"
	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/i18n"
)

// ErrSyntax is returned once diagnostics have been printed, so only the
// exit status is left to report.
var ErrSyntax = errors.New("syntax errors")

// app carries the state shared by all subcommands. It is filled in by the
// root command before any subcommand runs.
type app struct {
	cfgFile string
	verbose bool
	debug   bool
	locale  string
	output  string

	cfg      *cli.Config
	registry *i18n.Registry
	catalog  *i18n.Catalog
	kind     format.Kind
	logger   *cli.Logger
}

// NewRootCmd builds the lpp command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lpp",
		Short: "Analizador léxico y sintáctico de LPP",
		Long: `lpp tokeniza y analiza programas escritos en LPP, un lenguaje de
expresiones con palabras clave en español.

Comandos:
  tokens  - lista los tokens de un programa
  parse   - construye el árbol sintáctico y reporta errores
  repl    - sesión interactiva
  watch   - vuelve a analizar un archivo cada vez que cambia
  serve   - expone el analizador sobre HTTP/3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default: ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&a.debug, "debug", false, "Debug output")
	flags.StringVarP(&a.locale, "locale", "l", "", "Diagnostics language (es, en, ...)")
	flags.StringVarP(&a.output, "output", "o", "", "Output format: tree, json, yaml, dump, string")

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newReplCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newLocalesCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the config file and applies the command line overrides
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := cli.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = a.locale
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	cfg.Verbose = cfg.Verbose || a.verbose
	cfg.Debug = cfg.Debug || a.debug
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry, err := i18n.NewRegistry(cfg.LocalesDir)
	if err != nil {
		return err
	}
	catalog, err := registry.Lookup(cfg.Locale)
	if err != nil {
		return err
	}
	kind, err := format.ParseKind(cfg.Output)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.registry = registry
	a.catalog = catalog
	a.kind = kind
	a.logger = cli.NewLogger(cfg.Verbose, cfg.Debug)
	a.logger.SetOutput(cmd.ErrOrStderr())

	if cfg.Path != "" {
		a.logger.Debug("config loaded from %s", cfg.Path)
	}
	a.logger.Debug("locale=%s output=%s", catalog.Locale(), kind)
	return nil
}

// readSource returns the program named by the -e flag, a file argument or
// standard input, in that order of preference.
func readSource(cmd *cobra.Command, args []string, eval string) (name, src string, err error) {
	if eval != "" {
		return "", eval, nil
	}
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read source: %w", err)
		}
		return args[0], string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return "", string(data), nil
}
