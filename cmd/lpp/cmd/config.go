package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lpp-lang/lpp/internal/cli"
)

func newConfigCmd(a *app) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Muestra la configuración efectiva",
		Long: `Muestra la configuración efectiva en formato TOML, después de aplicar
el archivo de configuración y las opciones de la línea de comandos.
Con --init la escribe en ./` + cli.DefaultConfigFile + `, sin sobrescribir un
archivo existente.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFile {
				if err := a.cfg.SaveConfig(cli.DefaultConfigFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuración guardada en: %s\n", cli.DefaultConfigFile)
				return nil
			}
			if a.cfg.Path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", a.cfg.Path)
			}
			return a.cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "Write the config to ./"+cli.DefaultConfigFile)
	return cmd
}

func newLocalesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "Lista los idiomas disponibles para los diagnósticos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, locale := range a.registry.Locales() {
				marker := " "
				if strings.EqualFold(locale, a.catalog.Locale()) {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, locale)
			}
			return nil
		},
	}
}
