package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/internal/github"
	"github.com/ticketero/ticketero/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspecciona la configuración",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Muestra el directorio de configuración",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.ConfigDir())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Muestra de dónde se cargan los archivos y variables de entorno",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Archivos de configuración:")
		for _, filename := range []string{config.DictionaryFileName, github.SourcesFileName} {
			info := config.DescribeConfigFile(filename)
			if info.Source == "none" {
				fmt.Fprintf(out, "  %s: no encontrado (se buscó en %s y %s)\n",
					filename, info.UserPath, info.LocalPath)
				continue
			}
			fmt.Fprintf(out, "  %s: %s (%s)\n", filename, info.ResolvedPath, info.Source)
		}

		fmt.Fprintln(out, "\nVariables de entorno:")
		for _, v := range []string{"JIRA_BASE_URL", "JIRA_EMAIL", "LLAMA_BASE_URL", "LLAMA_MODEL"} {
			fmt.Fprintf(out, "  %s: %s\n", v, valueOrNotSet(os.Getenv(v)))
		}
		for _, v := range []string{"JIRA_API_TOKEN", "GITHUB_TOKEN"} {
			fmt.Fprintf(out, "  %s: %s\n", v, logging.MaskSensitive(os.Getenv(v)))
		}

		return nil
	},
}

func valueOrNotSet(v string) string {
	if v == "" {
		return "<not set>"
	}
	return v
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}
