package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/internal/github"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Crea el directorio de configuración con archivos de ejemplo",
	Long: `Crea el directorio de configuración del usuario y escribe plantillas de
dictionary.json y github-sources.json si no existen todavía. Los archivos
existentes no se tocan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.ConfigDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("no se pudo crear %s: %w", dir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Directorio de configuración: %s\n", dir)

		if err := writeTemplate(cmd, config.UserConfigPath(config.DictionaryFileName), config.DefaultDictionary()); err != nil {
			return err
		}

		emptySources := github.SourcesFile{Sources: []github.RepositorySource{}}
		return writeTemplate(cmd, config.UserConfigPath(github.SourcesFileName), emptySources)
	},
}

// writeTemplate writes a JSON template unless the file already exists.
func writeTemplate(cmd *cobra.Command, path string, content any) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s ya existe, no se modifica\n", path)
		return nil
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("no se pudo escribir %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s creado\n", path)
	return nil
}
