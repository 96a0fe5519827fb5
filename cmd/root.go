// Package cmd provides the command-line interface for ticketero.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ticketero",
	Short: "Asistente de tickets de Jira con lenguaje natural",
	Long: `Ticketero consulta, evalúa, estima y refina tickets de Jira usando un
modelo de lenguaje local (llama.cpp) como intérprete, con documentación
de repositorios de GitHub como contexto opcional.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Mostrar información detallada")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}
