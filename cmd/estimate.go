package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <ticket-key>",
	Short: "Estima el esfuerzo de un ticket en puntos Fibonacci",
	Long: `Estima la complejidad de un ticket en la escala 1, 2, 3, 5, 8, 13 usando
el LLM, con la documentación de repositorios configurada como contexto.

Ejemplo:
  ticketero estimate TRD-123 --sources ./github-sources.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketKey := args[0]

		sourcesPath, err := cmd.Flags().GetString("sources")
		if err != nil {
			return err
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}

		if verbose {
			fmt.Printf("\n📊 Estimando ticket %s...\n", ticketKey)
		}

		result, err := d.estimator.Execute(cmd.Context(), ticketKey, sourcesPath)
		if err != nil {
			return err
		}

		if verbose {
			renderLoadedFiles(cmd.OutOrStdout(), result.LoadedFiles)
		}
		renderEstimation(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	estimateCmd.Flags().String("sources", "", "Ruta al archivo github-sources.json")
}
