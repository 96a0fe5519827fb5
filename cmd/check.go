package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <ticket-key>",
	Short: "Evalúa la calidad de un ticket de Jira",
	Long: `Comprueba cuatro criterios de calidad: componente asignado, puntos de
historia, descripción adecuada y título claro. Las dos últimas
evaluaciones usan el LLM.

Ejemplo:
  ticketero check TRD-123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketKey := args[0]

		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}

		if verbose {
			fmt.Printf("\n🔍 Analizando ticket %s...\n", ticketKey)
		}

		report, err := d.qualityChecker.Execute(cmd.Context(), ticketKey)
		if err != nil {
			return err
		}

		renderQualityReport(cmd.OutOrStdout(), report, verbose)
		return nil
	},
}
