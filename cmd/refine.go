package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ticketero/ticketero/internal/service"
)

var refineCmd = &cobra.Command{
	Use:   "refine <ticket-key> [contexto]",
	Short: "Refina un ticket con contexto, tareas y criterios de aceptación",
	Long: `Genera una propuesta de refinamiento estructurada para un ticket:
título sugerido, contexto, tareas técnicas, criterios de aceptación y
notas adicionales. El segundo argumento opcional aporta contexto del
usuario que el LLM prioriza sobre la documentación de repositorios.

Ejemplo:
  ticketero refine TRD-123 "afecta solo al portal del asesor"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketKey := args[0]

		userContext := ""
		if len(args) > 1 {
			userContext = args[1]
		}

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
			fmt.Printf("\n✨ Refinando ticket %s...\n", ticketKey)
			if userContext != "" {
				fmt.Printf("💬 Contexto del usuario: %q\n", userContext)
			}
		}

		result, err := d.refiner.Execute(cmd.Context(), ticketKey, service.RefineOptions{
			SourcesPath: sourcesPath,
			UserContext: userContext,
		})
		if err != nil {
			return err
		}

		if verbose {
			renderLoadedFiles(cmd.OutOrStdout(), result.LoadedFiles)
		}
		renderRefinement(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	refineCmd.Flags().String("sources", "", "Ruta al archivo github-sources.json")
}
