package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ticketero/ticketero/internal/logging"
)

var searchCmd = &cobra.Command{
	Use:   "search <consulta>",
	Short: "Buscar tickets en Jira usando lenguaje natural",
	Long: `Interpreta una consulta en lenguaje natural con el LLM, construye la
query JQL equivalente y la ejecuta contra Jira.

Ejemplo:
  ticketero search "tareas abiertas de CRM"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		showJQL, err := cmd.Flags().GetBool("jql")
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
			fmt.Printf("\n🔍 Procesando consulta: %s\n", query)
			fmt.Println("🤖 Interpretando consulta con LLM...")
		}

		logging.Debug("ejecutando búsqueda", "query", query, "limit", limit)

		result, err := d.search.Execute(cmd.Context(), query, limit)
		if err != nil {
			return err
		}

		renderSearchResult(cmd.OutOrStdout(), result, showJQL)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 20, "Número máximo de resultados")
	searchCmd.Flags().Bool("jql", false, "Mostrar la query JQL generada")
}
