package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ticketero/ticketero/internal/service"
	"github.com/ticketero/ticketero/pkg/models"
)

const separator = "───────────────────────────────────────"

// renderSearchResult prints the filter explanation and the result table.
func renderSearchResult(w io.Writer, result models.SearchResult, showJQL bool) {
	if len(result.Explanation) == 0 {
		fmt.Fprintln(w, "\nBúsqueda: Todos los issues (sin filtros específicos)")
	} else {
		fmt.Fprintln(w, "\nBúsqueda:")
		for _, entry := range result.Explanation {
			fmt.Fprintf(w, "  • %s\n", entry)
		}
	}

	if showJQL {
		fmt.Fprintf(w, "\nJQL: %s\n", result.JQL)
	}

	if len(result.Tickets) == 0 {
		fmt.Fprintln(w, "\nNo se encontraron tickets.")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Clave", "Tipo", "Estado", "Puntos", "Resumen"})
	for _, ticket := range result.Tickets {
		points := "-"
		if ticket.StoryPoints != nil {
			points = strings.TrimSuffix(fmt.Sprintf("%.1f", *ticket.StoryPoints), ".0")
		}
		tw.AppendRow(table.Row{ticket.Key, ticket.Type, ticket.Status, points, ticket.Summary})
	}
	fmt.Fprintln(w)
	tw.Render()
	fmt.Fprintf(w, "\n%d tickets encontrados.\n", len(result.Tickets))
}

// renderQualityReport prints the four checks with pass/fail markers.
func renderQualityReport(w io.Writer, report models.QualityReport, verbose bool) {
	ticket := report.Ticket

	fmt.Fprintf(w, "\n%s: %s\n", ticket.Key, ticket.Summary)
	fmt.Fprintln(w, separator)

	renderCheck(w, "Componente asignado", report.HasComponent,
		strings.Join(ticket.Components, ", "))
	renderCheck(w, "Puntos de historia", report.HasStoryPoints, "")
	renderCheck(w, "Descripción adecuada", report.DescriptionEvaluation.IsAdequate,
		report.DescriptionEvaluation.Feedback)
	renderCheck(w, "Título claro", report.TitleEvaluation.IsAdequate,
		report.TitleEvaluation.Feedback)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Resultado: %d/%d comprobaciones superadas\n", report.PassedChecks, report.TotalChecks)

	if verbose {
		fmt.Fprintf(w, "\nEstado: %s | Tipo: %s", ticket.Status, ticket.Type)
		if ticket.Assignee != "" {
			fmt.Fprintf(w, " | Asignado a: %s", ticket.Assignee)
		}
		fmt.Fprintln(w)
	}
}

func renderCheck(w io.Writer, label string, passed bool, detail string) {
	mark := "✗"
	if passed {
		mark = "✓"
	}
	fmt.Fprintf(w, "  %s %s\n", mark, label)
	if detail != "" {
		fmt.Fprintf(w, "      %s\n", detail)
	}
}

// renderEstimation prints the estimation result.
func renderEstimation(w io.Writer, result service.EstimateResult) {
	fmt.Fprintf(w, "\n%s: %s\n", result.Ticket.Key, result.Ticket.Summary)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Estimación: %d puntos\n\n", result.Estimation.Points)
	fmt.Fprintln(w, result.Estimation.Reasoning)
}

// renderRefinement prints the structured refinement with warning markers.
func renderRefinement(w io.Writer, result service.RefineResult) {
	refinement := result.Refinement

	fmt.Fprintf(w, "\n%s: %s\n", result.Ticket.Key, result.Ticket.Summary)
	fmt.Fprintln(w, separator)

	if refinement.SuggestedTitle != nil {
		fmt.Fprintf(w, "\n## Título sugerido\n%s\n", *refinement.SuggestedTitle)
	}

	if refinement.Context != "" {
		fmt.Fprintf(w, "\n## Contexto\n%s\n", refinement.Context)
	}

	if len(refinement.Tasks) > 0 {
		fmt.Fprintln(w, "\n## Tareas técnicas")
		for _, task := range refinement.Tasks {
			fmt.Fprintf(w, "  - %s\n", task)
		}
	}

	if len(refinement.AcceptanceCriteria) > 0 {
		fmt.Fprintln(w, "\n## Criterios de aceptación")
		for _, criterion := range refinement.AcceptanceCriteria {
			fmt.Fprintf(w, "  - %s\n", criterion)
		}
	}

	if refinement.AdditionalNotes != nil {
		fmt.Fprintf(w, "\n## Notas adicionales\n%s\n", *refinement.AdditionalNotes)
	}

	if len(refinement.Warnings) > 0 {
		fmt.Fprintln(w, "\n⚠ Avisos:")
		for _, warning := range refinement.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", warning)
		}
	}

	if refinement.IsComplete {
		fmt.Fprintln(w, "\nRefinamiento completo.")
	} else {
		fmt.Fprintln(w, "\nRefinamiento incompleto, revisa los avisos.")
	}
}

// renderLoadedFiles prints the context manifest in verbose mode.
func renderLoadedFiles(w io.Writer, files []models.LoadedFile) {
	fmt.Fprintln(w, "\n📂 Contexto de GitHub cargado:")
	if len(files) == 0 {
		fmt.Fprintln(w, "  (ningún archivo cargado)")
		return
	}

	for _, file := range files {
		fmt.Fprintf(w, "  [%s] %s/%s - %s (ref: %s)\n",
			file.Category, file.Owner, file.Repo, file.Path, file.Ref)
	}
}
