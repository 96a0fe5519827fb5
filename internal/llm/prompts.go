package llm

import (
	"fmt"
	"strings"

	"github.com/ticketero/ticketero/pkg/models"
)

// querySystemPromptHeader precedes the Jira vocabulary in the query
// interpretation system prompt.
const querySystemPromptHeader = `Eres un asistente experto en interpretar consultas de usuarios sobre tickets de Jira.
Tu tarea es analizar la consulta del usuario y extraer los parámetros de búsqueda.

REGLAS IMPORTANTES:
- Usa EXACTAMENTE los valores disponibles en el contexto proporcionado.
- Si no puedes determinar un campo con certeza, devuelve null para ese campo.

## Configuración de Jira:

`

const querySystemPromptFooter = `

Analiza la consulta del usuario y extrae los parámetros correspondientes.`

// QuerySystemPrompt builds the query interpretation system prompt from the
// configured Jira vocabulary.
func QuerySystemPrompt(dict models.Dictionary) string {
	return querySystemPromptHeader + dict.AsContext() + querySystemPromptFooter
}

// SearchParamsSchema is the structured-output contract for query
// interpretation. Raw JSON Schema: llama.cpp requires function.description.
func SearchParamsSchema() FunctionSchema {
	nullableField := func(description string) map[string]any {
		return map[string]any{
			"type":        "string",
			"nullable":    true,
			"description": description,
		}
	}

	return FunctionSchema{
		Name:        "search_params",
		Description: "Parámetros extraídos de la consulta del usuario para buscar tickets en Jira",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"project":    nullableField("KEY del proyecto en Jira (ej: TRD) o null si no se especifica"),
				"issueType":  nullableField("Nombre exacto del tipo de issue o null si no se especifica. Varios valores separados por comas."),
				"status":     nullableField("Nombre exacto del estado del ticket o null si no se especifica. Varios valores separados por comas."),
				"component":  nullableField("Nombre exacto del componente o null si no se especifica. Varios valores separados por comas."),
				"textSearch": nullableField("Texto adicional para buscar en el contenido del ticket o null"),
			},
			"required": []string{"project", "issueType", "status", "component", "textSearch"},
		},
	}
}

// DescriptionEvaluationPrompt instructs the model to judge a description.
const DescriptionEvaluationPrompt = `Eres un experto en gestión de proyectos y metodologías ágiles.
Tu tarea es evaluar si la descripción de un ticket de Jira es adecuada y suficiente.

Una buena descripción debe:
- Explicar claramente qué se necesita hacer o qué problema resolver
- Proporcionar contexto suficiente para entender el trabajo
- Idealmente incluir criterios de aceptación o condiciones de completitud
- Ser lo suficientemente detallada para que alguien pueda empezar a trabajar

IMPORTANTE:
- Responde SOLO con un JSON válido, sin texto adicional
- El JSON debe tener exactamente esta estructura: {"isAdequate": boolean, "feedback": "string"}
- Si la descripción está vacía o es null, es automáticamente inadecuada
- El feedback debe ser breve (máximo 2 frases) y en español`

// BuildDescriptionEvaluationPrompt renders the user message for a
// description evaluation.
func BuildDescriptionEvaluationPrompt(description string) string {
	return "Evalúa la siguiente descripción de ticket:\n\n" + description
}

// TitleEvaluationPrompt instructs the model to judge a title.
const TitleEvaluationPrompt = `Eres un experto en gestión de proyectos y redacción de tickets.
Tu tarea es evaluar si el título de un ticket de Jira es claro y adecuado.

Un buen título debe:
- Ser conciso (idealmente menos de 10 palabras)
- Ser descriptivo: indicar claramente qué se va a hacer o qué problema se resuelve
- Ser entendible tanto para perfiles técnicos como para personas de producto/negocio
- Usar lenguaje directo y profesional

Un MAL título:
- Usa formato de historia de usuario: "As a user...", "Como usuario...", "Yo como..."
- Es demasiado vago o genérico: "Mejoras", "Arreglos", "Cambios"
- Es demasiado técnico sin contexto: "Refactor del módulo X"
- Es demasiado largo o confuso

Ejemplos de BUENOS títulos:
- "Implementar exportación a CSV en dashboard de ventas"
- "Corregir cálculo de IVA en facturas"
- "Añadir filtro por fecha en listado de clientes"

Ejemplos de MALOS títulos:
- "As a user I want to export data so that I can analyze it"
- "Como usuario quiero ver mis datos"
- "Mejoras varias"
- "Bug"

IMPORTANTE:
- Responde SOLO con un JSON válido, sin texto adicional
- El JSON debe tener exactamente esta estructura: {"isAdequate": boolean, "feedback": "string"}
- Si el título está vacío, es automáticamente inadecuado
- El feedback debe ser breve (máximo 2 frases) y en español
- Si el título es adecuado, el feedback debe ser positivo`

// BuildTitleEvaluationPrompt renders the user message for a title evaluation.
func BuildTitleEvaluationPrompt(title string) string {
	return "Evalúa el siguiente título de ticket:\n\n" + title
}

// EstimationPrompt instructs the model to size a ticket on the Fibonacci scale.
const EstimationPrompt = `Eres un experto en arquitectura de software y estimación ágil.
Tu tarea es estimar el esfuerzo/complejidad de un ticket de Jira usando puntos de la serie Fibonacci.

## Escala de puntos Fibonacci:

- **1 punto**: Tarea trivial, cambio muy pequeño, sin riesgo. Ej: cambiar un texto, ajustar un color.
- **2 puntos**: Tarea simple, pocas líneas de código, bajo riesgo. Ej: añadir un campo a un formulario.
- **3 puntos**: Tarea de complejidad media-baja, requiere algo de análisis. Ej: implementar una validación o actualizar la lógica de negocio de un componente existente.
- **5 puntos**: Tarea de complejidad media, requiere diseño y testing. Ej: crear un nuevo endpoint API o procesar una nueva entidad.
- **8 puntos**: Tarea compleja, múltiples componentes afectados, riesgo moderado. Ej: integración con servicio externo.
- **13 puntos**: Tarea muy compleja, alta incertidumbre o riesgo. Debería considerarse dividirla.

## Proceso de estimación:

Sigue estos pasos en orden para estimar:

### Paso 1: Entender la tarea (Ticket)
Lee el título y descripción del ticket para comprender QUÉ hay que hacer. Esta es la base de la complejidad.

### Paso 2: Contexto crítico del usuario (si existe)
Si el usuario proporciona un comentario adicional, este contiene las CLAVES para entender la tarea correctamente. Presta especial atención a esta información.

### Paso 3: Posicionar en la arquitectura (Documentación de Arquitectura)
Usa los diagramas C4 y documentación de plataforma para entender DÓNDE encaja la tarea dentro de la arquitectura general y qué sistemas/servicios están involucrados.

### Paso 4: Entendimiento técnico fino (Contexto de Código)
Se te proporciona documentación de varios repositorios (READMEs de microservicios, etc.).
**IMPORTANTE**: Las tareas normalmente solo afectan a 1 o 2 repositorios. Identifica cuáles son los repos relevantes para esta tarea específica y usa SOLO esa documentación. IGNORA la información de repositorios que no están implicados en la tarea.

## Factores a considerar:

1. **Complejidad técnica**: ¿Cuántos repositorios/servicios están realmente afectados?
2. **Incertidumbre**: ¿Está claro qué hay que hacer o hay ambigüedad?
3. **Riesgo**: ¿Puede afectar a otras funcionalidades existentes?
4. **Dependencias**: ¿Depende de otros equipos o sistemas externos?
5. **Testing**: ¿Cuánto esfuerzo de pruebas requiere?

## Respuesta:

IMPORTANTE:
- Responde SOLO con un JSON válido, sin texto adicional
- El JSON debe tener exactamente esta estructura: {"points": number, "reasoning": "string"}
- "points" DEBE ser uno de estos valores: 1, 2, 3, 5, 8, 13
- En "reasoning", es importante que menciones en una primera línea qué repositorios/servicios identificaste como afectados o el alcance de la tarea. En una segunda línea explica brevemente (2-3 frases) por qué elegiste esa estimación
- Si no hay suficiente información, informa al usuario y estima con 13 puntos. No intentes adivinar, informa la incertidumbre.`

// RefinementPrompt instructs the model to produce a structured refinement.
const RefinementPrompt = `Eres un experto arquitecto software, metodologías ágiles y redacción de tickets.
Tu tarea es refinar un ticket de Jira para que esté completo y bien estructurado.

## Un ticket bien refinado debe incluir:

### 1. Título claro
- Conciso (menos de 10 palabras)
- Descriptivo: indica qué se va a hacer
- Evita formato de historia de usuario ("Como usuario...")
- Si el título actual es bueno, puedes mantenerlo (devuelve null)

### 2. Contexto
- Explica el problema o necesidad de negocio
- Proporciona background suficiente para entender POR QUÉ se hace esto
- Incluye información relevante sobre el estado actual

### 3. Tareas técnicas
- Lista de tareas específicas y accionables
- Cada tarea debe ser clara y medible
- Ordenadas de forma lógica (dependencias primero)
- Nivel de detalle técnico apropiado

### 4. Criterios de aceptación
- Condiciones específicas que deben cumplirse
- Escritos de forma verificable (se puede decir "sí" o "no")
- Cubren los casos principales y edge cases importantes

### 5. Notas adicionales (opcional)
- Referencias técnicas relevantes
- Consideraciones de seguridad o rendimiento
- Dependencias con otros tickets o sistemas

## Proceso de refinamiento:

### Paso 1: Analizar el ticket actual
Lee el título y descripción para entender la intención original.

### Paso 2: Contexto del usuario (si existe)
Si el usuario proporciona comentarios adicionales, úsalos para clarificar la intención. Tampoco lo tomes palabra por palabra ya que es posible que la redacción no sea perfecta.

### Paso 3: Contexto técnico
Usa la documentación técnica proporcionada según el tipo para entender el alcance de la tarea:
- Usa la documentación de arquitectura para entender la arquitectura general y cómo encaja la tarea en ella.
- Usa la documentación sobre código de los repositorios para entender el enfoque técnico de la tarea. Es probable que la tarea solo implique cambios en uno o dos repositorios, por lo que los que veas que no son relevantes, ignóralos.
- Qué consideraciones técnicas son relevantes

### Paso 4: Generar el refinamiento
Crea contenido estructurado basándote en toda la información disponible.

## Respuesta:

IMPORTANTE:
- Responde SOLO con un JSON válido, sin texto adicional antes o después
- El JSON debe tener exactamente esta estructura:
{
  "suggestedTitle": "string o null si mantener el actual",
  "context": "string con el contexto del ticket",
  "tasks": ["array", "de", "tareas"],
  "acceptanceCriteria": ["array", "de", "criterios"],
  "additionalNotes": "string o null si no hay notas",
  "warnings": ["array de warnings si no pudiste completar algo"],
  "isComplete": true/false
}
- Si no tienes suficiente información para algún campo, déjalo vacío y añade un warning
- "isComplete" es true solo si pudiste generar todos los campos sin warnings
- Todos los textos deben estar en español`

// noDescriptionPlaceholder substitutes a blank ticket description.
const noDescriptionPlaceholder = "Sin descripción disponible."

// BuildEstimationPrompt composes the estimation user message. The user
// context block goes before the repository context: user intent is the
// higher-priority signal.
func BuildEstimationPrompt(summary, description, repositoryContext, userContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Ticket a estimar:\n\n**Título:** %s\n\n**Descripción:**\n%s",
		summary, descriptionOrPlaceholder(description))

	if strings.TrimSpace(userContext) != "" {
		fmt.Fprintf(&b, "\n\n## ⚠️ CONTEXTO CRÍTICO DEL USUARIO:\n\n> %s\n\n"+
			"**IMPORTANTE**: El contexto anterior es información crítica proporcionada por el usuario. Debe tener un peso significativo en tu estimación.",
			userContext)
	}

	if strings.TrimSpace(repositoryContext) != "" {
		b.WriteString("\n\n" + repositoryContext)
	}

	b.WriteString("\n\nProporciona tu estimación en puntos Fibonacci (1, 2, 3, 5, 8, 13).")
	return b.String()
}

// BuildRefinementPrompt composes the refinement user message with the same
// block ordering as the estimation prompt.
func BuildRefinementPrompt(summary, description, repositoryContext, userContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Ticket a refinar:\n\n**Título actual:** %s\n\n**Descripción actual:**\n%s",
		summary, descriptionOrPlaceholder(description))

	if strings.TrimSpace(userContext) != "" {
		fmt.Fprintf(&b, "\n\n## Contexto adicional del usuario:\n\n> %s\n\n"+
			"**IMPORTANTE**: Este contexto proporciona información clave para entender mejor el ticket.",
			userContext)
	}

	if strings.TrimSpace(repositoryContext) != "" {
		b.WriteString("\n\n" + repositoryContext)
	}

	b.WriteString("\n\nGenera el refinamiento estructurado del ticket.")
	return b.String()
}

func descriptionOrPlaceholder(description string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return trimmed
	}
	return noDescriptionPlaceholder
}
