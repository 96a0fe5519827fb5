package models

// SourceCategory classifies fetched repository documentation.
type SourceCategory string

const (
	// CategoryCode marks implementation documentation (READMEs, source docs).
	CategoryCode SourceCategory = "code"
	// CategoryDocs marks architecture and process documentation.
	CategoryDocs SourceCategory = "docs"
)

// LoadedFile is one successfully fetched repository file.
type LoadedFile struct {
	Owner    string
	Repo     string
	Path     string
	Ref      string
	Category SourceCategory
	Content  string
}

// ContextResult aggregates the repository documentation loaded for a
// command. Content is the formatted block handed to the LLM prompt;
// LoadedFiles is the manifest shown in verbose mode.
type ContextResult struct {
	Content     string
	LoadedFiles []LoadedFile
}
