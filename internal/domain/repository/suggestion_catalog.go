package repository

// SuggestionCatalog looks up optimization suggestions by service name.
// Unknown services get a generic fallback list, never an empty one.
type SuggestionCatalog interface {
	Suggestions(service string) []string
}
