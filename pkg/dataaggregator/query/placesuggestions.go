package query

type PlaceSuggestions struct {
	Text  string
	Limit int
}
