package query

// Place resolves user entered text ("Kraków", "krakow (pl)") into a single place
type Place struct {
	Text string
}

type PlaceByID struct {
	ID string
}
