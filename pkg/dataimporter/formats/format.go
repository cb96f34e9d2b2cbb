package formats

import (
	"io"
)

// PlaceRecord is one row of a places dataset, identical in every supported file format
type PlaceRecord struct {
	ID          string  `json:"id" csv:"id" yaml:"id"`
	Name        string  `json:"name" csv:"name" yaml:"name"`
	LocalName   string  `json:"pl" csv:"pl" yaml:"pl"`
	CountryCode string  `json:"cc" csv:"cc" yaml:"cc"`
	Lat         float64 `json:"lat" csv:"lat" yaml:"lat"`
	Lng         float64 `json:"lng" csv:"lng" yaml:"lng"`
	Population  int     `json:"population" csv:"population" yaml:"population"`
}

type Format interface {
	ParseFile(io.Reader) error
	Records() []PlaceRecord
}
