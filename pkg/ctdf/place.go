package ctdf

import "fmt"

// Place is a record of the static places dataset. Never mutated after loading.
type Place struct {
	ID          string   `groups:"basic"`
	Name        string   `groups:"basic"`
	LocalName   string   `groups:"basic"`
	CountryCode string   `groups:"basic"`
	Location    Location `groups:"basic"`
	Population  int      `groups:"detailed"`

	DataSource *DataSource `groups:"internal"`
}

// BaseName prefers the localised name
func (p *Place) BaseName() string {
	if p.LocalName != "" {
		return p.LocalName
	}
	return p.Name
}

func (p *Place) DisplayName() string {
	if p.CountryCode != "" {
		return fmt.Sprintf("%s (%s)", p.BaseName(), p.CountryCode)
	}
	return p.BaseName()
}

func (p *Place) Waypoint() Waypoint {
	return Waypoint{
		ID:          p.ID,
		DisplayName: p.BaseName(),
		Location:    p.Location,
	}
}
