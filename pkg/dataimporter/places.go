package dataimporter

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/dataimporter/formats"
	"github.com/smartroute/smartroute/pkg/dataimporter/formats/placelist"
)

//go:embed data/cities-eu.json
var defaultPlaces []byte

const DefaultDataset = "cities-eu"

func getFormat(format string) (formats.Format, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return &placelist.JSON{}, nil
	case "csv":
		return &placelist.CSV{}, nil
	case "yaml", "yml":
		return &placelist.YAML{}, nil
	default:
		return nil, fmt.Errorf("unsupported places format %q", format)
	}
}

// LoadPlaces reads the dataset at path, picking the format from the file extension.
// An empty path loads the bundled European cities.
func LoadPlaces(path string) ([]*ctdf.Place, error) {
	datasource := &ctdf.DataSource{
		Identifier: time.Now().Format(time.RFC3339),
	}

	if path == "" {
		datasource.OriginalFormat = "json"
		datasource.Dataset = DefaultDataset

		return ImportPlaces(bytes.NewReader(defaultPlaces), datasource.OriginalFormat, datasource)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	datasource.OriginalFormat = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	datasource.Dataset = path

	return ImportPlaces(file, datasource.OriginalFormat, datasource)
}

func ImportPlaces(reader io.Reader, format string, datasource *ctdf.DataSource) ([]*ctdf.Place, error) {
	formatParser, err := getFormat(format)
	if err != nil {
		return nil, err
	}

	if err := formatParser.ParseFile(reader); err != nil {
		return nil, fmt.Errorf("parse %s places: %w", format, err)
	}

	records := formatParser.Records()
	places := make([]*ctdf.Place, 0, len(records))
	skipped := 0

	for index, record := range records {
		place, err := recordToPlace(index, record, datasource)
		if err != nil {
			log.Debug().Err(err).Int("row", index).Msg("Skipping place record")
			skipped++
			continue
		}

		places = append(places, place)
	}

	log.Info().
		Str("format", format).
		Int("places", len(places)).
		Int("skipped", skipped).
		Msg("Loaded places dataset")

	return places, nil
}

func recordToPlace(index int, record formats.PlaceRecord, datasource *ctdf.DataSource) (*ctdf.Place, error) {
	place := &ctdf.Place{}
	if err := copier.Copy(place, &record); err != nil {
		return nil, err
	}

	place.ID = strings.TrimSpace(place.ID)
	place.Name = strings.TrimSpace(place.Name)
	place.LocalName = strings.TrimSpace(place.LocalName)
	place.CountryCode = strings.ToUpper(strings.TrimSpace(place.CountryCode))

	if place.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if record.Lat < -90 || record.Lat > 90 || record.Lng < -180 || record.Lng > 180 {
		return nil, fmt.Errorf("coordinates %v,%v out of range", record.Lat, record.Lng)
	}

	if place.ID == "" {
		place.ID = fmt.Sprintf("place-%d", index)
	}
	if place.LocalName == place.Name {
		place.LocalName = ""
	}

	place.Location = ctdf.NewLocation(record.Lat, record.Lng)
	place.DataSource = datasource

	return place, nil
}
