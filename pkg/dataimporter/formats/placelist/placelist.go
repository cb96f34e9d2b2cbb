package placelist

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/smartroute/smartroute/pkg/dataimporter/formats"
	"gopkg.in/yaml.v3"
)

type JSON struct {
	records []formats.PlaceRecord
}

func (j *JSON) ParseFile(reader io.Reader) error {
	return json.NewDecoder(reader).Decode(&j.records)
}

func (j *JSON) Records() []formats.PlaceRecord {
	return j.records
}

type CSV struct {
	records []formats.PlaceRecord
}

func (c *CSV) ParseFile(reader io.Reader) error {
	// Optional columns may be missing from some rows
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	return gocsv.UnmarshalCSV(csvReader, &c.records)
}

func (c *CSV) Records() []formats.PlaceRecord {
	return c.records
}

type YAML struct {
	records []formats.PlaceRecord
}

func (y *YAML) ParseFile(reader io.Reader) error {
	return yaml.NewDecoder(reader).Decode(&y.records)
}

func (y *YAML) Records() []formats.PlaceRecord {
	return y.records
}
