package ctdf

// DataSource records which dataset file a record was imported from
type DataSource struct {
	OriginalFormat string `groups:"internal"` // json, csv or yaml
	Dataset        string `groups:"internal"`
	Identifier     string `groups:"internal"`
}
