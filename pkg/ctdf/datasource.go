package ctdf

type DataSource struct {
	OriginalFormat string `groups:"internal"` // eg. GTFS-RT, JSON
	Provider       string `groups:"internal"`
	Dataset        string `groups:"internal"`
	Identifier     string `groups:"internal"`
}
