package replay

import (
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/util"
)

type ExportRow struct {
	ID             string `csv:"id"`
	Type           string `csv:"type"`
	Timestamp      int64  `csv:"timestamp"`
	Datetime       string `csv:"datetime"`
	TripID         string `csv:"trip_id"`
	RouteID        string `csv:"route_id"`
	RouteShortName string `csv:"route_short_name"`
	Latitude       string `csv:"latitude"`
	Longitude      string `csv:"longitude"`
	Speed          string `csv:"speed"`
	Bearing        string `csv:"bearing"`
}

func NewExportRows(events []*ctdf.VehicleEvent, location *time.Location) []*ExportRow {
	rows := make([]*ExportRow, 0, len(events))

	for _, event := range events {
		datetime, _ := util.FormatUnixDatetime(strconv.FormatInt(event.Timestamp, 10), location)

		row := &ExportRow{
			ID:             event.ID,
			Type:           string(event.Type),
			Timestamp:      event.Timestamp,
			Datetime:       datetime,
			TripID:         event.TripID,
			RouteID:        event.RouteID,
			RouteShortName: event.RouteShortName,
		}

		if event.HasLocation() {
			row.Latitude = strconv.FormatFloat(*event.Position.Latitude, 'f', -1, 64)
			row.Longitude = strconv.FormatFloat(*event.Position.Longitude, 'f', -1, 64)
		}
		if event.Position != nil {
			row.Speed = strconv.FormatFloat(event.Position.Speed, 'f', -1, 64)
			row.Bearing = strconv.FormatFloat(event.Position.Bearing, 'f', -1, 64)
		}

		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes the events in timeline order with times shown in the given location
func WriteCSV(out io.Writer, events []*ctdf.VehicleEvent, location *time.Location) error {
	return gocsv.Marshal(NewExportRows(SortEvents(events), location), out)
}
