package query

import (
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const DefaultPositionPageSize = 500

// VehiclePositions is one page of the position history of a vehicle
type VehiclePositions struct {
	VehicleID string

	StartDateTime time.Time
	EndDateTime   time.Time

	Page  int
	Limit int
}

func (v *VehiclePositions) PageSize() int {
	if v.Limit <= 0 {
		return DefaultPositionPageSize
	}

	return v.Limit
}

func (v *VehiclePositions) Skip() int {
	return v.Page * v.PageSize()
}

func (v *VehiclePositions) ToValues() url.Values {
	values := url.Values{}
	values.Set("startDateTime", v.StartDateTime.Format(time.RFC3339))
	values.Set("endDateTime", v.EndDateTime.Format(time.RFC3339))
	values.Set("skip", strconv.Itoa(v.Skip()))
	values.Set("page", strconv.Itoa(v.Page))
	values.Set("limit", strconv.Itoa(v.PageSize()))

	return values
}

// ToBson matches on the numeric copy of the timestamp written by the recorder
func (v *VehiclePositions) ToBson() bson.M {
	return bson.M{
		"vehicleid": v.VehicleID,
		"unixtimestamp": bson.M{
			"$gte": v.StartDateTime.Unix(),
			"$lte": v.EndDateTime.Unix(),
		},
	}
}

// CacheKey identifies the page in the results cache
func (v *VehiclePositions) CacheKey() string {
	return "positions:" + v.VehicleID + ":" + strconv.FormatInt(v.StartDateTime.Unix(), 10) + ":" + strconv.FormatInt(v.EndDateTime.Unix(), 10) + ":" + strconv.Itoa(v.Page) + ":" + strconv.Itoa(v.PageSize())
}
