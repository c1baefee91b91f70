package query

import (
	"net/url"
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
)

type VehicleReplay struct {
	VehicleID   string
	ServiceDate string
	TimeType    ctdf.TimeType

	StartDateTime time.Time
	EndDateTime   time.Time
}

func (v *VehicleReplay) ToValues() url.Values {
	values := url.Values{}
	values.Set("serviceDate", v.ServiceDate)
	values.Set("timeType", string(v.TimeType))
	values.Set("startDateTime", v.StartDateTime.Format(time.RFC3339))
	values.Set("endDateTime", v.EndDateTime.Format(time.RFC3339))

	return values
}

func (v *VehicleReplay) ToBson() bson.M {
	return bson.M{
		"vehicleid": v.VehicleID,
		"timestamp": bson.M{
			"$gte": v.StartDateTime.Unix(),
			"$lte": v.EndDateTime.Unix(),
		},
	}
}
