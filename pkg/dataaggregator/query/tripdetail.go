package query

import "go.mongodb.org/mongo-driver/bson"

type TripDetail struct {
	TripID string
}

func (t *TripDetail) ToBson() bson.M {
	if t.TripID != "" {
		return bson.M{"id": t.TripID}
	}

	return nil
}

func (t *TripDetail) CacheKey() string {
	return "trip:" + t.TripID
}
