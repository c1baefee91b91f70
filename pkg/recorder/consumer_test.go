package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/adjust/rmq/v5"
	"github.com/stretchr/testify/assert"
	"github.com/travigo/opsconsole/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeBulkWriter struct {
	writes map[string]int
	err    error
}

func (w *fakeBulkWriter) BulkWrite(ctx context.Context, collection string, models []mongo.WriteModel) error {
	if w.err != nil {
		return w.err
	}

	if w.writes == nil {
		w.writes = map[string]int{}
	}
	w.writes[collection] += len(models)

	return nil
}

func testDeliveries(payloads ...string) ([]*rmq.TestDelivery, rmq.Deliveries) {
	var testDeliveries []*rmq.TestDelivery
	var deliveries rmq.Deliveries

	for _, payload := range payloads {
		delivery := rmq.NewTestDeliveryString(payload)

		testDeliveries = append(testDeliveries, delivery)
		deliveries = append(deliveries, delivery)
	}

	return testDeliveries, deliveries
}

const (
	statusPayload   = `{"kind": "status", "vehicleId": "bus-7", "event": {"id": "e1", "type": "signOn", "timestamp": 1656614337}}`
	positionPayload = `{"kind": "position", "vehicleId": "bus-7", "position": {"latitude": 51.5, "longitude": -0.1, "timestamp": "1656614337"}}`
)

func TestBatchConsumer(t *testing.T) {
	writer := &fakeBulkWriter{}
	consumer := NewBatchConsumer(0, writer)

	testDeliveries, deliveries := testDeliveries(
		statusPayload,
		positionPayload,
		`not json`,
		`{"kind": "position", "vehicleId": "bus-7"}`,
		positionPayload,
	)

	consumer.Consume(deliveries)

	assert.Equal(t, map[string]int{
		database.VehicleEventsCollection:    1,
		database.VehiclePositionsCollection: 2,
	}, writer.writes)

	assert.Equal(t, rmq.Acked, testDeliveries[0].State)
	assert.Equal(t, rmq.Acked, testDeliveries[1].State)
	assert.Equal(t, rmq.Rejected, testDeliveries[2].State)
	assert.Equal(t, rmq.Rejected, testDeliveries[3].State)
	assert.Equal(t, rmq.Acked, testDeliveries[4].State)
}

func TestBatchConsumerWriteFailure(t *testing.T) {
	consumer := NewBatchConsumer(0, &fakeBulkWriter{err: errors.New("connection reset")})

	testDeliveries, deliveries := testDeliveries(statusPayload, positionPayload)

	consumer.Consume(deliveries)

	for _, delivery := range testDeliveries {
		assert.Equal(t, rmq.Rejected, delivery.State)
	}
}
