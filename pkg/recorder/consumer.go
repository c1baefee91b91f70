package recorder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const QueueName = "vehicle-events-queue"

type BulkWriter interface {
	BulkWrite(ctx context.Context, collection string, models []mongo.WriteModel) error
}

type MongoBulkWriter struct{}

func (w MongoBulkWriter) BulkWrite(ctx context.Context, collection string, models []mongo.WriteModel) error {
	startTime := time.Now()

	_, err := database.GetCollection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))

	log.Info().
		Str("collection", collection).
		Int("Length", len(models)).
		Str("Time", time.Since(startTime).String()).
		Msg("Bulk write")

	return err
}

type BatchConsumer struct {
	id     int
	Writer BulkWriter
}

func NewBatchConsumer(id int, writer BulkWriter) *BatchConsumer {
	return &BatchConsumer{id: id, Writer: writer}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	operations := map[string][]mongo.WriteModel{}
	var accepted rmq.Deliveries

	now := time.Now()

	for _, delivery := range batch {
		var recordedEvent RecordedEvent
		if err := json.Unmarshal([]byte(delivery.Payload()), &recordedEvent); err != nil {
			log.Error().Err(err).Int("consumer", consumer.id).Msg("Failed to decode recorded event")
			rejectDelivery(delivery)

			continue
		}

		collection, writeModel, err := recordedEvent.WriteModel(now)
		if err != nil {
			log.Error().Err(err).Int("consumer", consumer.id).Msg("Failed to archive recorded event")
			rejectDelivery(delivery)

			continue
		}

		operations[collection] = append(operations[collection], writeModel)
		accepted = append(accepted, delivery)
	}

	for collection, models := range operations {
		if err := consumer.Writer.BulkWrite(context.Background(), collection, models); err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Failed to bulk write recorded events")

			for _, err := range accepted.Reject() {
				log.Error().Err(err).Msg("Failed to reject recorded event")
			}

			return
		}
	}

	for _, err := range accepted.Ack() {
		log.Error().Err(err).Msg("Failed to ack recorded event")
	}
}

func rejectDelivery(delivery rmq.Delivery) {
	if err := delivery.Reject(); err != nil {
		log.Error().Err(err).Msg("Failed to reject recorded event")
	}
}
