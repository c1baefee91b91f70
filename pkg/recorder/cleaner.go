package recorder

import (
	"context"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/redis_client"
)

const cleanInterval = 5 * time.Minute

// StartCleaner returns deliveries of dead consumers back to their queues until ctx is done
func StartCleaner(ctx context.Context) {
	cleaner := rmq.NewCleaner(redis_client.QueueConnection)

	log.Info().Str("queue", QueueName).Msg("Starting queue cleaner process")

	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			returned, err := cleaner.Clean()
			if err != nil {
				log.Error().Err(err).Msg("Failed to clean")
				continue
			}

			if returned != 0 {
				log.Info().Msgf("Cleaned %d records", returned)
			}
		}
	}
}
