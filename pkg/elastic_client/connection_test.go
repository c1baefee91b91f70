package elastic_client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectWithoutAddress(t *testing.T) {
	t.Setenv("OPSCONSOLE_ELASTICSEARCH_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.Nil(t, Client)

	assert.ErrorIs(t, Connect(true), ErrNotConfigured)
}

func TestWeeklyIndexName(t *testing.T) {
	recordedAt := time.Date(2022, 6, 30, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "replay-requests-2022-26", WeeklyIndexName("replay-requests", recordedAt))

	indexPrefix = "staging-"
	t.Cleanup(func() { indexPrefix = "" })

	assert.Equal(t, "staging-replay-requests-2022-26", WeeklyIndexName("replay-requests", recordedAt))
	assert.Equal(t, "staging-replay-requests-2023-1", WeeklyIndexName("replay-requests", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestIndexRequestWithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		IndexRequest("replay-requests-2022-26", nil)
		WaitUntilQueueEmpty()
	})
}
