package elastic_client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/util"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

// indexPrefix separates the indexes of several console deployments sharing one cluster
var indexPrefix string

var ErrNotConfigured = errors.New("OPSCONSOLE_ELASTICSEARCH_ADDRESS is not set")

// Connect sets up the bulk indexer. Without an address it is a no-op unless required is set.
func Connect(required bool) error {
	env := util.GetPrefixedEnvironmentVariables("OPSCONSOLE_ELASTICSEARCH_")

	if env["ADDRESS"] == "" {
		if required {
			return ErrNotConfigured
		}

		log.Info().Msg("Skipping Elasticsearch setup, replay requests will not be indexed")
		return nil
	}

	indexPrefix = env["INDEX_PREFIX"]

	tp := http.DefaultTransport.(*http.Transport).Clone()
	if env["INSECURE"] == "YES" {
		tp.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{env["ADDRESS"]},
		Username:  env["USERNAME"],
		Password:  env["PASSWORD"],
		Transport: tp,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	info, err := es.Info()
	if err != nil {
		return fmt.Errorf("elasticsearch info: %w", err)
	}
	info.Body.Close()
	if info.IsError() {
		return fmt.Errorf("elasticsearch info: %s", info.Status())
	}

	Client = es

	bulkIndexer, err = esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
		OnError: func(ctx context.Context, err error) {
			log.Error().Err(err).Msg("Bulk indexer failed")
		},
	})
	if err != nil {
		return err
	}

	log.Info().Str("address", env["ADDRESS"]).Str("prefix", indexPrefix).Msg("Elasticsearch client setup")

	return nil
}

// WeeklyIndexName is the ISO week index a document recorded at t belongs in, eg. replay-requests-2022-26
func WeeklyIndexName(name string, t time.Time) string {
	year, week := t.ISOWeek()

	return fmt.Sprintf("%s%s-%d-%d", indexPrefix, name, year, week)
}

func IndexRequest(indexName string, document io.ReadSeeker) {
	if Client == nil {
		return
	}

	bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:  indexName,
			Action: "index",
			Body:   document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
}

func WaitUntilQueueEmpty() {
	if bulkIndexer == nil {
		return
	}

	bulkIndexer.Close(context.Background())
}
