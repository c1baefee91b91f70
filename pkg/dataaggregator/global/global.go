package global

import (
	"github.com/travigo/opsconsole/pkg/config"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source/databaselookup"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source/opsapi"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source/triphistory"
	"github.com/travigo/opsconsole/pkg/database"
	"github.com/travigo/opsconsole/pkg/redis_client"
)

// Setup registers the sources in lookup order: the recorder archive, the operations API and the
// trip history backend
func Setup(cfg *config.Config) (*dataaggregator.Aggregator, error) {
	cutover, err := cfg.TripHistoryCutover()
	if err != nil {
		return nil, err
	}

	strategy := source.SearchStrategy{
		UseTripHistory:         cfg.UseTripHistory,
		TripHistoryEnabledFrom: cutover,
	}
	fetcher := source.NewHTTPFetcher()

	aggregator := dataaggregator.New()

	if cfg.UseArchive && database.IsConnected() {
		aggregator.RegisterSource(databaselookup.Source{})
	}

	opsAPISource := opsapi.Source{
		BaseURL:  cfg.APIBaseURL,
		Fetcher:  fetcher,
		Strategy: strategy,
	}
	if redis_client.Client != nil {
		aggregator.RegisterSource(cachedresults.NewSource(opsAPISource, redis_client.Client, cfg.CacheTTL))
	} else {
		aggregator.RegisterSource(opsAPISource)
	}

	aggregator.RegisterSource(triphistory.Source{
		BaseURL:  cfg.HistoryBaseURL,
		Fetcher:  fetcher,
		Strategy: strategy,
	})

	return aggregator, nil
}
