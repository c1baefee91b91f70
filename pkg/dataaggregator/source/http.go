package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const defaultMaxRetries = 3

// HTTPFetcher performs GET requests against the upstream REST APIs, retrying on 5xx and 429
type HTTPFetcher struct {
	Client *http.Client

	MaxRetries      uint64
	InitialInterval time.Duration
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:          &http.Client{Timeout: 30 * time.Second},
		MaxRetries:      defaultMaxRetries,
		InitialInterval: 250 * time.Millisecond,
	}
}

func (f *HTTPFetcher) backOff(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if f.InitialInterval > 0 {
		exponential.InitialInterval = f.InitialInterval
	}

	return backoff.WithContext(backoff.WithMaxRetries(exponential, f.MaxRetries), ctx)
}

// GetJSON fetches requestURL and decodes the JSON body into out
func (f *HTTPFetcher) GetJSON(ctx context.Context, requestURL string, out any) error {
	return f.get(ctx, requestURL, "application/json", func(body io.Reader) error {
		return json.NewDecoder(body).Decode(out)
	})
}

// GetBytes fetches requestURL and returns the raw body, eg. a protobuf feed
func (f *HTTPFetcher) GetBytes(ctx context.Context, requestURL string) ([]byte, error) {
	var content []byte

	err := f.get(ctx, requestURL, "*/*", func(body io.Reader) error {
		var err error
		content, err = io.ReadAll(body)

		return err
	})

	return content, err
}

func (f *HTTPFetcher) get(ctx context.Context, requestURL string, accept string, decode func(io.Reader) error) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", accept)

		resp, err := client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return backoff.Permanent(err)
			}

			return &NetworkFailure{URL: requestURL, Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(NotFoundError)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return &NetworkFailure{URL: requestURL, StatusCode: resp.StatusCode}
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return backoff.Permanent(&NetworkFailure{URL: requestURL, StatusCode: resp.StatusCode})
		}

		if err := decode(resp.Body); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response from %s: %w", requestURL, err))
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", requestURL).Str("retry", wait.String()).Msg("Upstream request failed")
	}

	return backoff.RetryNotify(operation, f.backOff(ctx), notify)
}
