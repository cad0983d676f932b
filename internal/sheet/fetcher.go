package sheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/natpakans-stack/carpark-live-dashboard/config"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// retryBackoff is the pause between transport-level retries of one fetch.
const retryBackoff = 2 * time.Second

// Fetcher downloads the published CSV export.
type Fetcher struct {
	cfg    *config.SourceConfig
	client *http.Client
}

// NewFetcher builds a fetcher from the source configuration. A configured
// proxy is used when it parses; otherwise the fetcher falls back to a direct
// connection with a warning.
func NewFetcher(cfg *config.SourceConfig) *Fetcher {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Fetcher will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// FetchRows downloads and parses the current sheet contents. Transient
// transport failures are retried with a constant backoff up to the
// configured attempt limit; the context cancels the whole operation.
func (f *Fetcher) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.CSVURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	}

	err := backoff.Retry(
		operation,
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(retryBackoff), uint64(f.cfg.MaxRetries)),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return ParseCSV(bytes.NewReader(body))
}
