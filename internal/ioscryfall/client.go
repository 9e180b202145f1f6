// Package ioscryfall implements the carddb.SourceAdapter contract
// against the Scryfall card API. It fetches card payloads by exact
// name, routes every write through the store as a whole batch, and
// streams the bulk card dump for initial population.
package ioscryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/config"
)

// Client talks to the Scryfall API and syncs fetched payloads into the
// local store.
type Client struct {
	cfg   *config.ScryfallConfig
	store carddb.Store
	hc    *http.Client
}

var _ carddb.SourceAdapter = (*Client)(nil)

// New creates a Scryfall client writing through store.
func New(cfg *config.ScryfallConfig, store carddb.Store) *Client {
	return &Client{
		cfg:   cfg,
		store: store,
		hc:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Sync validates and applies a fetched payload as one atomic batch.
func (c *Client) Sync(ctx context.Context, payload *carddb.CardPayload) error {
	return c.store.ApplyBatch(ctx, payload)
}

// get performs one API request and decodes the body into out. Scryfall
// asks clients to keep 50-100ms between requests, so every call starts
// with the configured delay.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if c.cfg.RequestDelay > 0 {
		select {
		case <-time.After(c.cfg.RequestDelay):
		case <-ctx.Done():
			return carddb.SourceUnavailableError(
				"request to "+url+" canceled", ctx.Err())
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return carddb.SourceUnavailableError("build request to "+url, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return carddb.SourceUnavailableError("request to "+url+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiStatusError(resp, url)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return carddb.SourceUnavailableError(
			"malformed response from "+url, err)
	}
	return nil
}

// apiStatusError maps a non-200 response to the failure taxonomy. A
// not_found error object is surfaced as such by the caller; everything
// else, including rate limiting, means the source is unavailable.
func apiStatusError(resp *http.Response, url string) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil &&
		apiErr.Code == "not_found" {
		return errNotFound
	}
	return carddb.SourceUnavailableError(
		fmt.Sprintf("%s returned HTTP %d", url, resp.StatusCode), nil)
}

// errNotFound is an internal marker; FetchCardByName rewraps it with
// the card name.
var errNotFound = &carddb.Error{Kind: carddb.NotFound, Msg: "not found"}
