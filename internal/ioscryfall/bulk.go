package ioscryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/mtgtools/deckconv/pkg/carddb"
)

// ImportStats summarizes one bulk import run.
type ImportStats struct {
	// Imported is the number of printings applied to the store.
	Imported int

	// Skipped is the number of dump objects that lacked a field the
	// local schema requires, e.g. funny cards with novelty rarities.
	Skipped int
}

// ImportBulk streams the configured bulk card dump from the source and
// populates the store with it. The dump is a single JSON array of
// printing objects, read object by object so the whole dump never sits
// in memory.
func (c *Client) ImportBulk(ctx context.Context) (*ImportStats, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.cfg.BulkDataURL, nil)
	if err != nil {
		return nil, carddb.SourceUnavailableError(
			"build bulk data request", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	// No client timeout here: streaming a multi-hundred-megabyte dump
	// legitimately outlives the per-request timeout.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, carddb.SourceUnavailableError(
			"download bulk data from "+c.cfg.BulkDataURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, carddb.SourceUnavailableError(
			fmt.Sprintf("%s returned HTTP %d",
				c.cfg.BulkDataURL, resp.StatusCode), nil)
	}

	slog.Info("Importing bulk card data",
		"url", c.cfg.BulkDataURL,
		"size", humanize.Bytes(uint64(max(resp.ContentLength, 0))))
	return c.importStream(ctx, resp.Body, resp.ContentLength)
}

// ImportBulkFile populates the store from a previously downloaded dump
// file.
func (c *Client) ImportBulkFile(
	ctx context.Context, path string,
) (*ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bulk data file: %w", err)
	}
	defer f.Close()

	var size int64 = -1
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	slog.Info("Importing bulk card data", "path", path)
	return c.importStream(ctx, f, size)
}

// importStream decodes printings from r and applies them to the store.
// Decoding and writing run as a two-stage pipeline so the JSON decoder
// is not stalled by store transactions.
func (c *Client) importStream(
	ctx context.Context, r io.Reader, size int64,
) (*ImportStats, error) {
	bar := pb.Full.Start64(max(size, 0))
	bar.Set("prefix", "Importing cards: ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	stats := &ImportStats{}
	cards := make(chan *scryfallCard, 64)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(cards)

		dec := json.NewDecoder(bar.NewProxyReader(r))
		// The dump is one big JSON array; consume its opening bracket.
		if _, err := dec.Token(); err != nil {
			return carddb.SourceUnavailableError(
				"malformed bulk data", err)
		}
		for dec.More() {
			card := &scryfallCard{}
			if err := dec.Decode(card); err != nil {
				return carddb.SourceUnavailableError(
					"malformed bulk data", err)
			}
			select {
			case cards <- card:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for card := range cards {
			if card.Lang != "" && card.Lang != "en" {
				stats.Skipped++
				continue
			}
			payload, ok := cardPayload(card)
			if !ok {
				stats.Skipped++
				continue
			}
			if err := c.store.ApplyBatch(ctx, payload); err != nil {
				// A single bad object must not sink the whole dump.
				if carddb.IsRecoverable(err) {
					stats.Skipped++
					continue
				}
				if kind, ok := carddb.KindOf(err); ok &&
					kind == carddb.IntegrityViolation {
					slog.Warn("Skipping printing",
						"card", card.Name, "error", err)
					stats.Skipped++
					continue
				}
				return err
			}
			stats.Imported++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Bulk import finished",
		"imported", humanize.Comma(int64(stats.Imported)),
		"skipped", humanize.Comma(int64(stats.Skipped)))
	return stats, nil
}
