// Package platform provides record types and a REST client for the data
// platform API. The client fetches raw dataflow, dataset, and card records;
// lineage analysis over those records lives in internal/lineage.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors for API failure classes callers may want to branch on.
var (
	ErrUnauthorized = errors.New("platform: unauthorized")
	ErrNotFound     = errors.New("platform: not found")
)

// defaultPageSize is the number of records requested per page.
const defaultPageSize = 50

// Client talks to the platform REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithPageSize overrides the pagination window.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a client for the given API base URL and access token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot bundles one full fetch of the three record collections.
type Snapshot struct {
	Dataflows []Dataflow
	Datasets  []Dataset
	Cards     []Card
	FetchedAt time.Time
}

// FetchAll fetches dataflows, datasets, and cards concurrently and returns
// them as a single snapshot.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{FetchedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		flows, err := c.ListDataflows(ctx)
		if err != nil {
			return fmt.Errorf("fetching dataflows: %w", err)
		}
		snap.Dataflows = flows
		return nil
	})
	g.Go(func() error {
		datasets, err := c.ListDatasets(ctx)
		if err != nil {
			return fmt.Errorf("fetching datasets: %w", err)
		}
		snap.Datasets = datasets
		return nil
	})
	g.Go(func() error {
		cards, err := c.ListCards(ctx)
		if err != nil {
			return fmt.Errorf("fetching cards: %w", err)
		}
		snap.Cards = cards
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("snapshot fetched",
		"dataflows", len(snap.Dataflows),
		"datasets", len(snap.Datasets),
		"cards", len(snap.Cards))
	return snap, nil
}

// ListDataflows fetches all dataflow records, following pagination.
func (c *Client) ListDataflows(ctx context.Context) ([]Dataflow, error) {
	return listPaged[Dataflow](ctx, c, "/v1/dataflows")
}

// ListDatasets fetches all dataset records, following pagination.
func (c *Client) ListDatasets(ctx context.Context) ([]Dataset, error) {
	return listPaged[Dataset](ctx, c, "/v1/datasets")
}

// ListCards fetches all card records, following pagination.
func (c *Client) ListCards(ctx context.Context) ([]Card, error) {
	return listPaged[Card](ctx, c, "/v1/cards")
}

// listPaged walks limit/offset pages until a short page signals the end.
func listPaged[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	for offset := 0; ; offset += c.pageSize {
		var page []T
		if err := c.getJSON(ctx, path, offset, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

func (c *Client) getJSON(ctx context.Context, path string, offset int, v any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: GET %s returned %d", ErrUnauthorized, path, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: GET %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform: GET %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
