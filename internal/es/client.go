// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package es

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/elastic/scrollcat/internal/feed"
)

// Client pages documents out of an index for the scroll surface.
//
// Sequential pages resume with search_after from the last hit of the
// previous page, so paging is not capped by index.max_result_window.
// Any other offset falls back to from/size.
type Client struct {
	es       *elasticsearch.Client
	index    string
	query    string
	lookback string
	sortAsc  bool

	mu     sync.Mutex
	cursor pageCursor
}

// pageCursor is where the next sequential page starts.
type pageCursor struct {
	offset int
	after  []json.RawMessage
}

// Options configures a Client.
type Options struct {
	Addresses []string
	Index     string
	APIKey    string
	Username  string
	Password  string
	Query     string // Optional query_string filter
	Lookback  string // ES time range like "now-1h"; empty means all time
	SortAsc   bool   // true = oldest first
}

// New creates a new Elasticsearch client
func New(opts Options) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: opts.Addresses,
		APIKey:    opts.APIKey,
		Username:  opts.Username,
		Password:  opts.Password,
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}

	return &Client{
		es:       es,
		index:    opts.Index,
		query:    opts.Query,
		lookback: opts.Lookback,
		sortAsc:  opts.SortAsc,
	}, nil
}

// Compile-time check that Client is a page source.
var _ feed.Source = (*Client)(nil)

// Name returns the index pattern being paged.
func (c *Client) Name() string {
	return c.index
}

// Ping checks if Elasticsearch is reachable
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping ES: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ES ping failed: %s", res.Status())
	}

	return nil
}

// Fetch returns documents [offset, offset+limit) sorted by @timestamp, with
// _doc breaking ties.
func (c *Client) Fetch(ctx context.Context, offset, limit int) (feed.Page, error) {
	c.mu.Lock()
	var after []json.RawMessage
	if offset > 0 && offset == c.cursor.offset {
		after = c.cursor.after
	}
	c.mu.Unlock()

	from := offset
	if after != nil {
		from = 0
	}

	query := buildPageQuery(c.query, c.lookback, after)

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return feed.Page{}, fmt.Errorf("failed to marshal query: %w", err)
	}

	order := "desc"
	if c.sortAsc {
		order = "asc"
	}

	body, status, isError, err := doSearch(ctx, c.es, searchRequest{
		index: c.index,
		query: queryJSON,
		from:  from,
		size:  limit,
		sort:  []string{"@timestamp:" + order, "_doc:" + order},
	})
	if err != nil {
		return feed.Page{}, fmt.Errorf("failed to search: %w", err)
	}
	defer body.Close()

	if isError {
		respBody, _ := io.ReadAll(body)
		return feed.Page{}, formatQueryError(status, respBody, queryJSON)
	}

	res, err := parseSearchResponse(body, c.index)
	if err != nil {
		return feed.Page{}, err
	}

	if len(res.lastSort) > 0 {
		c.mu.Lock()
		c.cursor = pageCursor{offset: offset + len(res.items), after: res.lastSort}
		c.mu.Unlock()
	}

	return feed.Page{
		Items: res.items,
		Total: res.total,
		Done:  len(res.items) < limit || int64(offset+len(res.items)) >= res.total,
	}, nil
}
