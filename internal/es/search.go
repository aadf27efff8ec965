// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/elastic/scrollcat/internal/feed"
)

type searchRequest struct {
	index string
	query []byte
	from  int
	size  int
	sort  []string
}

// doSearch executes a paged search request.
func doSearch(ctx context.Context, client *elasticsearch.Client, req searchRequest) (io.ReadCloser, string, bool, error) {
	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(req.index),
		client.Search.WithBody(bytes.NewReader(req.query)),
		client.Search.WithFrom(req.from),
		client.Search.WithSize(req.size),
		client.Search.WithSort(req.sort...),
		client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to execute search: %w", err)
	}
	return res.Body, res.Status(), res.IsError(), nil
}

// buildPageQuery constructs the query body shared by every page. A non-empty
// after resumes from the sort values of the previous page's last hit.
func buildPageQuery(queryStr, lookback string, after []json.RawMessage) map[string]interface{} {
	q := buildFilter(queryStr, lookback)
	if len(after) > 0 {
		q["search_after"] = after
	}
	return q
}

func buildFilter(queryStr, lookback string) map[string]interface{} {
	var must []map[string]interface{}

	if lookback != "" {
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{
				"@timestamp": map[string]interface{}{"gte": lookback},
			},
		})
	}
	if queryStr != "" {
		must = append(must, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":            queryStr,
				"default_operator": "AND",
			},
		})
	}

	if len(must) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
}

type searchResult struct {
	items []feed.Item
	total int64
	// lastSort holds the sort values of the last hit, used as the next
	// page's search_after.
	lastSort []json.RawMessage
}

func parseSearchResponse(body io.Reader, index string) (searchResult, error) {
	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Index  string            `json:"_index"`
				Source json.RawMessage   `json:"_source"`
				Sort   []json.RawMessage `json:"sort"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return searchResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	res := searchResult{total: response.Hits.Total.Value}
	if n := len(response.Hits.Hits); n > 0 {
		res.lastSort = response.Hits.Hits[n-1].Sort
	}

	items := make([]feed.Item, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		var raw map[string]interface{}
		if err := json.Unmarshal(hit.Source, &raw); err != nil {
			continue
		}
		item := extractItem(raw)
		item.Raw = string(hit.Source)
		item.Source = hit.Index
		if item.Source == "" {
			item.Source = index
		}
		items = append(items, item)
	}
	res.items = items

	return res, nil
}
