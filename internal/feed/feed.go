// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package feed provides paged record sources for the scroll surface and the
// guard that keeps "load more" requests from overlapping.
package feed

import (
	"context"
	"strings"
	"time"
)

// Item is a single record shown in the list.
type Item struct {
	Timestamp time.Time `json:"@timestamp"`
	Level     string    `json:"level,omitempty"`
	Service   string    `json:"service,omitempty"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"` // filename or index
	Raw       string    `json:"-"`
}

// Line returns a single-line rendering of the item for clipboard and plain output.
func (i Item) Line() string {
	var b strings.Builder
	if !i.Timestamp.IsZero() {
		b.WriteString(i.Timestamp.Format(time.RFC3339))
		b.WriteByte(' ')
	}
	if i.Level != "" {
		b.WriteString(strings.ToUpper(i.Level))
		b.WriteByte(' ')
	}
	if i.Service != "" {
		b.WriteString("[" + i.Service + "] ")
	}
	b.WriteString(strings.ReplaceAll(i.Message, "\n", " "))
	return b.String()
}

// Page is one batch of items returned by a Source.
type Page struct {
	Items []Item
	Total int64 // Total items available, or -1 when unknown
	Done  bool  // No items exist past this page
}

// Source returns items in a stable order, addressed by offset.
type Source interface {
	Fetch(ctx context.Context, offset, limit int) (Page, error)
	Name() string
}
