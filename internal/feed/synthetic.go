// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"fmt"
	"time"
)

var (
	syntheticLevels   = []string{"INFO", "INFO", "DEBUG", "WARN", "INFO", "ERROR"}
	syntheticServices = []string{"checkout", "cart", "frontend", "payments", "shipping"}
	syntheticVerbs    = []string{"handled request", "cache miss", "retrying upstream", "flushed batch", "opened session"}
)

// Synthetic generates deterministic records. Count < 0 means unbounded.
type Synthetic struct {
	Count int
	Start time.Time
	Step  time.Duration
}

// NewSynthetic returns a generator of count records one second apart.
func NewSynthetic(count int) *Synthetic {
	return &Synthetic{
		Count: count,
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Step:  time.Second,
	}
}

func (s *Synthetic) Name() string { return "synthetic" }

// Fetch returns records [offset, offset+limit) clipped to Count.
func (s *Synthetic) Fetch(ctx context.Context, offset, limit int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if offset < 0 || limit < 0 {
		return Page{}, fmt.Errorf("invalid page offset=%d limit=%d", offset, limit)
	}

	end := offset + limit
	total := int64(-1)
	if s.Count >= 0 {
		total = int64(s.Count)
		end = min(end, s.Count)
	}

	page := Page{Total: total}
	for i := offset; i < end; i++ {
		page.Items = append(page.Items, s.item(i))
	}
	page.Done = s.Count >= 0 && end >= s.Count
	return page, nil
}

func (s *Synthetic) item(i int) Item {
	return Item{
		Timestamp: s.Start.Add(time.Duration(i) * s.Step),
		Level:     syntheticLevels[i%len(syntheticLevels)],
		Service:   syntheticServices[i%len(syntheticServices)],
		Message:   fmt.Sprintf("#%d %s", i, syntheticVerbs[i%len(syntheticVerbs)]),
		Source:    s.Name(),
	}
}
