// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"sync"
)

// DefaultPageSize is used when a Pager is created with a non-positive size.
const DefaultPageSize = 200

// FetchFunc performs one page load.
type FetchFunc func(ctx context.Context) (Page, error)

// Pager walks a Source page by page. At most one load is in flight; further
// requests are ignored until Complete is called. This is the guard the scroll
// surface leaves to its caller.
type Pager struct {
	mu       sync.Mutex
	src      Source
	size     int
	offset   int
	total    int64
	inFlight bool
	done     bool
	lastErr  error
}

// NewPager returns a pager positioned at offset 0.
func NewPager(src Source, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{src: src, size: pageSize, total: -1}
}

// Begin reserves the next load and returns a closure that performs it.
// ok is false while a load is in flight or after the source is exhausted.
func (p *Pager) Begin() (fetch FetchFunc, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight || p.done {
		return nil, false
	}
	p.inFlight = true
	offset, size := p.offset, p.size

	return func(ctx context.Context) (Page, error) {
		return p.src.Fetch(ctx, offset, size)
	}, true
}

// Complete records the outcome of the load started by Begin. On error the
// offset is unchanged so the same page can be requested again.
func (p *Pager) Complete(page Page, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inFlight = false
	p.lastErr = err
	if err != nil {
		return
	}
	p.offset += len(page.Items)
	if page.Total >= 0 {
		p.total = page.Total
	}
	if page.Done || (len(page.Items) == 0 && !p.Following()) {
		p.done = true
	}
}

// Following reports whether the source may grow after returning an empty page.
func (p *Pager) Following() bool {
	f, ok := p.src.(interface{ Following() bool })
	return ok && f.Following()
}

// Status is a snapshot of the pager state.
type Status struct {
	Loaded   int
	Total    int64
	InFlight bool
	Done     bool
	Err      error
}

// Status returns the current state.
func (p *Pager) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		Loaded:   p.offset,
		Total:    p.total,
		InFlight: p.inFlight,
		Done:     p.done,
		Err:      p.lastErr,
	}
}

// Source returns the underlying source.
func (p *Pager) Source() Source {
	return p.src
}

// PageSize returns the number of items requested per load.
func (p *Pager) PageSize() int {
	return p.size
}
