// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSyntheticFetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		offset    int
		limit     int
		wantLen   int
		wantDone  bool
		wantTotal int64
	}{
		{name: "first page", count: 10, offset: 0, limit: 4, wantLen: 4, wantTotal: 10},
		{name: "last partial page", count: 10, offset: 8, limit: 4, wantLen: 2, wantDone: true, wantTotal: 10},
		{name: "exact end", count: 8, offset: 4, limit: 4, wantLen: 4, wantDone: true, wantTotal: 8},
		{name: "past the end", count: 3, offset: 5, limit: 4, wantLen: 0, wantDone: true, wantTotal: 3},
		{name: "unbounded", count: -1, offset: 1000, limit: 5, wantLen: 5, wantTotal: -1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			page, err := NewSynthetic(tc.count).Fetch(context.Background(), tc.offset, tc.limit)
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if len(page.Items) != tc.wantLen || page.Done != tc.wantDone || page.Total != tc.wantTotal {
				t.Fatalf("page = (len %d, done %v, total %d), want (%d, %v, %d)",
					len(page.Items), page.Done, page.Total, tc.wantLen, tc.wantDone, tc.wantTotal)
			}
			if tc.wantLen > 0 && !strings.HasPrefix(page.Items[0].Message, "#") {
				t.Errorf("unexpected message %q", page.Items[0].Message)
			}
		})
	}
}

func TestSyntheticIsDeterministic(t *testing.T) {
	t.Parallel()

	s := NewSynthetic(100)
	a, _ := s.Fetch(context.Background(), 10, 1)
	b, _ := s.Fetch(context.Background(), 10, 1)
	if a.Items[0] != b.Items[0] {
		t.Fatalf("items differ: %+v vs %+v", a.Items[0], b.Items[0])
	}
	if want := s.Start.Add(10 * time.Second); !a.Items[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", a.Items[0].Timestamp, want)
	}
}

func TestSyntheticRejectsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSynthetic(10).Fetch(ctx, 0, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestItemLine(t *testing.T) {
	t.Parallel()

	it := Item{
		Timestamp: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Level:     "warn",
		Service:   "cart",
		Message:   "two\nlines",
	}
	if got, want := it.Line(), "2026-02-03T04:05:06Z WARN [cart] two lines"; got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
	if got := (Item{Message: "bare"}).Line(); got != "bare" {
		t.Fatalf("Line() = %q, want bare", got)
	}
}

type failingSource struct {
	calls int
	fail  bool
}

func (f *failingSource) Name() string { return "failing" }

func (f *failingSource) Fetch(ctx context.Context, offset, limit int) (Page, error) {
	f.calls++
	if f.fail {
		return Page{}, errors.New("boom")
	}
	return Page{Items: make([]Item, limit), Total: -1}, nil
}

func TestPagerGuardsInFlight(t *testing.T) {
	t.Parallel()

	p := NewPager(NewSynthetic(5), 2)

	fetch, ok := p.Begin()
	if !ok {
		t.Fatalf("first Begin should start a load")
	}
	if _, again := p.Begin(); again {
		t.Fatalf("Begin must refuse while a load is in flight")
	}
	if !p.Status().InFlight {
		t.Fatalf("Status().InFlight = false during load")
	}

	page, err := fetch(context.Background())
	p.Complete(page, err)

	st := p.Status()
	if st.InFlight || st.Loaded != 2 || st.Total != 5 || st.Done {
		t.Fatalf("Status() = %+v, want 2 loaded of 5", st)
	}

	for {
		fetch, ok := p.Begin()
		if !ok {
			break
		}
		page, err := fetch(context.Background())
		p.Complete(page, err)
	}
	if st := p.Status(); !st.Done || st.Loaded != 5 {
		t.Fatalf("Status() = %+v, want done with 5 loaded", st)
	}
}

func TestPagerRetriesAfterError(t *testing.T) {
	t.Parallel()

	src := &failingSource{fail: true}
	p := NewPager(src, 3)

	fetch, _ := p.Begin()
	page, err := fetch(context.Background())
	p.Complete(page, err)

	st := p.Status()
	if st.Err == nil || st.Loaded != 0 || st.Done || st.InFlight {
		t.Fatalf("Status() after error = %+v", st)
	}

	src.fail = false
	fetch, ok := p.Begin()
	if !ok {
		t.Fatalf("Begin should allow a retry after an error")
	}
	page, err = fetch(context.Background())
	p.Complete(page, err)
	if st := p.Status(); st.Err != nil || st.Loaded != 3 {
		t.Fatalf("Status() after retry = %+v", st)
	}
	if src.calls != 2 {
		t.Fatalf("source called %d times, want 2", src.calls)
	}
}

func TestPagerEmptyPageEndsStaticSource(t *testing.T) {
	t.Parallel()

	p := NewPager(NewSynthetic(-1), 0)
	if p.PageSize() != DefaultPageSize {
		t.Fatalf("PageSize() = %d, want %d", p.PageSize(), DefaultPageSize)
	}

	p.Begin()
	p.Complete(Page{Total: -1}, nil)
	if !p.Status().Done {
		t.Fatalf("empty page from a non-following source should end paging")
	}
}

type followingSource struct{ failingSource }

func (followingSource) Following() bool { return true }

func TestPagerEmptyPageKeepsFollowingSourceOpen(t *testing.T) {
	t.Parallel()

	p := NewPager(&followingSource{}, 10)
	p.Begin()
	p.Complete(Page{Total: -1}, nil)
	if p.Status().Done {
		t.Fatalf("following source must stay open after an empty page")
	}
	if _, ok := p.Begin(); !ok {
		t.Fatalf("Begin should succeed for a following source")
	}
}
