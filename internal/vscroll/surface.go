// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package vscroll

// ItemRenderer renders one data item. index is the absolute slot index of the
// row the item is drawn in. Renderers must not change item height.
type ItemRenderer[T, R any] func(item T, index int) R

// Header describes an optional header drawn above the content.
type Header[R any] struct {
	Height float64
	Render func() R
}

// Options configures a Surface. ItemHeight and ViewportHeight are required
// and must be positive. A nil Overscan selects DefaultOverscan.
type Options[T, R any] struct {
	ItemHeight     float64
	ViewportHeight float64
	Overscan       *int
	Columns        int
	Header         *Header[R]
	RenderItem     ItemRenderer[T, R]

	OnLoadMore func()
	OnScroll   func(ScrollSample)
	OnLayout   func()
}

// RenderedCell pairs a cell descriptor with its rendered content.
type RenderedCell[R any] struct {
	Cell
	Content R
}

// RenderedRow is one materialized slot. Spacer rows have no cells.
type RenderedRow[R any] struct {
	Index  int
	Spacer bool
	Cells  []RenderedCell[R]
}

// Frame is everything a host needs to draw the current scroll position.
type Frame[R any] struct {
	Window          Window
	ContentHeight   float64
	Rows            []RenderedRow[R]
	HasHeader       bool
	Header          R
	HeaderHeight    float64
	HeaderTranslate float64
}

type memoKey struct {
	cfg       LayoutConfig
	scrollTop float64
}

// Surface is one mounted virtualized list: geometry, data, the scroll
// tracker and the header offset signal, plus the caller's collaborators.
type Surface[T, R any] struct {
	opts    Options[T, R]
	data    []T
	tracker *Tracker
	offset  float64
	anim    *AnimatedValue

	header     R
	headerDone bool

	memo    memoKey
	memoWin Window
	memoOK  bool
}

// NewSurface mounts a surface with opts. It does not validate geometry.
func NewSurface[T, R any](opts Options[T, R]) *Surface[T, R] {
	return &Surface[T, R]{
		opts:    opts,
		tracker: NewTracker(),
		anim:    NewAnimatedValue(0),
	}
}

// SetData replaces the data sequence.
func (s *Surface[T, R]) SetData(data []T) {
	s.data = data
}

// Append adds items to the end of the data sequence.
func (s *Surface[T, R]) Append(items ...T) {
	s.data = append(s.data, items...)
}

// Data returns the data sequence.
func (s *Surface[T, R]) Data() []T {
	return s.data
}

// Len returns the number of data items.
func (s *Surface[T, R]) Len() int {
	return len(s.data)
}

// At returns the data item at i, or false when i is out of range.
func (s *Surface[T, R]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(s.data) {
		return zero, false
	}
	return s.data[i], true
}

func (s *Surface[T, R]) SetViewportHeight(h float64) { s.opts.ViewportHeight = h }
func (s *Surface[T, R]) SetItemHeight(h float64)     { s.opts.ItemHeight = h }
func (s *Surface[T, R]) SetColumns(n int)            { s.opts.Columns = n }
func (s *Surface[T, R]) SetOverscan(n *int)          { s.opts.Overscan = n }

// SetHeader replaces the header. The header renderer runs again on the next
// Frame.
func (s *Surface[T, R]) SetHeader(h *Header[R]) {
	s.opts.Header = h
	s.headerDone = false
	var zero R
	s.header = zero
}

// HasHeader reports whether a header with a positive height is mounted.
func (s *Surface[T, R]) HasHeader() bool {
	return s.opts.Header != nil && s.opts.Header.Height > 0
}

// Config returns the layout for the current geometry and data length.
func (s *Surface[T, R]) Config() LayoutConfig {
	overscan := DefaultOverscan(s.opts.ItemHeight, s.opts.ViewportHeight)
	if s.opts.Overscan != nil {
		overscan = *s.opts.Overscan
	}
	var headerHeight float64
	if s.opts.Header != nil {
		headerHeight = s.opts.Header.Height
	}
	return LayoutConfig{
		ItemHeight:     s.opts.ItemHeight,
		ViewportHeight: s.opts.ViewportHeight,
		OverscanCount:  overscan,
		ColumnCount:    s.opts.Columns,
		ItemCount:      len(s.data),
		HeaderHeight:   headerHeight,
	}.Normalize()
}

// HandleScroll processes one sample from the host: the tracker is updated,
// the header offset signal follows the raw offset, OnLoadMore fires when the
// tracker asks for it and OnScroll receives the sample last.
func (s *Surface[T, R]) HandleScroll(sample ScrollSample) Update {
	u := s.tracker.Update(sample)
	s.offset = u.Offset

	if s.opts.Header != nil {
		s.anim.Set(sample.OffsetY)
	}
	if u.ShouldLoadMore && s.opts.OnLoadMore != nil {
		s.opts.OnLoadMore()
	}
	if s.opts.OnScroll != nil {
		s.opts.OnScroll(sample)
	}
	return u
}

// Sample builds a ScrollSample for offset using the current geometry.
func (s *Surface[T, R]) Sample(offset float64) ScrollSample {
	cfg := s.Config()
	return ScrollSample{
		OffsetY:        offset,
		ContentHeight:  cfg.ContentHeight(),
		ViewportHeight: cfg.ViewportHeight,
	}
}

// Offset returns the raw offset of the last sample.
func (s *Surface[T, R]) Offset() float64 {
	return s.offset
}

// State returns the tracker state.
func (s *Surface[T, R]) State() ScrollState {
	return s.tracker.State()
}

// Animated returns the header offset signal.
func (s *Surface[T, R]) Animated() *AnimatedValue {
	return s.anim
}

// Layout notifies the caller that content has been measured.
func (s *Surface[T, R]) Layout() {
	if s.opts.OnLayout != nil {
		s.opts.OnLayout()
	}
}

// Window returns the window for the last offset. Results are memoized on the
// layout and the clamped offset.
func (s *Surface[T, R]) Window() Window {
	key := memoKey{cfg: s.Config(), scrollTop: max(0, s.offset)}
	if s.memoOK && key == s.memo {
		return s.memoWin
	}
	s.memo = key
	s.memoWin = Compute(key.cfg, key.scrollTop)
	s.memoOK = true
	return s.memoWin
}

// Cells returns the cell descriptors of the current window.
func (s *Surface[T, R]) Cells() []Cell {
	return Cells(s.Config(), s.Window(), len(s.data))
}

// Frame renders the current window. RenderItem is called once per data cell;
// the header renderer only when the header changed since the last Frame.
func (s *Surface[T, R]) Frame() Frame[R] {
	cfg := s.Config()
	w := s.Window()

	f := Frame[R]{
		Window:        w,
		ContentHeight: cfg.ContentHeight(),
		Rows:          make([]RenderedRow[R], 0, w.Len()),
	}

	for i, row := range Rows(cfg, w, len(s.data)) {
		idx := w.StartIndex + i
		rr := RenderedRow[R]{Index: idx, Spacer: idx < cfg.HeaderSlots()}
		for _, c := range row {
			if c.Spacer {
				continue
			}
			rc := RenderedCell[R]{Cell: c}
			if s.opts.RenderItem != nil {
				rc.Content = s.opts.RenderItem(s.data[c.DataIndex], c.Row)
			}
			rr.Cells = append(rr.Cells, rc)
		}
		f.Rows = append(f.Rows, rr)
	}

	if s.HasHeader() {
		h := s.opts.Header
		if !s.headerDone && h.Render != nil {
			s.header = h.Render()
			s.headerDone = true
		}
		f.HasHeader = true
		f.Header = s.header
		f.HeaderHeight = h.Height
		f.HeaderTranslate = s.anim.Translate(h.Height)
	}
	return f
}
