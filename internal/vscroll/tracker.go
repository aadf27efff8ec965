// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package vscroll

// LoadMoreMargin biases the load-more trigger earlier by this many units.
const LoadMoreMargin = 300

// Update is the result of feeding one sample to a Tracker.
type Update struct {
	Offset         float64
	Direction      Direction
	ShouldLoadMore bool
}

// Tracker derives scroll direction and the load-more signal from a stream of
// samples. It is not safe for concurrent use; the host's event loop is the
// single writer.
type Tracker struct {
	state ScrollState
}

// NewTracker returns a tracker with no direction and a zero previous offset.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update records sample and returns the derived direction and load-more
// signal. State is updated on every call, so repeated calls with the same
// sample are not idempotent: the second one reports DirectionUp.
func (t *Tracker) Update(sample ScrollSample) Update {
	dir := DirectionUp
	if sample.OffsetY > t.state.LastOffsetY {
		dir = DirectionDown
	}

	t.state.Direction = dir
	t.state.LastOffsetY = sample.OffsetY

	return Update{
		Offset:         sample.OffsetY,
		Direction:      dir,
		ShouldLoadMore: dir == DirectionDown && pastLoadThreshold(sample),
	}
}

// State returns a copy of the tracker state.
func (t *Tracker) State() ScrollState {
	return t.state
}

// pastLoadThreshold reports whether the bottom of the viewport has reached
// the halfway point of the content, less LoadMoreMargin.
func pastLoadThreshold(s ScrollSample) bool {
	return s.OffsetY+s.ViewportHeight >= s.ContentHeight/2-LoadMoreMargin
}
