// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package vscroll

import (
	"math"
	"sync"
)

// HeaderTranslate maps a scroll offset to the header's vertical translation.
// Offsets in [0, headerHeight] map linearly onto [0, -headerHeight]; values
// outside that range are clamped.
func HeaderTranslate(offset, headerHeight float64) float64 {
	h := math.Max(0, headerHeight)
	return clampf(-offset, -h, 0)
}

// HeaderVisible returns how much of the header remains on screen.
func HeaderVisible(offset, headerHeight float64) float64 {
	return math.Max(0, headerHeight) + HeaderTranslate(offset, headerHeight)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AnimatedValue is an observable offset used to drive the header parallax.
// It is updated independently of the discrete samples the Tracker sees.
type AnimatedValue struct {
	mu        sync.RWMutex
	value     float64
	nextID    int
	listeners map[int]func(float64)
}

// NewAnimatedValue returns a value initialised to v.
func NewAnimatedValue(v float64) *AnimatedValue {
	return &AnimatedValue{
		value:     v,
		listeners: make(map[int]func(float64)),
	}
}

// Value returns the current value.
func (a *AnimatedValue) Value() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// Set stores v and notifies listeners when it changed.
func (a *AnimatedValue) Set(v float64) {
	a.mu.Lock()
	if a.value == v {
		a.mu.Unlock()
		return
	}
	a.value = v
	// Copy so listeners run without the lock held
	fns := make([]func(float64), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn for value changes and returns an unsubscribe func.
func (a *AnimatedValue) Subscribe(fn func(float64)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextID
	a.nextID++
	a.listeners[id] = fn

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners, id)
	}
}

// Translate returns HeaderTranslate for the current value.
func (a *AnimatedValue) Translate(headerHeight float64) float64 {
	return HeaderTranslate(a.Value(), headerHeight)
}
