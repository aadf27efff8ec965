// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package vscroll computes windows for virtualized list and grid rendering.
//
// A host feeds scroll samples into a Tracker, passes the resulting offset to
// Compute together with the current LayoutConfig, and renders only the Cells
// of the returned Window. Nothing in this package draws; Surface wires the
// arithmetic to caller-supplied renderers and callbacks.
package vscroll

import (
	"fmt"
	"math"
)

// Direction is the direction of the most recent scroll movement.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// ScrollSample is a single scroll position reported by the host.
type ScrollSample struct {
	OffsetY        float64 // Content offset; negative during overscroll/bounce
	ContentHeight  float64 // Total scrollable content height
	ViewportHeight float64 // Height of the visible area
}

// ScrollState is the state retained by a Tracker between samples.
type ScrollState struct {
	LastOffsetY float64
	Direction   Direction
}

// LayoutConfig describes the geometry of a virtualized list.
// ItemCount is the number of data items; header slots are not included.
type LayoutConfig struct {
	ItemHeight     float64 `json:"item_height" yaml:"item_height"`
	ViewportHeight float64 `json:"viewport_height" yaml:"viewport_height"`
	OverscanCount  int     `json:"overscan" yaml:"overscan"`
	ColumnCount    int     `json:"columns" yaml:"columns"`
	ItemCount      int     `json:"item_count" yaml:"item_count"`
	HeaderHeight   float64 `json:"header_height" yaml:"header_height"`
}

// Normalize returns a copy with ColumnCount coerced to at least 1 and
// negative counts raised to zero.
func (c LayoutConfig) Normalize() LayoutConfig {
	if c.ColumnCount < 1 {
		c.ColumnCount = 1
	}
	if c.OverscanCount < 0 {
		c.OverscanCount = 0
	}
	if c.ItemCount < 0 {
		c.ItemCount = 0
	}
	if c.HeaderHeight < 0 {
		c.HeaderHeight = 0
	}
	return c
}

// Validate reports contract violations that Compute does not recover from.
// Compute itself never calls Validate.
func (c LayoutConfig) Validate() error {
	if !(c.ItemHeight > 0) || math.IsInf(c.ItemHeight, 0) {
		return fmt.Errorf("item height must be > 0, got %v", c.ItemHeight)
	}
	if !(c.ViewportHeight > 0) || math.IsInf(c.ViewportHeight, 0) {
		return fmt.Errorf("viewport height must be > 0, got %v", c.ViewportHeight)
	}
	if c.OverscanCount < 0 {
		return fmt.Errorf("overscan must be >= 0, got %d", c.OverscanCount)
	}
	if c.ItemCount < 0 {
		return fmt.Errorf("item count must be >= 0, got %d", c.ItemCount)
	}
	if c.HeaderHeight < 0 {
		return fmt.Errorf("header height must be >= 0, got %v", c.HeaderHeight)
	}
	return nil
}

// HeaderSlots returns the number of leading item slots reserved for the header.
func (c LayoutConfig) HeaderSlots() int {
	if c.HeaderHeight <= 0 {
		return 0
	}
	return int(math.Ceil(c.HeaderHeight / c.ItemHeight))
}

// TotalSlots returns the number of addressable slots, header slots included.
func (c LayoutConfig) TotalSlots() int {
	return c.ItemCount + c.HeaderSlots()
}

// ContentHeight returns the full scrollable height of the list.
func (c LayoutConfig) ContentHeight() float64 {
	return float64(c.TotalSlots()) * c.ItemHeight
}

// MaxScroll returns the largest offset that still fills the viewport.
func (c LayoutConfig) MaxScroll() float64 {
	return math.Max(0, c.ContentHeight()-c.ViewportHeight)
}

// DefaultOverscan is the overscan used when the caller does not supply one:
// one viewport's worth of items.
func DefaultOverscan(itemHeight, viewportHeight float64) int {
	if !(itemHeight > 0) {
		return 0
	}
	return int(math.Ceil(viewportHeight / itemHeight))
}

// Window is the contiguous slot range to materialize.
type Window struct {
	StartIndex  int     `json:"start_index" yaml:"start_index"`
	EndIndex    int     `json:"end_index" yaml:"end_index"` // exclusive
	PixelOffset float64 `json:"pixel_offset" yaml:"pixel_offset"`
}

// Len returns the number of slots in the window.
func (w Window) Len() int {
	return w.EndIndex - w.StartIndex
}

// Contains reports whether slot index i is materialized.
func (w Window) Contains(i int) bool {
	return i >= w.StartIndex && i < w.EndIndex
}

// Cell describes one renderable position inside a Window.
//
// Row is the absolute slot index of the row. Index is the absolute slot the
// cell reads (Row+Column). DataIndex is Index minus the header slots, or -1
// for spacer slots.
type Cell struct {
	Index     int  `json:"index" yaml:"index"`
	Row       int  `json:"row" yaml:"row"`
	Column    int  `json:"column" yaml:"column"`
	DataIndex int  `json:"data_index" yaml:"data_index"`
	Spacer    bool `json:"spacer,omitempty" yaml:"spacer,omitempty"`
}
