// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package vscroll

import "math"

// Compute returns the window of slots to materialize for rawOffset.
//
// Negative and NaN offsets (overscroll) are treated as 0. The start index is
// clamped to the slot count before conversion to int, so any offset past the
// end, +Inf included, yields an empty window at the end instead of an
// inverted range. ItemHeight and ViewportHeight must be positive; see
// LayoutConfig.Validate.
func Compute(cfg LayoutConfig, rawOffset float64) Window {
	cfg = cfg.Normalize()

	scrollTop := rawOffset
	if math.IsNaN(scrollTop) || scrollTop < 0 {
		scrollTop = 0
	}
	total := cfg.TotalSlots()

	start := total
	if q := math.Floor(scrollTop / cfg.ItemHeight); q < float64(total) {
		start = int(q)
	}

	span := int(math.Ceil(cfg.ViewportHeight/cfg.ItemHeight)) + 2*cfg.OverscanCount
	visible := min(total-start, span)
	end := min(start+visible, total)

	return Window{
		StartIndex:  start,
		EndIndex:    end,
		PixelOffset: math.Max(0, float64(start)*cfg.ItemHeight),
	}
}

// Cells expands w into cell descriptors for a data sequence of dataLen items.
//
// Slots below the header slot count become single spacer cells. Every other
// slot i is a row of up to ColumnCount cells where column j reads data index
// (i+j)-HeaderSlots. Columns share the row's base index rather than using
// i*ColumnCount+j, so for ColumnCount > 1 neighbouring rows overlap. Cells
// whose data index falls outside [0, dataLen) are omitted.
func Cells(cfg LayoutConfig, w Window, dataLen int) []Cell {
	cfg = cfg.Normalize()
	headerSlots := cfg.HeaderSlots()

	cells := make([]Cell, 0, w.Len()*cfg.ColumnCount)
	for i := w.StartIndex; i < w.EndIndex; i++ {
		if i < headerSlots {
			cells = append(cells, Cell{Index: i, Row: i, DataIndex: -1, Spacer: true})
			continue
		}
		for j := 0; j < cfg.ColumnCount; j++ {
			dataIdx := i + j - headerSlots
			if dataIdx < 0 || dataIdx >= dataLen {
				continue
			}
			cells = append(cells, Cell{Index: i + j, Row: i, Column: j, DataIndex: dataIdx})
		}
	}
	return cells
}

// Rows groups cells by Row, preserving window order. Data rows whose cells
// were all omitted are returned as empty rows so the block keeps its height.
func Rows(cfg LayoutConfig, w Window, dataLen int) [][]Cell {
	cells := Cells(cfg, w, dataLen)
	rows := make([][]Cell, w.Len())
	for _, c := range cells {
		r := c.Row - w.StartIndex
		rows[r] = append(rows[r], c)
	}
	return rows
}
