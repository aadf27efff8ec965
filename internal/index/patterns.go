// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package index provides Elasticsearch index patterns for OTel data streams
// and the shorthands accepted by --index.
package index

import "strings"

// Index patterns for OTel data streams
const (
	Logs    = "logs-*"
	Traces  = "traces-*"
	Metrics = "metrics-*"

	// All is the combined pattern for querying all signal types
	All = Logs + "," + Traces + "," + Metrics
)

var shorthands = map[string]string{
	"logs":    Logs,
	"traces":  Traces,
	"metrics": Metrics,
	"all":     All,
}

// Resolve expands a signal shorthand (logs, traces, metrics, all) to its
// pattern. Anything else is returned trimmed and unchanged.
func Resolve(s string) string {
	s = strings.TrimSpace(s)
	if p, ok := shorthands[strings.ToLower(s)]; ok {
		return p
	}
	return s
}
