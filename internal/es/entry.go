// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package es

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/scrollcat/internal/feed"
)

// Field locations in preference order. Semconv locations come first, flat
// ECS-style keys after.
var (
	messageFields = []string{"body.text", "body", "message", "event_name"}
	levelFields   = []string{"severity_text", "log.level", "level"}
	serviceFields = []string{
		"resource.attributes.service.name",
		"resource.service.name",
		"attributes.service.name",
		"service.name",
	}
)

// extractItem maps a raw document onto a list item. It never fails; a
// document with no recognizable fields becomes an item with an empty message.
func extractItem(raw map[string]interface{}) feed.Item {
	item := feed.Item{
		Timestamp: parseTimestamp(raw["@timestamp"]),
		Message:   firstString(raw, messageFields),
		Level:     firstString(raw, levelFields),
		Service:   firstString(raw, serviceFields),
	}
	if item.Level == "" {
		if n, ok := raw["severity_number"].(float64); ok {
			item.Level = severityName(n)
		}
	}
	return item
}

// firstString returns the first non-empty string found at any of paths.
func firstString(raw map[string]interface{}, paths []string) string {
	for _, p := range paths {
		if s, ok := lookup(raw, p).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// lookup resolves a dotted path against documents that may store keys flat
// ("service.name"), nested ({"service":{"name":..}}), or any mix of the two.
func lookup(data map[string]interface{}, path string) interface{} {
	if v, ok := data[path]; ok {
		return v
	}
	parts := strings.Split(path, ".")
	for i := len(parts) - 1; i > 0; i-- {
		head := strings.Join(parts[:i], ".")
		next, ok := data[head].(map[string]interface{})
		if !ok {
			continue
		}
		if v := lookup(next, strings.Join(parts[i:], ".")); v != nil {
			return v
		}
	}
	return nil
}

// parseTimestamp accepts epoch milliseconds (number or string) and RFC3339.
// Unparseable values yield the zero time.
func parseTimestamp(v interface{}) time.Time {
	switch ts := v.(type) {
	case float64:
		return fromEpochMillis(ts)
	case string:
		if f, err := strconv.ParseFloat(ts, 64); err == nil && f > 1e12 {
			return fromEpochMillis(f)
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
			if t, err := time.Parse(layout, ts); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func fromEpochMillis(f float64) time.Time {
	millis := int64(f)
	micros := int64((f - float64(millis)) * 1000)
	return time.UnixMilli(millis).Add(time.Duration(micros) * time.Microsecond).UTC()
}

// severityName maps OTel severity numbers onto their short names.
func severityName(n float64) string {
	switch {
	case n <= 4:
		return "TRACE"
	case n <= 8:
		return "DEBUG"
	case n <= 12:
		return "INFO"
	case n <= 16:
		return "WARN"
	case n <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// PrettyJSON best-effort pretty prints a raw JSON string.
// If indenting fails, it returns the raw input.
func PrettyJSON(raw string) string {
	if raw == "" {
		return raw
	}
	var tmp interface{}
	if err := json.Unmarshal([]byte(raw), &tmp); err != nil {
		return raw
	}
	out, err := json.MarshalIndent(tmp, "", "  ")
	if err != nil {
		return raw
	}
	return string(out)
}
