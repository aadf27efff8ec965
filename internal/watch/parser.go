// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/elastic/scrollcat/internal/feed"
)

// Common timestamp patterns found at the start of plain-text lines
var timestampPatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z`), time.RFC3339Nano},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`), time.RFC3339},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d+`), "2006-01-02 15:04:05.000"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`), "2006-01-02 15:04:05"},
	{regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`), "2006/01/02 15:04:05"},
}

// Level detection, most verbose first
var levelPatterns = []struct {
	re    *regexp.Regexp
	level string
}{
	{regexp.MustCompile(`(?i)\b(TRACE)\b`), "TRACE"},
	{regexp.MustCompile(`(?i)\b(DEBUG)\b`), "DEBUG"},
	{regexp.MustCompile(`(?i)\b(INFO)\b`), "INFO"},
	{regexp.MustCompile(`(?i)\b(WARN(?:ING)?)\b`), "WARN"},
	{regexp.MustCompile(`(?i)\b(ERROR|ERR)\b`), "ERROR"},
	{regexp.MustCompile(`(?i)\b(FATAL|CRITICAL)\b`), "FATAL"},
}

// ParseLine turns one line of a log file into an item. JSON lines are
// decoded; anything else is scanned for a timestamp and level.
func ParseLine(line, filename, service string) feed.Item {
	item := feed.Item{
		Source:  filename,
		Service: service,
		Raw:     line,
	}

	if strings.HasPrefix(strings.TrimSpace(line), "{") && parseJSONLine(line, &item) {
		return item
	}

	item.Message = line
	item.Timestamp = parseTimestamp(line)
	item.Level = parseLevel(line)
	return item
}

func parseJSONLine(line string, item *feed.Item) bool {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return false
	}

	for _, key := range []string{"message", "msg", "log", "text", "body"} {
		if v, ok := raw[key].(string); ok {
			item.Message = v
			break
		}
	}
	for _, key := range []string{"level", "severity", "lvl", "log.level", "loglevel"} {
		if v, ok := raw[key].(string); ok {
			item.Level = normalizeLevel(v)
			break
		}
	}
	for _, key := range []string{"service", "service.name", "logger"} {
		if v, ok := raw[key].(string); ok && v != "" {
			item.Service = v
			break
		}
	}
	for _, key := range []string{"timestamp", "time", "ts", "@timestamp", "datetime"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			item.Timestamp = parseTimestampString(t)
		case float64:
			// Unix timestamp (seconds or milliseconds)
			if t > 1e12 {
				item.Timestamp = time.UnixMilli(int64(t)).UTC()
			} else {
				item.Timestamp = time.Unix(int64(t), 0).UTC()
			}
		}
		break
	}
	return true
}

// parseTimestamp finds the first recognizable timestamp in a line.
// Lines without one get the zero time.
func parseTimestamp(line string) time.Time {
	for _, p := range timestampPatterns {
		if match := p.re.FindString(line); match != "" {
			if t, err := time.Parse(p.layout, match); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseLevel(line string) string {
	for _, p := range levelPatterns {
		if p.re.MatchString(line) {
			return p.level
		}
	}
	return ""
}

func normalizeLevel(s string) string {
	switch upper := strings.ToUpper(strings.TrimSpace(s)); upper {
	case "TRACE", "DEBUG":
		return upper
	case "INFO", "INFORMATION":
		return "INFO"
	case "WARN", "WARNING":
		return "WARN"
	case "ERROR", "ERR":
		return "ERROR"
	case "FATAL", "CRITICAL", "PANIC":
		return "FATAL"
	default:
		return ""
	}
}

// ServiceFromFilename extracts service name from a log filename
// e.g., "server-err.log" -> "server", "api.log" -> "api"
func ServiceFromFilename(filename string) string {
	name := filepath.Base(filename)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	for _, suffix := range []string{"-err", "-error", "-out", "-info", "-debug", "-log"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}

	if name == "" || name == "." {
		return "unknown"
	}
	return name
}

// splitLines splits a string into lines, preserving the last potentially incomplete line
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
