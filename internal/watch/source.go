// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package watch reads log files into a paged source and optionally follows
// them for appended lines.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nxadm/tail"

	"github.com/elastic/scrollcat/internal/feed"
)

// Config holds file source configuration
type Config struct {
	Files   []string
	Service string // Override service name
	Follow  bool   // Keep watching for new lines

	// OnAppend is called from a follower goroutine after lines are appended.
	OnAppend func(file string, n int)
	// OnError receives non-fatal read errors from followers.
	OnError func(file string, err error)
}

// Source serves the lines of one or more files as items, in file order.
type Source struct {
	files   []string
	service string
	follow  bool

	mu    sync.RWMutex
	items []feed.Item
	tails []*tail.Tail

	onAppend func(string, int)
	onError  func(string, error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ feed.Source = (*Source)(nil)

// Open expands globs, reads every file, and starts followers when requested.
// A missing file is an error unless following, in which case it is watched
// for creation.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	files, err := expandFiles(cfg.Files)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Source{
		files:    files,
		service:  cfg.Service,
		follow:   cfg.Follow,
		onAppend: cfg.OnAppend,
		onError:  cfg.OnError,
		ctx:      ctx,
		cancel:   cancel,
	}

	offsets := make([]int64, len(files))
	for i, f := range files {
		n, err := s.readFile(f)
		if err != nil {
			cancel()
			return nil, err
		}
		offsets[i] = n
	}

	if s.follow {
		for i, f := range files {
			if err := s.startTail(f, offsets[i]); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
	}
	return s, nil
}

func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	return files, nil
}

// readFile loads the existing content of filename and returns the byte
// offset a follower should resume from. When following, a trailing partial
// line is left for the follower.
func (s *Source) readFile(filename string) (int64, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) && s.follow {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", filename, err)
	}

	content := string(data)
	if s.follow {
		content = content[:strings.LastIndexByte(content, '\n')+1]
	}

	service := s.serviceFor(filename)
	parsed := make([]feed.Item, 0, strings.Count(content, "\n")+1)
	for _, line := range splitLines(content) {
		if line == "" {
			continue
		}
		parsed = append(parsed, ParseLine(line, filename, service))
	}

	s.mu.Lock()
	s.items = append(s.items, parsed...)
	s.mu.Unlock()
	return int64(len(content)), nil
}

func (s *Source) startTail(filename string, offset int64) error {
	t, err := tail.TailFile(filename, tail.Config{
		Follow:    true,
		ReOpen:    true,  // Handle file rotation
		MustExist: false, // Allow watching files that don't exist yet
		Poll:      true,  // Use polling (more reliable across filesystems)
		Location:  &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", filename, err)
	}

	s.mu.Lock()
	s.tails = append(s.tails, t)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.consume(filename, t)
	return nil
}

func (s *Source) consume(filename string, t *tail.Tail) {
	defer s.wg.Done()
	service := s.serviceFor(filename)
	for {
		select {
		case <-s.ctx.Done():
			return
		case line, ok := <-t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				if s.onError != nil {
					s.onError(filename, line.Err)
				}
				continue
			}
			if line.Text == "" {
				continue
			}
			item := ParseLine(strings.TrimSuffix(line.Text, "\r"), filename, service)

			s.mu.Lock()
			s.items = append(s.items, item)
			s.mu.Unlock()

			if s.onAppend != nil {
				s.onAppend(filename, 1)
			}
		}
	}
}

func (s *Source) serviceFor(filename string) string {
	if s.service != "" {
		return s.service
	}
	return ServiceFromFilename(filename)
}

// Name describes the files being read.
func (s *Source) Name() string {
	if len(s.files) == 1 {
		return filepath.Base(s.files[0])
	}
	return fmt.Sprintf("%d files", len(s.files))
}

// Files returns the list of files being read (after glob expansion)
func (s *Source) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// Following reports whether appended lines will keep arriving.
func (s *Source) Following() bool {
	return s.follow
}

// Len returns the number of items read so far.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Fetch returns items [offset, offset+limit). A following source never
// reports Done.
func (s *Source) Fetch(ctx context.Context, offset, limit int) (feed.Page, error) {
	if err := ctx.Err(); err != nil {
		return feed.Page{}, err
	}
	if offset < 0 || limit < 0 {
		return feed.Page{}, fmt.Errorf("invalid page offset=%d limit=%d", offset, limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.items)
	start := min(offset, n)
	end := min(offset+limit, n)
	items := make([]feed.Item, end-start)
	copy(items, s.items[start:end])

	return feed.Page{
		Items: items,
		Total: int64(n),
		Done:  !s.follow && end >= n,
	}, nil
}

// Close stops all followers and waits for them to exit.
func (s *Source) Close() error {
	s.cancel()

	s.mu.Lock()
	tails := s.tails
	s.tails = nil
	s.mu.Unlock()

	var errs []error
	for _, t := range tails {
		if err := t.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	s.wg.Wait()
	return errors.Join(errs...)
}
