// Package spool watches a directory for capture files and hands each one to
// a handler once writes to it have settled.
package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/ndtp/pkg/log"
)

// DefaultSuffix selects capture files.
const DefaultSuffix = ".ndtc"

// Handler processes one settled file. Errors are logged and do not stop the
// watcher.
type Handler func(ctx context.Context, path string) error

// Config holds watcher options.
type Config struct {
	// Dir is the directory to watch. Required.
	Dir string

	// Suffix selects files by name.
	// Default: ".ndtc"
	Suffix string

	// Debounce is the quiet period after the last write before a file is
	// handled.
	// Default: 200 milliseconds
	Debounce time.Duration

	// SkipExisting disables handling files already present at start.
	SkipExisting bool
}

// Watcher dispatches settled files to a handler. Handler calls never overlap.
type Watcher struct {
	cfg     Config
	handler Handler
	logger  log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup

	// serializes handler calls
	handleMu sync.Mutex
}

// New creates a watcher. A nil logger discards output.
func New(cfg Config, handler Handler, logger log.Logger) *Watcher {
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		cfg:     cfg,
		handler: handler,
		logger:  log.With(logger, log.String("dir", cfg.Dir)),
		timers:  make(map[string]*time.Timer),
	}
}

// Run watches until ctx is cancelled, then waits for in-flight handlers and
// returns nil. It fails early if the directory cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.Dir == "" {
		return fmt.Errorf("spool: directory is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("spool: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("spool: watch %s: %w", w.cfg.Dir, err)
	}
	w.logger.Info("watching spool directory", log.String("suffix", w.cfg.Suffix))

	if !w.cfg.SkipExisting {
		if err := w.scanExisting(ctx); err != nil {
			w.logger.Warn("scan existing files failed", log.Err(err))
		}
	}

	defer w.drain()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("spool watcher stopping")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) matches(path string) bool {
	return strings.HasSuffix(filepath.Base(path), w.cfg.Suffix)
}

func (w *Watcher) scanExisting(ctx context.Context) error {
	ents, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range ents {
		if e.Type().IsRegular() && w.matches(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, n := range names {
		w.schedule(ctx, filepath.Join(w.cfg.Dir, n))
	}
	return nil
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		w.dispatch(ctx, path)
	})
	w.timers[path] = t
}

func (w *Watcher) dispatch(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	w.handleMu.Lock()
	defer w.handleMu.Unlock()

	start := time.Now()
	if err := w.handler(ctx, path); err != nil {
		w.logger.Error("handle spool file", log.String("file", path), log.Err(err))
		return
	}
	w.logger.Debug("handled spool file",
		log.String("file", path),
		log.Duration("took", time.Since(start)),
	)
}

// drain stops pending timers and waits for running handlers.
func (w *Watcher) drain() {
	w.mu.Lock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
