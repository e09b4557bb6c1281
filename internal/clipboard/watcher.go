package clipboard

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/gobwas/glob"
)

// Decision is the outcome of observing one clipboard poll.
type Decision struct {
	// Rewrite is true when Text should be written back to the clipboard.
	Rewrite bool
	// Text is the converted clipboard content when Rewrite is true.
	Text string
}

// Watcher decides, tick by tick, whether new clipboard content should be
// rewritten. It remembers the last content it saw (or wrote) so that its
// own writes are not processed again.
//
// A Watcher is not safe for concurrent use.
type Watcher struct {
	mode        transform.Mode
	ignore      []glob.Glob
	snapshot    string
	hasSnapshot bool
	logger      *logging.Logger
}

// NewWatcher creates a Watcher converting new content with mode. Content
// matching any of the ignore glob patterns is never rewritten.
func NewWatcher(mode transform.Mode, ignorePatterns []string, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	w := &Watcher{mode: mode, logger: logger}
	if err := w.SetIgnorePatterns(ignorePatterns); err != nil {
		return nil, err
	}
	return w, nil
}

// CompileIgnorePatterns compiles glob patterns, reporting the first invalid one.
func CompileIgnorePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// SetIgnorePatterns replaces the ignore patterns. On error the previous
// patterns are kept.
func (w *Watcher) SetIgnorePatterns(patterns []string) error {
	globs, err := CompileIgnorePatterns(patterns)
	if err != nil {
		return err
	}
	w.ignore = globs
	return nil
}

// Mode returns the conversion applied to new content.
func (w *Watcher) Mode() transform.Mode {
	return w.mode
}

// SetMode changes the conversion applied to new content.
func (w *Watcher) SetMode(mode transform.Mode) {
	w.mode = mode
}

// Snapshot returns the last observed clipboard content. ok is false after a
// failed read or before the first poll.
func (w *Watcher) Snapshot() (content string, ok bool) {
	return w.snapshot, w.hasSnapshot
}

// Observe records one poll result and returns what to do about it.
//
// A read error counts as "no content": the snapshot is cleared and nothing
// is written. When enabled and the content is non-empty, differs from the
// snapshot and matches no ignore pattern, the converted text becomes the
// snapshot so the rewrite is not picked up as new content on the next tick.
// In every other case the content itself becomes the snapshot.
func (w *Watcher) Observe(content string, readErr error, enabled bool) Decision {
	if readErr != nil {
		w.logger.Debug("clipboard read skipped", "error", readErr.Error())
		w.snapshot, w.hasSnapshot = "", false
		return Decision{}
	}

	isNew := content != "" && (!w.hasSnapshot || content != w.snapshot)
	if !enabled || !isNew || w.ignored(content) {
		w.snapshot, w.hasSnapshot = content, true
		return Decision{}
	}

	converted := transform.Apply(content, w.mode)
	w.snapshot, w.hasSnapshot = converted, true
	if converted == content {
		return Decision{}
	}

	w.logger.Debug("clipboard content converted",
		"mode", string(w.mode),
		"chars", len([]rune(content)),
	)
	return Decision{Rewrite: true, Text: converted}
}

func (w *Watcher) ignored(content string) bool {
	for _, g := range w.ignore {
		if g.Match(content) {
			return true
		}
	}
	return false
}

// Poller runs a Watcher against a Clipboard on a fixed interval without a
// UI. Auto-filtering is always enabled while it runs.
type Poller struct {
	clip     Clipboard
	watcher  *Watcher
	interval time.Duration
	logger   *logging.Logger

	// OnRewrite, if set, is called after each successful rewrite.
	OnRewrite func(original, converted string)
}

// NewPoller creates a Poller.
func NewPoller(clip Clipboard, watcher *Watcher, interval time.Duration, logger *logging.Logger) *Poller {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Poller{
		clip:     clip,
		watcher:  watcher,
		interval: interval,
		logger:   logger,
	}
}

// Tick performs one poll: read, decide, and write if needed.
func (p *Poller) Tick() error {
	content, readErr := p.clip.ReadAll()
	decision := p.watcher.Observe(content, readErr, true)
	if !decision.Rewrite {
		return nil
	}
	if err := p.clip.WriteAll(decision.Text); err != nil {
		p.logger.Warn("clipboard write failed", "error", err.Error())
		return err
	}
	if p.OnRewrite != nil {
		p.OnRewrite(content, decision.Text)
	}
	return nil
}

// Run polls until ctx is cancelled. The first poll only records the current
// clipboard content; content already present at startup is not rewritten.
// Write failures are logged and do not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	content, readErr := p.clip.ReadAll()
	p.watcher.Observe(content, readErr, false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("clipboard watcher started",
		"mode", string(p.watcher.Mode()),
		"interval_ms", p.interval.Milliseconds(),
	)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("clipboard watcher stopped")
			return nil
		case <-ticker.C:
			_ = p.Tick()
		}
	}
}
