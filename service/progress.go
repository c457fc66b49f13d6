package service

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ImportProgress reports class-import progress to a terminal, grounded on
// the teacher's service/progress_manager.go (ProgressManagerImpl).
type ImportProgress struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
	total       int
	current     int
}

// NewImportProgress builds a progress reporter writing to stderr, enabling
// the bar only when stderr is an attached terminal.
func NewImportProgress() *ImportProgress {
	return &ImportProgress{
		writer:      os.Stderr,
		interactive: isInteractiveEnvironment(os.Stderr),
	}
}

func isInteractiveEnvironment(f *os.File) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Start begins tracking progress over an expected number of root packages.
func (p *ImportProgress) Start(totalRoots int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = totalRoots
	p.current = 0
	if !p.interactive {
		return
	}
	p.bar = progressbar.NewOptions(totalRoots,
		progressbar.OptionSetDescription("scanning root packages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.writer) }),
	)
}

// Advance moves the bar forward by one step (Track calls it on each timer
// tick). It never advances the bar past the total given to Start.
func (p *ImportProgress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current >= p.total {
		return
	}
	p.current++
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish closes out the progress bar, if one was started.
func (p *ImportProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Track brackets fn with Start/Finish and, since importing doesn't report
// incremental progress of its own, advances the bar on a fixed tick while fn
// is in flight — the same time-based estimate the teacher's
// startTimeBasedProgressUpdater uses for its own single long-running call.
func (p *ImportProgress) Track(totalRoots int, fn func() error) error {
	p.Start(totalRoots)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(150 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Advance()
			case <-done:
				return
			}
		}
	}()
	err := fn()
	close(done)
	p.Finish()
	return err
}
