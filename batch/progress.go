package batch

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Progress receives live progress updates during dispatch: Start once with
// the total task count, Advance once per completed task regardless of mode
// or outcome, and Finish when the run ends. The progress UI itself is an
// external concern; implementations can render however they like.
type Progress interface {
	Start(total int)
	Advance()
	Finish()
}

// NoOpProgress discards all progress updates. It is the default when none
// is specified.
type NoOpProgress struct{}

// Start implements the Progress interface.
func (NoOpProgress) Start(total int) {}

// Advance implements the Progress interface.
func (NoOpProgress) Advance() {}

// Finish implements the Progress interface.
func (NoOpProgress) Finish() {}

// ConsoleProgress renders a single-line counter, rewriting the line on each
// completed task. Safe for concurrent Advance calls.
type ConsoleProgress struct {
	// W receives the output. Defaults to os.Stderr.
	W io.Writer

	mu    sync.Mutex
	total int
	done  int
}

// Start implements the Progress interface.
func (p *ConsoleProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
	fmt.Fprintf(p.writer(), "\rprocessing 0/%d", total)
}

// Advance implements the Progress interface.
func (p *ConsoleProgress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	fmt.Fprintf(p.writer(), "\rprocessing %d/%d", p.done, p.total)
}

// Finish implements the Progress interface.
func (p *ConsoleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.writer())
}

func (p *ConsoleProgress) writer() io.Writer {
	if p.W != nil {
		return p.W
	}
	return os.Stderr
}
