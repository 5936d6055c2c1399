package utils

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

const labelWidth = 12

// Progress draws a single mpb bar on stderr. When disabled, or when stderr is
// not a terminal, every method is a no-op.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar

	mu    sync.Mutex
	label string
}

// NewProgress creates a progress bar for total steps
func NewProgress(total int, enabled bool) *Progress {
	p := &Progress{}
	if !enabled || total <= 0 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return p
	}

	fmt.Fprintln(os.Stderr)
	p.container = mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	p.bar = p.container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		mpb.PrependDecorators(
			decor.Any(func(decor.Statistics) string {
				p.mu.Lock()
				defer p.mu.Unlock()
				return p.label
			}, decor.WC{W: labelWidth, C: decor.DindentRight}),
			decor.CountersNoUnit(" %d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.Name(" "),
			decor.Elapsed(decor.ET_STYLE_GO),
		),
	)
	return p
}

// Enabled reports whether the bar is drawn
func (p *Progress) Enabled() bool {
	return p.bar != nil
}

// Update moves the bar to current and shows label, usually a lump or level name
func (p *Progress) Update(current int, label string) {
	if p.bar == nil {
		return
	}
	if len(label) > labelWidth {
		label = label[:labelWidth-2] + ".."
	}
	p.mu.Lock()
	p.label = label
	p.mu.Unlock()
	p.bar.SetCurrent(int64(current))
}

// Callback adapts Update to the (current, total, description) progress callbacks
// used by the exporter and indexer
func (p *Progress) Callback() func(current, total int, description string) {
	return func(current, _ int, description string) {
		p.Update(current, description)
	}
}

// Finish completes the bar and waits for the final render
func (p *Progress) Finish() {
	if p.container == nil {
		return
	}
	p.bar.SetTotal(-1, true)
	p.container.Wait()
	fmt.Fprintln(os.Stderr)
}
