package download

import (
	"fmt"
	"io"
)

// Progress receives updates while a download runs.
type Progress interface {
	Start(name string, total int64)
	Advance(n int)
	Finish()
}

// NoProgress discards all updates.
type NoProgress struct{}

func (NoProgress) Start(string, int64) {}
func (NoProgress) Advance(int)         {}
func (NoProgress) Finish()             {}

// LineProgress redraws a single status line on w, typically stderr.
type LineProgress struct {
	w       io.Writer
	name    string
	total   int64
	current int64
	percent int
}

// NewLineProgress returns a LineProgress writing to w.
func NewLineProgress(w io.Writer) *LineProgress {
	return &LineProgress{w: w}
}

func (p *LineProgress) Start(name string, total int64) {
	p.name = name
	p.total = total
	p.current = 0
	p.percent = -1
	p.draw()
}

func (p *LineProgress) Advance(n int) {
	p.current += int64(n)

	// Redraw only when the visible value changes
	if p.total > 0 {
		if percent := int(p.current * 100 / p.total); percent != p.percent {
			p.percent = percent
			p.draw()
		}
		return
	}
	p.draw()
}

func (p *LineProgress) Finish() {
	fmt.Fprintln(p.w)
}

func (p *LineProgress) draw() {
	if p.total > 0 {
		fmt.Fprintf(p.w, "\rDownloading %s %s / %s (%d%%)", p.name, formatBytes(p.current), formatBytes(p.total), min(max(p.percent, 0), 100))
		return
	}
	fmt.Fprintf(p.w, "\rDownloading %s %s", p.name, formatBytes(p.current))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
