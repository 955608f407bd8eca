package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// progressBar draws generation progress on one terminal line.
type progressBar struct {
	w       io.Writer
	enabled bool
	model   progress.Model
	drawn   bool
}

func newProgressBar(w io.Writer, enabled bool) *progressBar {
	return &progressBar{
		w:       w,
		enabled: enabled,
		model:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *progressBar) update(done, total int, label string) {
	if !p.enabled || total == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s %d/%d %-30.30s", p.model.ViewAs(float64(done)/float64(total)), done, total, label)
	p.drawn = true
}

func (p *progressBar) finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
	}
}
