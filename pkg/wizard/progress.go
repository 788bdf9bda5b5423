package wizard

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows that a service call is in flight.
type Progress interface {
	Start(msg string)
	Stop()
}

type spinnerProgress struct {
	s *spinner.Spinner
}

// NewSpinner returns a terminal spinner writing to w.
func NewSpinner(w io.Writer) Progress {
	return &spinnerProgress{s: spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))}
}

func (p *spinnerProgress) Start(msg string) {
	p.s.Suffix = " " + msg
	p.s.Start()
}

func (p *spinnerProgress) Stop() {
	p.s.Stop()
}

type nopProgress struct{}

func (nopProgress) Start(string) {}
func (nopProgress) Stop()        {}
