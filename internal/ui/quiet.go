package ui

import "io"

// quietPresenter reports failures only.
type quietPresenter struct {
	errW   io.Writer
	styled bool
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for ev := range events {
		printFailure(p.errW, ev, p.styled)
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
