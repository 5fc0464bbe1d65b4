package ui

import (
	"io"

	"github.com/bamsammich/batchsplit/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Stats     stats.Reader
	Quiet     bool
	Styled    bool // colorize failure lines and the summary
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{errW: cfg.ErrWriter, styled: cfg.Styled}
	}
	return &plainPresenter{
		w:      cfg.Writer,
		errW:   cfg.ErrWriter,
		stats:  cfg.Stats,
		styled: cfg.Styled,
	}
}
