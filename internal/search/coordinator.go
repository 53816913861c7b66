package search

import (
	"context"
	"io"
	"time"

	"seek/internal/config"
	"seek/internal/domain"
	"seek/internal/eventbus"
	"seek/internal/limiter"
	"seek/internal/matcher"
	"seek/internal/traverse"
	"seek/internal/ui"
)

// Searcher orchestrates one search: it owns the matcher, the shared
// state, the event bus, the traversal worker pool and the reporter, and
// assembles the final summary once both sides have finished.
type Searcher struct {
	cfg   *config.Config
	match matcher.Matcher
	state *limiter.State
	bus   *eventbus.Bus

	out         io.Writer
	interactive bool
}

// New validates the configuration and compiles the pattern. Both are
// fatal, pre-traversal failures.
func New(cfg *config.Config, out io.Writer, interactive bool) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := matcher.New(cfg.Pattern, cfg.Mode, cfg.Target)
	if err != nil {
		return nil, err
	}

	return &Searcher{
		cfg:         cfg,
		match:       m,
		state:       limiter.NewState(cfg.MaxFiles),
		bus:         eventbus.New(),
		out:         out,
		interactive: interactive,
	}, nil
}

// Run executes the search and blocks until traversal and reporting have
// both finished. A fatal root error is returned before any worker
// starts; limit- or timeout-triggered early termination is not an error
// and is surfaced through the summary's completion reason.
func (s *Searcher) Run(ctx context.Context) (domain.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	walker := traverse.New(s.cfg, s.match, s.state, s.bus)
	if err := walker.Prepare(); err != nil {
		s.bus.Close()
		return domain.Summary{}, err
	}

	// Background timer: latches the timeout reason first, then cancels.
	if s.cfg.Timeout > 0 {
		timer := time.AfterFunc(s.cfg.Timeout, func() {
			s.state.CancelTimedOut()
			cancel()
		})
		defer timer.Stop()
	}

	reporter := ui.NewReporter(s.state, s.bus.Events(), ui.Options{
		Out:                  s.out,
		Interactive:          s.interactive,
		ShowPermissionErrors: s.cfg.ShowPermissionErrors,
		MaxFiles:             s.cfg.MaxFiles,
		OnInterrupt:          cancel,
	})

	reporterErr := make(chan error, 1)
	go func() {
		reporterErr <- reporter.Run()
	}()

	walkErr := walker.Run(ctx)

	reason := s.state.Reason()
	if walkErr == nil {
		s.bus.Publish(eventbus.SearchCompletedEvent{Reason: reason})
	}
	s.bus.Close()

	repErr := <-reporterErr
	if walkErr != nil {
		return domain.Summary{}, walkErr
	}

	return domain.Summary{
		Root:             s.cfg.Root,
		Elapsed:          s.state.Elapsed(),
		Scanned:          s.state.Scanned(),
		Matches:          s.state.Matches(),
		PermissionErrors: s.state.PermissionErrors(),
		OtherErrors:      s.state.OtherErrors(),
		Reason:           reason,
	}, repErr
}
