package traverse

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"seek/internal/config"
	"seek/internal/eventbus"
	"seek/internal/limiter"
	"seek/internal/matcher"
)

// Walker expands the directory tree in parallel: a coordinator
// goroutine owns the pending-directory queue, a fixed pool of workers
// lists directories and evaluates entries, and discovered
// subdirectories flow back to the coordinator as new units of work.
// The walk completes when no work remains pending or when the shared
// cancellation flag has propagated to every worker.
type Walker struct {
	cfg   *config.Config
	match matcher.Matcher
	state *limiter.State
	bus   *eventbus.Bus

	rootEntries []fs.DirEntry
	prepared    bool
}

// dirJob is one directory to list, with its depth below the root.
// Entries are pre-populated only for the root job.
type dirJob struct {
	path    string
	depth   int
	entries []fs.DirEntry
}

// walkEvent is the feedback from workers to the coordinator: either a
// discovered subdirectory or the completion of one dispatched job.
type walkEvent struct {
	path  string
	depth int
	done  bool
}

// New creates a walker over the configured root
func New(cfg *config.Config, m matcher.Matcher, state *limiter.State, bus *eventbus.Bus) *Walker {
	return &Walker{
		cfg:   cfg,
		match: m,
		state: state,
		bus:   bus,
	}
}

// Prepare lists the root directory up front. An unlistable root is a
// fatal error: no workers are started and no events are published.
func (w *Walker) Prepare() error {
	info, err := os.Stat(w.cfg.Root)
	if err != nil {
		return fmt.Errorf("cannot search %s: %w", w.cfg.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot search %s: not a directory", w.cfg.Root)
	}

	entries, err := os.ReadDir(w.cfg.Root)
	if err != nil {
		return fmt.Errorf("cannot search %s: %w", w.cfg.Root, err)
	}

	w.rootEntries = entries
	w.prepared = true
	return nil
}

// Run drives the traversal to completion. It blocks until every worker
// has finished, either because the tree is exhausted or because
// cancellation propagated. Per-entry errors are absorbed into events
// and never abort the walk.
func (w *Walker) Run(ctx context.Context) error {
	if !w.prepared {
		if err := w.Prepare(); err != nil {
			return err
		}
	}

	workers := w.cfg.WorkerCount()

	// Unbuffered keeps dispatch decisions with the coordinator; the
	// buffered feedback channel absorbs discovery bursts so workers
	// rarely stall while the coordinator is mid-select.
	jobs := make(chan dirJob)
	feedback := make(chan walkEvent, workers*64)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.coordinate(ctx, jobs, feedback)
		return nil
	})

	for range workers {
		g.Go(func() error {
			for job := range jobs {
				w.processDir(ctx, job, feedback)
				feedback <- walkEvent{done: true}
			}
			return nil
		})
	}

	return g.Wait()
}

// coordinate owns the directory queue. pending counts queued plus
// in-flight jobs; the walk is complete when it reaches zero. Every
// dispatched job sends exactly one done event, so the accounting is
// exact across cancellation.
func (w *Walker) coordinate(ctx context.Context, jobs chan<- dirJob, feedback <-chan walkEvent) {
	defer close(jobs)

	queue := make([]dirJob, 0, 256)
	queue = append(queue, dirJob{path: w.cfg.Root, entries: w.rootEntries})
	pending := 1

	for pending > 0 {
		if w.state.ShouldCancel() || ctx.Err() != nil {
			// Stop dispatching: drop queued work, then drain done
			// events for jobs still held by workers.
			pending -= len(queue)
			queue = nil

			for pending > 0 {
				if ev := <-feedback; ev.done {
					pending--
				}
			}
			return
		}

		var (
			next  dirJob
			jobCh chan<- dirJob
		)
		if len(queue) > 0 {
			next = queue[0]
			jobCh = jobs
		}

		select {
		case ev := <-feedback:
			if ev.done {
				pending--
			} else {
				pending++
				queue = append(queue, dirJob{path: ev.path, depth: ev.depth})
			}

		case jobCh <- next:
			// Drop the popped job's entry slice promptly.
			queue[0] = dirJob{}
			queue = queue[1:]

		case <-ctx.Done():
			// Re-check at the top of the loop.
		}
	}
}

// processDir lists one directory and evaluates its entries
func (w *Walker) processDir(ctx context.Context, job dirJob, feedback chan<- walkEvent) {
	entries := job.entries
	if entries == nil {
		var err error
		entries, err = os.ReadDir(job.path)
		if err != nil {
			w.reportError(job.path, err)
			return
		}
	}

	w.state.SetCurrentDir(job.path)
	w.bus.Publish(eventbus.DirectoryEnteredEvent{Path: job.path})

	for _, entry := range entries {
		if w.state.ShouldCancel() || ctx.Err() != nil {
			return
		}
		if w.state.RecordScanned() == limiter.LimitReached {
			return
		}

		name := entry.Name()
		path := filepath.Join(job.path, name)

		// DirEntry type bits never follow symlinks, so a link to a
		// directory is not descended into (fixed policy, avoids cycles).
		isDir := entry.IsDir()

		if isDir && w.withinDepth(job.depth+1) {
			feedback <- walkEvent{path: path, depth: job.depth + 1}
		}

		if w.cfg.WantKind(isDir) && w.match.Matches(name, path) {
			w.state.AddMatch()
			w.bus.Publish(eventbus.EntryMatchedEvent{Path: path, IsDir: isDir})
		}
	}
}

// withinDepth reports whether a directory at the given depth below the
// root may be descended into
func (w *Walker) withinDepth(depth int) bool {
	return w.cfg.MaxDepth < 0 || depth <= w.cfg.MaxDepth
}

// reportError classifies a listing failure and absorbs it into events
func (w *Walker) reportError(path string, err error) {
	if errors.Is(err, fs.ErrPermission) {
		w.state.AddPermissionError()
		w.bus.Publish(eventbus.PermissionErrorEvent{Path: path})
		return
	}

	log.Printf("traverse: error listing %s: %v", path, err)
	w.state.AddOtherError()
	w.bus.Publish(eventbus.OtherErrorEvent{Path: path, Err: err})
}
