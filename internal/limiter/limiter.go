package limiter

import (
	"sync/atomic"
	"time"

	"seek/internal/domain"
)

// ScanOutcome is the result of recording one scanned entry
type ScanOutcome int

const (
	Continue ScanOutcome = iota
	LimitReached
)

// reason codes latched by the first cancellation trigger
const (
	reasonNone int32 = iota
	reasonFileLimit
	reasonTimedOut
)

// State is the traversal's only mutable cross-worker state: independent
// atomic counters and flags shared by every worker and the reporter.
// Once the cancellation flag is set it is never cleared for the lifetime
// of one search, and the first latched reason wins.
type State struct {
	maxFiles uint64 // 0 = unlimited

	scanned     atomic.Uint64
	matches     atomic.Uint64
	permErrors  atomic.Uint64
	otherErrors atomic.Uint64
	cancelled   atomic.Bool
	reason      atomic.Int32
	currentDir  atomic.Pointer[string]

	start time.Time
}

// NewState creates the shared state for one search.
// maxFiles of 0 means no file-count limit.
func NewState(maxFiles uint64) *State {
	return &State{
		maxFiles: maxFiles,
		start:    time.Now(),
	}
}

// RecordScanned counts one examined entry and reports whether the
// file-count ceiling was hit. The entry that crosses the limit is
// counted as scanned but must not be matched or descended into.
func (s *State) RecordScanned() ScanOutcome {
	n := s.scanned.Add(1)
	if s.maxFiles > 0 && n >= s.maxFiles {
		s.cancel(reasonFileLimit)
		return LimitReached
	}
	if s.cancelled.Load() {
		return LimitReached
	}
	return Continue
}

// CancelTimedOut sets the cancellation flag with the timeout reason
func (s *State) CancelTimedOut() {
	s.cancel(reasonTimedOut)
}

func (s *State) cancel(reason int32) {
	s.reason.CompareAndSwap(reasonNone, reason)
	s.cancelled.Store(true)
}

// ShouldCancel reports whether workers must stop spawning new work
func (s *State) ShouldCancel() bool {
	return s.cancelled.Load()
}

// Reason returns the latched completion reason, defaulting to an
// exhausted tree when no limit or timeout fired
func (s *State) Reason() domain.CompletionReason {
	switch s.reason.Load() {
	case reasonFileLimit:
		return domain.ReasonFileLimitReached
	case reasonTimedOut:
		return domain.ReasonTimedOut
	default:
		return domain.ReasonExhausted
	}
}

// AddMatch counts one matched entry
func (s *State) AddMatch() {
	s.matches.Add(1)
}

// AddPermissionError counts one permission-denied entry or subtree
func (s *State) AddPermissionError() {
	s.permErrors.Add(1)
}

// AddOtherError counts one non-permission I/O failure
func (s *State) AddOtherError() {
	s.otherErrors.Add(1)
}

// SetCurrentDir records the directory a worker is listing.
// Best effort, last writer wins; the value is cosmetic.
func (s *State) SetCurrentDir(dir string) {
	s.currentDir.Store(&dir)
}

// CurrentDir returns the last recorded directory snapshot
func (s *State) CurrentDir() string {
	if p := s.currentDir.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *State) Scanned() uint64          { return s.scanned.Load() }
func (s *State) Matches() uint64          { return s.matches.Load() }
func (s *State) PermissionErrors() uint64 { return s.permErrors.Load() }
func (s *State) OtherErrors() uint64      { return s.otherErrors.Load() }

// Elapsed returns the wall-clock time since the search started
func (s *State) Elapsed() time.Duration {
	return time.Since(s.start)
}
