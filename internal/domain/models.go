package domain

import "time"

// PatternMode selects how the pattern text is interpreted
type PatternMode string

const (
	ModeGlob  PatternMode = "glob"
	ModeRegex PatternMode = "regex"
)

// MatchTarget selects the candidate string a pattern is evaluated against
type MatchTarget string

const (
	TargetFilename MatchTarget = "filename"
	TargetFullPath MatchTarget = "path"
)

// CompletionReason classifies why a search ended
type CompletionReason string

const (
	ReasonExhausted        CompletionReason = "Exhausted"
	ReasonFileLimitReached CompletionReason = "FileLimitReached"
	ReasonTimedOut         CompletionReason = "TimedOut"
)

// Summary is the final immutable snapshot of one search
type Summary struct {
	Root             string
	Elapsed          time.Duration
	Scanned          uint64
	Matches          uint64
	PermissionErrors uint64
	OtherErrors      uint64
	Reason           CompletionReason
}
