package matcher

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"

	"seek/internal/domain"
)

// Matcher tests a directory entry against the configured pattern.
// Implementations are stateless after construction and safe for
// concurrent use by any number of workers.
type Matcher interface {
	Matches(name, path string) bool
}

// globMatcher matches entries with a compiled glob
type globMatcher struct {
	g        glob.Glob
	fullPath bool
}

func (m *globMatcher) Matches(name, path string) bool {
	if m.fullPath {
		return m.g.Match(path)
	}
	return m.g.Match(name)
}

// regexMatcher matches entries with a compiled regular expression
type regexMatcher struct {
	re       *regexp.Regexp
	fullPath bool
}

func (m *regexMatcher) Matches(name, path string) bool {
	if m.fullPath {
		return m.re.MatchString(path)
	}
	return m.re.MatchString(name)
}

// New compiles the pattern for the given mode and target.
// An invalid pattern is a fatal, pre-traversal error.
func New(pattern string, mode domain.PatternMode, target domain.MatchTarget) (Matcher, error) {
	fullPath := target == domain.TargetFullPath

	switch mode {
	case domain.ModeRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return &regexMatcher{re: re, fullPath: fullPath}, nil

	case domain.ModeGlob:
		var (
			g   glob.Glob
			err error
		)
		if fullPath {
			// With a separator, * and ? stop at path boundaries; ** crosses them.
			g, err = glob.Compile(pattern, '/')
		} else {
			g, err = glob.Compile(pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		return &globMatcher{g: g, fullPath: fullPath}, nil

	default:
		return nil, fmt.Errorf("unknown pattern mode %q", mode)
	}
}
