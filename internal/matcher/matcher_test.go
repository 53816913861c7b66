package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seek/internal/domain"
)

func TestGlobMatcher(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  domain.MatchTarget
		entry   string
		path    string
		want    bool
	}{
		{
			name:    "extension glob on filename",
			pattern: "*.rs",
			target:  domain.TargetFilename,
			entry:   "main.rs",
			path:    "src/main.rs",
			want:    true,
		},
		{
			name:    "extension glob rejects other extension",
			pattern: "*.rs",
			target:  domain.TargetFilename,
			entry:   "main.go",
			path:    "src/main.go",
			want:    false,
		},
		{
			name:    "filename glob ignores path",
			pattern: "src*",
			target:  domain.TargetFilename,
			entry:   "main.rs",
			path:    "src/main.rs",
			want:    false,
		},
		{
			name:    "single star does not cross separators in path mode",
			pattern: "*.rs",
			target:  domain.TargetFullPath,
			entry:   "main.rs",
			path:    "src/main.rs",
			want:    false,
		},
		{
			name:    "double star crosses separators in path mode",
			pattern: "**.rs",
			target:  domain.TargetFullPath,
			entry:   "main.rs",
			path:    "src/main.rs",
			want:    true,
		},
		{
			name:    "question mark",
			pattern: "?.txt",
			target:  domain.TargetFilename,
			entry:   "a.txt",
			path:    "a.txt",
			want:    true,
		},
		{
			name:    "matching is case sensitive",
			pattern: "*.RS",
			target:  domain.TargetFilename,
			entry:   "main.rs",
			path:    "main.rs",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, domain.ModeGlob, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Matches(tt.entry, tt.path))
		})
	}
}

func TestRegexMatcher(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  domain.MatchTarget
		entry   string
		path    string
		want    bool
	}{
		{
			name:    "anchored filename",
			pattern: `^test.*\.log$`,
			target:  domain.TargetFilename,
			entry:   "test1.log",
			path:    "logs/test1.log",
			want:    true,
		},
		{
			name:    "anchored filename rejects",
			pattern: `^test.*\.log$`,
			target:  domain.TargetFilename,
			entry:   "test2.txt",
			path:    "test2.txt",
			want:    false,
		},
		{
			name:    "path target sees directories",
			pattern: `logs/test.*\.log$`,
			target:  domain.TargetFullPath,
			entry:   "test1.log",
			path:    "logs/test1.log",
			want:    true,
		},
		{
			name:    "unanchored substring",
			pattern: `est`,
			target:  domain.TargetFilename,
			entry:   "test1.log",
			path:    "test1.log",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, domain.ModeRegex, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Matches(tt.entry, tt.path))
		})
	}
}

func TestInvalidPatterns(t *testing.T) {
	_, err := New("[", domain.ModeGlob, domain.TargetFilename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")

	_, err = New("(unclosed", domain.ModeRegex, domain.TargetFilename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")

	_, err = New("*", "fancy", domain.TargetFilename)
	require.Error(t, err)
}
