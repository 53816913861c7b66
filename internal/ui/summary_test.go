package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seek/internal/domain"
	"seek/internal/limiter"
)

func TestRenderSummaryComplete(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:    "/data",
		Elapsed: 2500 * time.Millisecond,
		Scanned: 1200,
		Matches: 3,
		Reason:  domain.ReasonExhausted,
	})
	assert.Equal(t, "Search complete! Found 3 matches in /data (2.5s, 1200 files)", got)
}

func TestRenderSummarySingleMatch(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:    ".",
		Elapsed: time.Second,
		Scanned: 10,
		Matches: 1,
		Reason:  domain.ReasonExhausted,
	})
	assert.Contains(t, got, "Found 1 match in .")
}

func TestRenderSummaryNoMatches(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:    ".",
		Elapsed: time.Second,
		Scanned: 10,
		Reason:  domain.ReasonExhausted,
	})
	assert.Contains(t, got, "No matches found")
}

func TestRenderSummaryElapsedFloor(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:    ".",
		Elapsed: 3 * time.Millisecond,
		Reason:  domain.ReasonExhausted,
	})
	assert.Contains(t, got, "(0.1s")
}

func TestRenderSummaryFileLimit(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:    "/",
		Elapsed: time.Second,
		Scanned: 500000,
		Matches: 42,
		Reason:  domain.ReasonFileLimitReached,
	})
	assert.Contains(t, got, "Search stopped at file limit!")
	assert.Contains(t, got, "scanned 500000 files")
}

func TestRenderSummaryTimedOut(t *testing.T) {
	got := RenderSummary(domain.Summary{
		Root:             "/",
		Elapsed:          600 * time.Second,
		Scanned:          900,
		PermissionErrors: 7,
		Reason:           domain.ReasonTimedOut,
	})
	assert.Contains(t, got, "Search timed out after 600.0s!")
	assert.Contains(t, got, "7 permission errors")
}

func TestPermissionHint(t *testing.T) {
	assert.Empty(t, PermissionHint(0, "/", "*"))
	assert.Empty(t, PermissionHint(5, "/", "*"))

	hint := PermissionHint(6, "/etc", "*.conf")
	assert.Contains(t, hint, "sudo seek")
	assert.Contains(t, hint, "/etc")
	assert.Contains(t, hint, "*.conf")
}

func TestStatusLine(t *testing.T) {
	state := limiter.NewState(100)
	state.SetCurrentDir("/data/sub")
	for range 10 {
		state.RecordScanned()
	}
	state.AddMatch()
	state.AddPermissionError()

	line := statusLine(state, 100)
	assert.Contains(t, line, "/data/sub")
	assert.Contains(t, line, "10 scanned")
	assert.Contains(t, line, "1 found")
	assert.Contains(t, line, "1 permission errors")
	assert.Contains(t, line, "90 remaining")
}

func TestStatusLineEmptyState(t *testing.T) {
	line := statusLine(limiter.NewState(0), 0)
	assert.Contains(t, line, "...")
	assert.Contains(t, line, "0 scanned")
	assert.NotContains(t, line, "remaining")
}
