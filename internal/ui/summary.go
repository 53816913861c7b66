package ui

import (
	"fmt"
	"runtime"
	"time"

	"seek/internal/domain"
)

// RenderSummary formats the final human-readable summary line
func RenderSummary(sum domain.Summary) string {
	// A sub-100ms elapsed reads like a bug; floor it for display.
	elapsed := sum.Elapsed
	if elapsed < 100*time.Millisecond {
		elapsed = 100 * time.Millisecond
	}
	seconds := elapsed.Seconds()

	var matchText string
	switch sum.Matches {
	case 0:
		matchText = "No matches found"
	case 1:
		matchText = "Found 1 match"
	default:
		matchText = fmt.Sprintf("Found %d matches", sum.Matches)
	}

	var permSuffix string
	if sum.PermissionErrors > 0 {
		permSuffix = fmt.Sprintf(", %d permission errors", sum.PermissionErrors)
	}

	switch sum.Reason {
	case domain.ReasonTimedOut:
		return fmt.Sprintf("Search timed out after %.1fs! %s in %s (scanned %d files%s)",
			seconds, matchText, sum.Root, sum.Scanned, permSuffix)
	case domain.ReasonFileLimitReached:
		return fmt.Sprintf("Search stopped at file limit! %s in %s (%.1fs, scanned %d files%s)",
			matchText, sum.Root, seconds, sum.Scanned, permSuffix)
	default:
		return fmt.Sprintf("Search complete! %s in %s (%.1fs, %d files%s)",
			matchText, sum.Root, seconds, sum.Scanned, permSuffix)
	}
}

// PermissionHint suggests rerunning with sudo after a run that hit many
// permission errors. Returns "" when no hint is warranted.
func PermissionHint(permissionErrors uint64, path, pattern string) string {
	if permissionErrors <= 5 {
		return ""
	}

	hint := warnStyle.Render("Hint: Many permission errors encountered. Try running with sudo:") + "\n" +
		warnStyle.Render(fmt.Sprintf("      sudo seek %q %q", path, pattern))

	if runtime.GOOS == "darwin" {
		hint += "\n" + warnStyle.Render("On macOS, some directories may still be restricted by System Integrity Protection.") + "\n" +
			warnStyle.Render("For user data directories, grant your terminal 'Full Disk Access' in System Settings → Privacy & Security.")
	}

	return hint
}
