package outwriter

import (
	"os"

	"github.com/huangsam/ytdash/internal/contract"
	"golang.org/x/term"
)

// Bounds of the title column in table output.
const (
	minTitleWidth = 15
	maxTitleWidth = 60
)

// getMaxTitleWidth calculates the maximum width for video titles in table output
// based on terminal width and the space taken by the other columns.
func getMaxTitleWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - reserved
	if available < minTitleWidth {
		return minTitleWidth
	}
	if available > maxTitleWidth {
		return maxTitleWidth
	}
	return available
}
