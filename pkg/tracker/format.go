package tracker

import "fmt"

// FormatTime renders seconds as MM:SS. Negative values render as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
