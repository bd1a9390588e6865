package dashboard

import "time"

// DefaultHourShift approximates the target timezone as six hours behind
// local time.
const DefaultHourShift = 6

// CurrentMode classifies now after moving it shift hours back.
func CurrentMode(now time.Time, shift int) Mode {
	shifted := ((now.Hour()-shift)%24 + 24) % 24
	return ClassifyHour(shifted)
}

// ClassifyHour maps a 0-23 hour to a mode. The quiet window ends at 6.5,
// which an integer hour never equals: 6 is quiet, 22 is active.
func ClassifyHour(hour int) Mode {
	h := float64(hour)
	switch {
	case h >= 23 || h < 6.5:
		return ModeQuiet
	case h >= 7 && h <= 21:
		return ModeFamily
	default:
		return ModeActive
	}
}
