package repository

import "time"

const timeLayout = time.RFC3339

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
