package transcript

import (
	"regexp"
	"strings"
)

var (
	// A bare video ID is exactly 11 characters, full match. Longer
	// strings of the same alphabet must arrive inside a URL shape.
	bareIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	// URL shapes are searched left to right, first match wins.
	urlIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|v/|shorts/)([A-Za-z0-9_-]{11})`)
)

// ExtractVideoID resolves an 11-character YouTube video ID from a raw
// ID or any of the common URL shapes (watch?v=, youtu.be/, embed/, v/,
// shorts/). Returns false when no ID can be found; the caller decides
// whether that is a user-facing failure.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)

	if bareIDPattern.MatchString(input) {
		return input, true
	}

	if m := urlIDPattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}

	return "", false
}
