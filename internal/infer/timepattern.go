package infer

// timepattern.go resolves the remaining ambiguity in time tokens: whether the
// hour field is 12- or 24-hour. A single sample usually settles it — an hour
// above 12 (or hour 0, which no 12-hour clock shows) proves 24-hour, and an
// AM/PM marker proves 12-hour. Columns where neither ever appears would stay
// ambiguous forever, so after a fixed number of samples the engine commits to
// 12-hour as the best guess to guarantee forward progress.

import (
	"strconv"
	"strings"
)

// ForceFormatThreshold is the default number of time samples after which a
// still-ambiguous column commits to a 12-hour pattern.
const ForceFormatThreshold = 50

type timePattern struct {
	samples   int
	threshold int
	format    string // resolved pattern, empty until committed
}

// observe inspects one canonical time token ("13:45", "02:30:15.5") and
// whether an AM/PM marker accompanied it. Seconds and fractional-seconds
// fields are recorded positionally in the candidate pattern; the pattern
// commits as soon as the hour format is proven, or at the sample threshold.
func (t *timePattern) observe(token string, hasMarker bool) {
	if t.format != "" {
		return
	}
	t.samples++

	parts := strings.Split(token, ":")
	if len(parts) < 2 {
		return
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return
	}

	pattern := "%I"
	decided := false
	if hour > 12 || hour == 0 {
		pattern = "%H"
		decided = true
	}
	pattern += ":%M"
	if len(parts) > 2 {
		if strings.ContainsRune(parts[2], '.') {
			pattern += ":%S.%f"
		} else {
			pattern += ":%S"
		}
	}
	if hasMarker {
		pattern += " %p"
		decided = true
	}

	if decided || t.samples >= t.threshold {
		t.format = pattern
	}
}
