package model

import "strings"

// LookbackWindow is a named offset in calendar days.
type LookbackWindow struct {
	Label string
	Days  int
}

// Calendar-day approximations, not trading-day aware.
var (
	Window1D = LookbackWindow{Label: "1D", Days: 1}
	Window1W = LookbackWindow{Label: "1W", Days: 7}
	Window1M = LookbackWindow{Label: "1M", Days: 30}
	Window3M = LookbackWindow{Label: "3M", Days: 90}
	Window1Y = LookbackWindow{Label: "1Y", Days: 365}
)

// DefaultWindows returns the fixed catalog in display order.
func DefaultWindows() []LookbackWindow {
	return []LookbackWindow{Window1D, Window1W, Window1M, Window3M, Window1Y}
}

// WindowByLabel finds a catalog window by its label, case-insensitively.
func WindowByLabel(label string) (LookbackWindow, bool) {
	for _, w := range DefaultWindows() {
		if strings.EqualFold(w.Label, strings.TrimSpace(label)) {
			return w, true
		}
	}
	return LookbackWindow{}, false
}
