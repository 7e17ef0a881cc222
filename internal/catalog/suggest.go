package catalog

import "time"

// SmartSuggestion picks an excuse theme that fits the moment.
func SmartSuggestion(now time.Time) string {
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return "🏥 Health emergency"
	}

	switch h := now.Hour(); {
	case h >= 6 && h < 9:
		return "🚗 Traffic delay"
	case h >= 9 && h < 12:
		return "💼 Urgent meeting called"
	case h >= 12 && h < 15:
		return "🩺 Doctor appointment"
	case h >= 15 && h < 18:
		return "👨‍👩‍👧 Family responsibility"
	default:
		return "⚡ Technical issues"
	}
}
