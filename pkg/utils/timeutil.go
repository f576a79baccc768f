package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// FormatTimestamp converts a site- or feed-supplied time string to a short
// human-relative form. Already-relative strings ("3 hours ago") pass through
// lowercased; anything parseable as a date is converted via RelativeTime;
// everything else degrades to "Recent". Empty input returns "".
func FormatTimestamp(timeText string) string {
	if strings.TrimSpace(timeText) == "" {
		return ""
	}

	clean := strings.ToLower(strings.TrimSpace(timeText))

	if strings.Contains(clean, "ago") || strings.Contains(clean, "hour") || strings.Contains(clean, "minute") {
		return clean
	}
	if strings.Contains(clean, "just") || clean == "now" || strings.Contains(clean, "moment") {
		return "Just now"
	}

	// Site timestamps come in dozens of shapes (RFC1123, "02 Jan 2026",
	// "Jan 2, 2026 10:30 IST", ISO 8601, …); dateparse handles them all.
	if t, err := dateparse.ParseAny(timeText); err == nil {
		return RelativeTime(t)
	}

	return "Recent"
}

// RelativeTime renders a timestamp relative to now ("Just now",
// "5 minutes ago", "3 hours ago", …). Dates older than a month fall back to
// an IST calendar date.
func RelativeTime(t time.Time) string {
	diff := time.Since(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return pluralize(minutes, "minute")
	case hours < 24:
		return pluralize(hours, "hour")
	case days < 7:
		return pluralize(days, "day")
	case days < 30:
		return pluralize(days/7, "week")
	default:
		return t.In(IST).Format("02/01/2006")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
