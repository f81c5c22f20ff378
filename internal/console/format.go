package console

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a size in base-1024 units with at most two decimals:
// 0 -> "0 Bytes", 1024 -> "1 KB", 1536 -> "1.5 KB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	value, exp := float64(n), 0
	for value >= 1024 && exp < len(byteUnits)-1 {
		value /= 1024
		exp++
	}
	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " " + byteUnits[exp]
}

const dateLayout = "Jan 2, 2006"

// FormatDate renders a short date, or "Never" for an absent time
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	return t.Format(dateLayout)
}

// SuccessRate renders successes over runs as a rounded percentage, "N/A" with no runs
func SuccessRate(success, runs int64) string {
	if runs <= 0 {
		return "N/A"
	}
	pct := math.Round(float64(success) / float64(runs) * 100)
	return strconv.FormatInt(int64(pct), 10) + "%"
}

// ColorClass is the presentation class of a status value
type ColorClass string

const (
	ColorGreen   ColorClass = "green"
	ColorGray    ColorClass = "gray"
	ColorYellow  ColorClass = "yellow"
	ColorBlue    ColorClass = "blue"
	ColorRed     ColorClass = "red"
	ColorPurple  ColorClass = "purple"
	ColorOrange  ColorClass = "orange"
	ColorUnknown ColorClass = "unknown"
)

var statusColors = map[string]ColorClass{
	"active":     ColorGreen,
	"completed":  ColorGreen,
	"released":   ColorGreen,
	"archived":   ColorGray,
	"draft":      ColorGray,
	"sunset":     ColorGray,
	"processing": ColorYellow,
	"paused":     ColorYellow,
	"beta":       ColorYellow,
	"running":    ColorBlue,
	"failed":     ColorRed,
	"announced":  ColorPurple,
	"alpha":      ColorOrange,
}

// StatusColor maps dataset, pipeline and game statuses to a color class
func StatusColor(status string) ColorClass {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return ColorUnknown
}
