package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders an elapsed time compactly: whole milliseconds
// under a second, seconds with two decimals under a minute, and a coarse
// breakdown ("1h 2m 3s") beyond that.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return formatLongDuration(d)
	}
}

func formatLongDuration(d time.Duration) string {
	d = d.Truncate(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := (d - minutes*time.Minute) / time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatDollars renders a US-dollar amount: four decimal places below
// $1,000, one decimal place with a "k" suffix at or above.
func FormatDollars(v float64) string {
	if v < 1_000 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.1fk", v/1_000)
}

// FormatTokens renders a token count: bare below 1,000, thousands with
// one decimal below 1,000,000, millions with three decimals beyond.
func FormatTokens(n int) string {
	switch {
	case n < 1_000:
		return strconv.Itoa(n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%.3fm", float64(n)/1_000_000)
	}
}

// AnnualRate projects the run's cost over its wall-clock time to a
// working year of 40 hours a week, 50 weeks a year. A non-positive
// elapsed time yields a zero rate rather than dividing by zero.
func AnnualRate(costUSD float64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	const workingHoursPerYear = 40.0 * 50.0
	return costUSD / elapsed.Hours() * workingHoursPerYear
}
