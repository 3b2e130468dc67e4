// Package extract pulls structured values out of generated free text:
// estimated project cost from estimate documents and severity levels from
// hazard analyses. Everything here is pure and network-free.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// costPattern pairs a matcher with its priority rank. Patterns are evaluated
// in slice order; the first match wins.
type costPattern struct {
	name string
	re   *regexp.Regexp
}

// costPatterns is the extraction priority list. The explicit "TOTAL" entry
// is redundant with the case-insensitive "total" pattern above it and kept
// so the list reads as the full precedence order.
var costPatterns = []costPattern{
	{name: "total", re: regexp.MustCompile(`(?i)Total.*?\$([\d,]+)`)},
	{name: "total_upper", re: regexp.MustCompile(`TOTAL.*?\$([\d,]+)`)},
	{name: "estimated_cost", re: regexp.MustCompile(`(?i)Estimated Cost.*?\$([\d,]+)`)},
	{name: "large_amount", re: regexp.MustCompile(`\$([\d,]{6,})`)},
}

// EstimatedCost extracts the estimated project cost from estimate text.
// Patterns are tried in priority order ("Total: $X" before any bare
// six-digit dollar amount); the captured number is parsed with thousands
// separators stripped. Returns 0.0 when no pattern matches.
func EstimatedCost(text string) float64 {
	for _, p := range costPatterns {
		match := p.re.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		return amount
	}
	return 0.0
}
