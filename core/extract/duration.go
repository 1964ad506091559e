package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// isoDuration matches the day and time parts of an ISO-8601 duration,
// e.g. PT1H30M, P0DT20M, PT90M.
var isoDuration = regexp.MustCompile(`(?i)^P(?:(\d+(?:[.,]\d+)?)D)?(?:T(?:(\d+(?:[.,]\d+)?)H)?(?:(\d+(?:[.,]\d+)?)M)?(?:(\d+(?:[.,]\d+)?)S)?)?$`)

// textDuration matches phrases like "1 hour 30 mins" or "20 minuti".
var textDuration = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(hours?|hrs?|h|ore|ora|minutes?|mins?|minuti|m)\b`)

// parseMinutes converts a duration value to whole minutes, rounding to
// the nearest minute.
func parseMinutes(v any) (core.Minutes, error) {
	switch x := v.(type) {
	case float64:
		return core.Minutes(math.Round(x)), nil
	case string:
		return parseMinutesText(strings.TrimSpace(x))
	case []any:
		if len(x) > 0 {
			return parseMinutes(x[0])
		}
	}
	return core.MinutesNA, core.ErrNotSupported
}

func parseMinutesText(s string) (core.Minutes, error) {
	if s == "" {
		return core.MinutesNA, core.ErrNotSupported
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return core.Minutes(math.Round(n)), nil
	}

	if m := isoDuration.FindStringSubmatch(s); m != nil && len(s) > 1 {
		total := number(m[1])*24*60 + number(m[2])*60 + number(m[3]) + number(m[4])/60
		return core.Minutes(math.Round(total)), nil
	}

	matches := textDuration.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return core.MinutesNA, fmt.Errorf("unrecognized duration %q", s)
	}
	var total float64
	for _, m := range matches {
		unit := strings.ToLower(m[2])
		if strings.HasPrefix(unit, "h") || strings.HasPrefix(unit, "or") {
			total += number(m[1]) * 60
		} else {
			total += number(m[1])
		}
	}
	return core.Minutes(math.Round(total)), nil
}

func number(s string) float64 {
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return n
}
