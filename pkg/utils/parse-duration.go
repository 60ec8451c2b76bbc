package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDurationString accepts Go durations plus a whole-day form such as "7d".
func ParseDurationString(value string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return time.Duration(0), fmt.Errorf("invalid time duration '%s'", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid time duration '%s' : %s", value, err.Error())
	}
	return d, nil
}
