// Package timespec parses and formats the human time offsets accepted by the
// trim and to-gif commands.
package timespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vidio/internal/failures"
)

// Spec is a non-negative offset in seconds.
type Spec float64

// Parse accepts SS[.ms], MM:SS[.ms] and HH:MM:SS[.ms]. A bare seconds value
// may exceed 59; in colon forms minutes and seconds must stay below 60.
func Parse(value string) (Spec, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, invalid(value, "empty value")
	}
	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return 0, invalid(value, "expected SS, MM:SS or HH:MM:SS")
	}

	last := len(parts) - 1
	var total float64
	for i, part := range parts {
		if part == "" {
			return 0, invalid(value, "empty component")
		}
		var n float64
		if i == last {
			v, err := parseSeconds(part)
			if err != nil {
				return 0, invalid(value, err.Error())
			}
			n = v
		} else {
			if !isDigits(part) {
				return 0, invalid(value, fmt.Sprintf("component %q is not a whole number", part))
			}
			v, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return 0, invalid(value, fmt.Sprintf("component %q out of range", part))
			}
			n = float64(v)
		}
		// Hours are unbounded; minutes and seconds in colon forms are base 60.
		if len(parts) > 1 && i >= len(parts)-2 && n >= 60 {
			label := "seconds"
			if i < last {
				label = "minutes"
			}
			return 0, invalid(value, fmt.Sprintf("%s must be below 60", label))
		}
		if len(parts) == 3 && i == 0 {
			total += n * 3600
		} else if i == last {
			total += n
		} else {
			total += n * 60
		}
	}
	return Spec(total), nil
}

// MustParse is Parse for constants in tests and defaults.
func MustParse(value string) Spec {
	spec, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return spec
}

// Seconds returns the offset as float seconds.
func (s Spec) Seconds() float64 {
	return float64(s)
}

// Arg renders the offset the way ffmpeg expects it on the command line.
func (s Spec) Arg() string {
	return strconv.FormatFloat(roundMillis(float64(s)), 'f', -1, 64)
}

func (s Spec) String() string {
	return Format(s)
}

// Format renders HH:MM:SS with a .mmm suffix when the offset has a fractional
// part. Parse(Format(s)) reproduces s to the millisecond.
func Format(s Spec) string {
	millis := int64(math.Round(float64(s) * 1000))
	if millis < 0 {
		millis = 0
	}
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	seconds := millis / 1000
	millis -= seconds * 1000
	if millis == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func parseSeconds(part string) (float64, error) {
	whole, frac, hasDot := strings.Cut(part, ".")
	if whole == "" && !hasDot {
		return 0, fmt.Errorf("component %q is empty", part)
	}
	if !isDigits(whole) && whole != "" {
		return 0, fmt.Errorf("component %q is not a number", part)
	}
	if hasDot && (frac == "" || !isDigits(frac)) {
		return 0, fmt.Errorf("component %q has an invalid fraction", part)
	}
	if whole == "" {
		whole = "0"
	}
	v, err := strconv.ParseFloat(whole+"."+orZero(frac), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("component %q out of range", part)
	}
	return v, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func invalid(value, reason string) error {
	return failures.Wrap(failures.ErrInvalidTimeFormat, "", fmt.Sprintf("%q", value), reason+" (use SS, MM:SS or HH:MM:SS)", nil)
}
