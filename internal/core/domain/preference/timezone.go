package preference

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const MAX_OFFSET_MINUTES = 14 * 60

var reFixedOffset = regexp.MustCompile(`^(?i)(?:utc|gmt)?\s*([+-])\s*(\d{1,2})(?::?(\d{2}))?$`)

var reLocalTime = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)

var cityAliases = map[string]string{
	"moscow":           "Europe/Moscow",
	"москва":           "Europe/Moscow",
	"мск":              "Europe/Moscow",
	"saint petersburg": "Europe/Moscow",
	"санкт-петербург":  "Europe/Moscow",
	"спб":              "Europe/Moscow",
	"kaliningrad":      "Europe/Kaliningrad",
	"калининград":      "Europe/Kaliningrad",
	"yekaterinburg":    "Asia/Yekaterinburg",
	"екатеринбург":     "Asia/Yekaterinburg",
	"novosibirsk":      "Asia/Novosibirsk",
	"новосибирск":      "Asia/Novosibirsk",
	"vladivostok":      "Asia/Vladivostok",
	"владивосток":      "Asia/Vladivostok",
	"bangkok":          "Asia/Bangkok",
	"бангкок":          "Asia/Bangkok",
	"phuket":           "Asia/Bangkok",
	"пхукет":           "Asia/Bangkok",
	"london":           "Europe/London",
	"лондон":           "Europe/London",
	"berlin":           "Europe/Berlin",
	"берлин":           "Europe/Berlin",
	"new york":         "America/New_York",
	"нью-йорк":         "America/New_York",
	"tbilisi":          "Asia/Tbilisi",
	"тбилиси":          "Asia/Tbilisi",
	"dubai":            "Asia/Dubai",
	"дубай":            "Asia/Dubai",
}

// Timezone is either an IANA zone or a fixed UTC offset named like "UTC+03:00".
type Timezone struct {
	name string
	loc  *time.Location
}

func (t Timezone) String() string {
	return t.name
}

func (t Timezone) Name() string {
	return t.name
}

func (t Timezone) Location() *time.Location {
	if t.loc == nil {
		return time.UTC
	}
	return t.loc
}

var UTC = Timezone{name: "UTC", loc: time.UTC}

// ParseTimezone resolves an IANA name, a city alias or a fixed UTC offset.
func ParseTimezone(spec string) (Timezone, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Timezone{}, ErrInvalidTimezone
	}
	upper := strings.ToUpper(spec)
	if upper == "UTC" || upper == "GMT" || upper == "Z" {
		return UTC, nil
	}

	if match := reFixedOffset.FindStringSubmatch(spec); match != nil {
		return parseFixedOffset(match[1], match[2], match[3])
	}

	if zone, ok := cityAliases[strings.ToLower(spec)]; ok {
		spec = zone
	}
	// "Local" would silently bind to the host zone.
	if spec == "Local" {
		return Timezone{}, fmt.Errorf("%q: %w", spec, ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(spec)
	if err != nil {
		return Timezone{}, fmt.Errorf("%q: %w", spec, ErrInvalidTimezone)
	}
	return Timezone{name: loc.String(), loc: loc}, nil
}

func MustParseTimezone(spec string) Timezone {
	tz, err := ParseTimezone(spec)
	if err != nil {
		panic(err)
	}
	return tz
}

func parseFixedOffset(sign string, rawHours string, rawMinutes string) (Timezone, error) {
	hours, err := strconv.Atoi(rawHours)
	if err != nil {
		return Timezone{}, ErrInvalidTimezone
	}
	var minutes int
	if rawMinutes != "" {
		minutes, err = strconv.Atoi(rawMinutes)
		if err != nil {
			return Timezone{}, ErrInvalidTimezone
		}
	}
	if minutes >= 60 {
		return Timezone{}, ErrInvalidTimezone
	}
	total := hours*60 + minutes
	if total > MAX_OFFSET_MINUTES {
		return Timezone{}, ErrInvalidTimezone
	}
	if sign == "-" {
		total = -total
	}
	return NewFixedOffset(total), nil
}

// NewFixedOffset builds a fixed zone, offset is in minutes east of UTC.
func NewFixedOffset(offsetMinutes int) Timezone {
	if offsetMinutes == 0 {
		return Timezone{name: "UTC+00:00", loc: time.FixedZone("UTC+00:00", 0)}
	}
	sign := "+"
	abs := offsetMinutes
	if offsetMinutes < 0 {
		sign = "-"
		abs = -offsetMinutes
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/60, abs%60)
	return Timezone{name: name, loc: time.FixedZone(name, offsetMinutes*60)}
}

// TimezoneFromLocalTime derives a fixed offset from the wall clock the user sees right now.
// Of the same-day, next-day and previous-day readings the one closest to UTC wins.
// The offset is rounded to 15 minutes and clamped to ±14:00.
func TimezoneFromLocalTime(hhmm string, now time.Time) (Timezone, error) {
	match := reLocalTime.FindStringSubmatch(strings.TrimSpace(hhmm))
	if match == nil {
		return Timezone{}, ErrInvalidTimezone
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	if hours > 23 || minutes > 59 {
		return Timezone{}, ErrInvalidTimezone
	}

	now = now.UTC()
	sameDay := (hours*60 + minutes) - (now.Hour()*60 + now.Minute())
	diff := sameDay
	for _, candidate := range []int{sameDay + 1440, sameDay - 1440} {
		if abs(candidate) < abs(diff) {
			diff = candidate
		}
	}
	diff = roundToQuarter(diff)
	if diff > MAX_OFFSET_MINUTES {
		diff = MAX_OFFSET_MINUTES
	}
	if diff < -MAX_OFFSET_MINUTES {
		diff = -MAX_OFFSET_MINUTES
	}
	return NewFixedOffset(diff), nil
}

func IsLocalTime(s string) bool {
	return reLocalTime.MatchString(strings.TrimSpace(s))
}

func roundToQuarter(minutes int) int {
	if minutes >= 0 {
		return (minutes + 7) / 15 * 15
	}
	return -((-minutes + 7) / 15 * 15)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
