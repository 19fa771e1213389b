package timeresolver

import (
	"context"
	"regexp"
	"remindbot/internal/core/domain/reminder"
	"strconv"
	"strings"
	"time"
)

var (
	reToken         = regexp.MustCompile(`\S+`)
	reNumberUnits   = regexp.MustCompile(`^(?:\d{1,6}\p{L}+)+$`)
	reNumberUnit    = regexp.MustCompile(`(\d{1,6})(\p{L}+)`)
	reNumber        = regexp.MustCompile(`^\d{1,6}$`)
	reColonTime     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	reDotTime       = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
	reAmPmTime      = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)$`)
	reDayMonth      = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})$`)
	reDayMonthYear  = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})$`)
	reYearMonthDay  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	relativeMarkers = map[string]struct{}{"in": {}, "after": {}, "through": {}, "через": {}, "за": {}}
	atMarkers       = map[string]struct{}{"at": {}, "в": {}, "во": {}}
	connectors      = map[string]struct{}{"и": {}, "and": {}, ",": {}}
	amPm            = map[string]struct{}{"am": {}, "pm": {}}
	units           = map[string]period{
		"s": second, "sec": second, "secs": second, "second": second, "seconds": second,
		"с": second, "сек": second, "секунда": second, "секунды": second, "секунд": second, "секунду": second,
		"m": minute, "min": minute, "mins": minute, "minute": minute, "minutes": minute,
		"м": minute, "мин": minute, "минута": minute, "минуты": minute, "минут": minute, "минуту": minute,
		"h": hour, "hr": hour, "hrs": hour, "hour": hour, "hours": hour,
		"ч": hour, "час": hour, "часа": hour, "часов": hour,
		"d": day, "day": day, "days": day,
		"д": day, "день": day, "дня": day, "дней": day,
		"w": week, "wk": week, "week": week, "weeks": week,
		"н": week, "нед": week, "неделя": week, "недели": week, "недель": week, "неделю": week,
		"mo": month, "mon": month, "month": month, "months": month,
		"мес": month, "месяц": month, "месяца": month, "месяцев": month,
		"y": year, "yr": year, "year": year, "years": year,
		"г": year, "год": year, "года": year, "лет": year,
	}
	dayWords = map[string]onDay{
		"today": today, "сегодня": today,
		"tomorrow": tomorrow, "tmr": tomorrow, "tmrw": tomorrow, "завтра": tomorrow,
		"послезавтра": afterTomorrow,
	}
)

// token is a whitespace separated word of the query with its offset in the original text.
type token struct {
	value string
	start int
}

type Resolver struct{}

func New() reminder.TimeResolver {
	return &Resolver{}
}

func (r *Resolver) Resolve(ctx context.Context, query reminder.Query) (res reminder.Resolution, err error) {
	location := query.Location
	if location == nil {
		location = time.UTC
	}
	reference := query.Reference.In(location)
	tokens := tokenize(query.Text)
	if len(tokens) == 0 {
		return res, reminder.ErrParse
	}

	var (
		parsed   node
		consumed int
		shape    reminder.Shape
	)
	if query.Shape != reminder.ShapeAbsolute {
		if n, count := parseIn(tokens); count > 0 {
			parsed, consumed, shape = n, count, reminder.ShapeRelative
		}
	}
	if parsed == nil && query.Shape != reminder.ShapeRelative {
		if n, count := parseAbsolute(tokens); count > 0 {
			parsed, consumed, shape = n, count, reminder.ShapeAbsolute
		}
	}
	if parsed == nil {
		return res, reminder.ErrParse
	}

	creator := newResolutionCreator(reference)
	if err := parsed.accept(creator); err != nil {
		return res, err
	}

	res.At = creator.at.Carbon2Time().UTC()
	res.Shape = shape
	res.HasDate = creator.hasDate
	res.Delay = res.At.Sub(query.Reference)
	if consumed < len(tokens) {
		res.Body = strings.TrimSpace(query.Text[tokens[consumed].start:])
	}
	return res, nil
}

func tokenize(text string) []token {
	indexes := reToken.FindAllStringIndex(text, -1)
	tokens := make([]token, 0, len(indexes))
	for _, ix := range indexes {
		tokens = append(tokens, token{value: strings.ToLower(text[ix[0]:ix[1]]), start: ix[0]})
	}
	return tokens
}

func normalize(value string) string {
	return strings.TrimRight(value, ",.")
}

// parseIn reads a duration prefix such as "через 2 ч 15 мин" or "in 1h, 30m".
// It returns the number of consumed tokens, zero when the prefix is not a duration.
func parseIn(tokens []token) (in, int) {
	var result in
	ix := 0
	if _, ok := relativeMarkers[tokens[0].value]; ok {
		ix = 1
	}
	consumed := 0

	for ix < len(tokens) {
		value := normalize(tokens[ix].value)
		if _, ok := connectors[value]; ok || value == "" {
			if len(result.parts) == 0 {
				break
			}
			ix++
			continue
		}

		if reNumberUnits.MatchString(value) {
			parts, ok := parseNumberUnits(value)
			if !ok {
				break
			}
			result.parts = append(result.parts, parts...)
			ix++
			consumed = ix
			continue
		}

		if reNumber.MatchString(value) {
			n, _ := strconv.ParseUint(value, 10, 32)
			if ix+1 < len(tokens) {
				next := normalize(tokens[ix+1].value)
				if p, ok := units[next]; ok {
					result.parts = append(result.parts, inPart{p: p, n: uint(n)})
					ix += 2
					consumed = ix
					continue
				}
				if _, ok := amPm[next]; ok {
					break
				}
			}
			// A bare number means minutes, only as the first group.
			if len(result.parts) == 0 {
				result.parts = append(result.parts, inPart{p: minute, n: uint(n)})
				ix++
				consumed = ix
			}
			break
		}
		break
	}

	if len(result.parts) == 0 {
		return result, 0
	}
	return result, consumed
}

// parseAbsolute reads a prefix like "завтра в 9:30", "at 7pm", "25.12 10:00" or "10:00 2024-12-25".
func parseAbsolute(tokens []token) (on, int) {
	var result on
	ix := 0
	consumed := 0

	for ix < len(tokens) {
		value := normalize(tokens[ix].value)
		var next string
		if ix+1 < len(tokens) {
			next = normalize(tokens[ix+1].value)
		}

		if result.day == noDay {
			if value == "day" && ix+2 < len(tokens) &&
				tokens[ix+1].value == "after" && normalize(tokens[ix+2].value) == "tomorrow" {
				result.day = afterTomorrow
				ix += 3
				consumed = ix
				continue
			}
			if d, ok := dayWords[value]; ok {
				result.day = d
				ix++
				consumed = ix
				continue
			}
			// "10.05" is a date only next to a time, otherwise it is read as 10:05.
			if d, ok := parseDate(value, result.at != nil || isTimeStart(next)); ok {
				result.day = onExplicitDate
				result.date = d
				ix++
				consumed = ix
				continue
			}
		}

		if result.at != nil {
			break
		}

		if _, ok := atMarkers[value]; ok && next != "" {
			if t, n, ok := parseTime(tokens[ix+1:], true); ok {
				result.at = &t
				ix += 1 + n
				consumed = ix
				continue
			}
			break
		}
		if t, n, ok := parseTime(tokens[ix:], false); ok {
			result.at = &t
			ix += n
			consumed = ix
			continue
		}
		break
	}

	if result.at == nil {
		return result, 0
	}
	return result, consumed
}

// parseNumberUnits reads tokens like "10m" or "1h30m".
func parseNumberUnits(value string) ([]inPart, bool) {
	matches := reNumberUnit.FindAllStringSubmatch(value, -1)
	parts := make([]inPart, 0, len(matches))
	for _, match := range matches {
		p, ok := units[match[2]]
		if !ok {
			return nil, false
		}
		n, _ := strconv.ParseUint(match[1], 10, 32)
		parts = append(parts, inPart{p: p, n: uint(n)})
	}
	return parts, true
}

func isTimeStart(value string) bool {
	if _, ok := atMarkers[value]; ok {
		return true
	}
	return reColonTime.MatchString(value) || reAmPmTime.MatchString(value)
}

// parseTime returns the time of day and the number of consumed tokens.
// A bare hour is accepted after an "at" marker or with a separate am/pm token.
func parseTime(tokens []token, afterMarker bool) (at, int, bool) {
	if len(tokens) == 0 {
		return at{}, 0, false
	}
	value := normalize(tokens[0].value)

	if match := reColonTime.FindStringSubmatch(value); match != nil {
		return newAt(match[1], match[2], "")
	}
	if match := reDotTime.FindStringSubmatch(value); match != nil {
		return newAt(match[1], match[2], "")
	}
	if match := reAmPmTime.FindStringSubmatch(value); match != nil {
		return newAt(match[1], match[2], match[3])
	}
	if reNumber.MatchString(value) && len(value) <= 2 {
		if len(tokens) > 1 {
			if marker := normalize(tokens[1].value); marker == "am" || marker == "pm" {
				t, _, ok := newAt(value, "", marker)
				return t, 2, ok
			}
		}
		if afterMarker {
			return newAt(value, "", "")
		}
	}
	return at{}, 0, false
}

func newAt(rawHour string, rawMinute string, amOrPm string) (at, int, bool) {
	hour, err := strconv.ParseUint(rawHour, 10, 8)
	if err != nil {
		return at{}, 0, false
	}
	var minute uint64
	if rawMinute != "" {
		minute, err = strconv.ParseUint(rawMinute, 10, 8)
		if err != nil {
			return at{}, 0, false
		}
	}
	if amOrPm != "" && (hour < 1 || hour > 12) {
		return at{}, 0, false
	}
	if amOrPm == "am" && hour == 12 {
		hour = 0
	}
	if amOrPm == "pm" && hour != 12 {
		hour += 12
	}
	if hour > 23 || minute > 59 {
		return at{}, 0, false
	}
	return at{hour: uint(hour), minute: uint(minute)}, 1, true
}

func parseDate(value string, allowDayMonth bool) (date, bool) {
	if match := reYearMonthDay.FindStringSubmatch(value); match != nil {
		return newDate(match[1], match[2], match[3])
	}
	if match := reDayMonthYear.FindStringSubmatch(value); match != nil {
		return newDate(match[3], match[2], match[1])
	}
	if !allowDayMonth {
		return date{}, false
	}
	if match := reDayMonth.FindStringSubmatch(value); match != nil {
		return newDate("", match[2], match[1])
	}
	return date{}, false
}

func newDate(rawYear string, rawMonth string, rawDay string) (date, bool) {
	var d date
	if rawYear != "" {
		y, err := strconv.ParseUint(rawYear, 10, 16)
		if err != nil {
			return d, false
		}
		d.year = uint(y)
	}
	m, err := strconv.ParseUint(rawMonth, 10, 8)
	if err != nil || m < 1 || m > 12 {
		return d, false
	}
	dd, err := strconv.ParseUint(rawDay, 10, 8)
	if err != nil || dd < 1 || dd > 31 {
		return d, false
	}
	d.month = uint(m)
	d.day = uint(dd)
	return d, true
}
