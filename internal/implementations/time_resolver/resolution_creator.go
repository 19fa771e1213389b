package timeresolver

import (
	"fmt"
	"remindbot/internal/core/domain/reminder"
	"time"

	"github.com/golang-module/carbon/v2"
)

// Day-month dates without a year are looked up this many years ahead, enough to reach a leap year.
const MAX_YEARS_AHEAD = 8

type resolutionCreator struct {
	reference carbon.Carbon
	at        carbon.Carbon
	hasDate   bool
}

func newResolutionCreator(reference time.Time) *resolutionCreator {
	return &resolutionCreator{
		reference: carbon.Time2Carbon(reference),
		at:        carbon.Time2Carbon(reference),
	}
}

// visitIn works on the UTC reference so that a day is always 24 hours.
func (c *resolutionCreator) visitIn(in in) error {
	c.at = carbon.Time2Carbon(c.reference.Carbon2Time().UTC())
	for _, part := range in.parts {
		n := int(part.n)
		switch part.p {
		case second:
			c.at = c.at.AddSeconds(n)
		case minute:
			c.at = c.at.AddMinutes(n)
		case hour:
			c.at = c.at.AddHours(n)
		case day:
			c.at = c.at.AddDays(n)
		case week:
			c.at = c.at.AddWeeks(n)
		case month:
			c.at = c.at.AddDays(30 * n)
		case year:
			c.at = c.at.AddDays(365 * n)
		default:
			return fmt.Errorf("in period is invalid, %w", reminder.ErrParse)
		}
	}
	if !c.at.Gt(c.reference) {
		return fmt.Errorf("zero duration, %w", reminder.ErrParse)
	}
	return nil
}

func (c *resolutionCreator) visitAt(at at) error {
	if at.hour > 23 {
		return fmt.Errorf("invalid at hour, %w", reminder.ErrParse)
	}
	if at.minute > 59 {
		return fmt.Errorf("invalid at minute, %w", reminder.ErrParse)
	}

	c.at = c.at.SetTimeMicro(int(at.hour), int(at.minute), 0, 0)
	if !c.hasDate && c.at.Lte(c.reference) {
		c.at = c.at.AddDay()
	}
	return nil
}

func (c *resolutionCreator) visitOn(on on) error {
	if on.at == nil {
		return fmt.Errorf("date without time, %w", reminder.ErrParse)
	}

	switch on.day {
	case noDay:
		return on.at.accept(c)
	case today:
		// do nothing
	case tomorrow:
		c.at = c.at.AddDay()
	case afterTomorrow:
		c.at = c.at.AddDays(2)
	case onExplicitDate:
		at, err := c.explicitDate(on.date, *on.at)
		if err != nil {
			return err
		}
		c.at = at
		c.hasDate = true
		return nil
	default:
		return fmt.Errorf("on day is invalid, %w", reminder.ErrParse)
	}
	c.hasDate = true
	return on.at.accept(c)
}

func (c *resolutionCreator) explicitDate(d date, at at) (carbon.Carbon, error) {
	if at.hour > 23 || at.minute > 59 {
		return carbon.Carbon{}, fmt.Errorf("invalid time, %w", reminder.ErrParse)
	}
	ref := c.reference.Carbon2Time()
	if d.year != 0 {
		t, ok := dateAt(int(d.year), d, at, ref.Location())
		if !ok {
			return carbon.Carbon{}, fmt.Errorf("invalid date, %w", reminder.ErrParse)
		}
		return carbon.Time2Carbon(t), nil
	}

	// A date without a year refers to its next occurrence, 29.02 may be years away.
	for year := ref.Year(); year <= ref.Year()+MAX_YEARS_AHEAD; year++ {
		t, ok := dateAt(year, d, at, ref.Location())
		if !ok {
			continue
		}
		result := carbon.Time2Carbon(t)
		if result.Gt(c.reference) {
			return result, nil
		}
	}
	return carbon.Carbon{}, fmt.Errorf("invalid date, %w", reminder.ErrParse)
}

// dateAt reports false when the day does not exist in that month of year.
func dateAt(year int, d date, at at, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(d.month), int(d.day), int(at.hour), int(at.minute), 0, 0, loc)
	return t, t.Day() == int(d.day) && t.Month() == time.Month(d.month)
}
