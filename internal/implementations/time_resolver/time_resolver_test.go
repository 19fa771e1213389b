package timeresolver

import (
	"context"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	Reference = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	Bangkok   = tz("Asia/Bangkok")
)

func TestRelativeResolvedSuccessfully(t *testing.T) {
	cases := []struct {
		id           string
		query        string
		expectedAt   time.Time
		expectedBody string
	}{
		{id: "1", query: "10m tea", expectedAt: Reference.Add(10 * time.Minute), expectedBody: "tea"},
		{id: "2", query: "через 2 ч 15 мин отчёт", expectedAt: Reference.Add(2*time.Hour + 15*time.Minute), expectedBody: "отчёт"},
		{id: "3", query: "in 1h, 30m Call Mom", expectedAt: Reference.Add(90 * time.Minute), expectedBody: "Call Mom"},
		{id: "4", query: "1h30m stretch", expectedAt: Reference.Add(90 * time.Minute), expectedBody: "stretch"},
		{id: "5", query: "10 buy milk", expectedAt: Reference.Add(10 * time.Minute), expectedBody: "buy milk"},
		{id: "6", query: "2d и 3h x", expectedAt: Reference.Add(51 * time.Hour), expectedBody: "x"},
		{id: "7", query: "1 mo rent", expectedAt: Reference.Add(30 * 24 * time.Hour), expectedBody: "rent"},
		{id: "8", query: "1y", expectedAt: Reference.Add(365 * 24 * time.Hour), expectedBody: ""},
		{id: "9", query: "  5 мин.  ", expectedAt: Reference.Add(5 * time.Minute), expectedBody: ""},
		{id: "10", query: "5m line one\nline two", expectedAt: Reference.Add(5 * time.Minute), expectedBody: "line one\nline two"},
		{id: "11", query: "30s", expectedAt: Reference.Add(30 * time.Second), expectedBody: ""},
		{id: "12", query: "за 1 неделю сдать", expectedAt: Reference.Add(7 * 24 * time.Hour), expectedBody: "сдать"},
		{id: "13", query: "15m and", expectedAt: Reference.Add(15 * time.Minute), expectedBody: "and"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Exercise ---
			res, err := New().Resolve(context.Background(), reminder.Query{
				Text:      testcase.query,
				Location:  Bangkok,
				Reference: Reference,
				Shape:     reminder.ShapeRelative,
			})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedAt, res.At)
			assert.Equal(testcase.expectedBody, res.Body)
			assert.Equal(reminder.ShapeRelative, res.Shape)
			assert.Equal(testcase.expectedAt.Sub(Reference), res.Delay)
			assert.False(res.HasDate)
		})
	}
}

func TestRelativeIgnoresDaylightSaving(t *testing.T) {
	// Setup ---
	reference := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	// Exercise ---
	res, err := New().Resolve(context.Background(), reminder.Query{
		Text:      "1d",
		Location:  tz("America/New_York"),
		Reference: reference,
		Shape:     reminder.ShapeRelative,
	})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(reference.Add(24*time.Hour), res.At)
}

func TestAbsoluteResolvedSuccessfully(t *testing.T) {
	cases := []struct {
		id              string
		query           string
		location        *time.Location
		expectedAt      time.Time
		expectedBody    string
		expectedHasDate bool
	}{
		{id: "1", query: "20:30 dinner", expectedAt: utc(2024, 3, 10, 13, 30), expectedBody: "dinner"},
		{id: "2", query: "18:00 gym", expectedAt: utc(2024, 3, 11, 11, 0), expectedBody: "gym"},
		{id: "3", query: "at 9pm movie", expectedAt: utc(2024, 3, 10, 14, 0), expectedBody: "movie"},
		{id: "4", query: "в 9 подъём", expectedAt: utc(2024, 3, 11, 2, 0), expectedBody: "подъём"},
		{id: "5", query: "завтра в 10:00 врач", expectedAt: utc(2024, 3, 11, 3, 0), expectedBody: "врач", expectedHasDate: true},
		{id: "6", query: "послезавтра 08.30 x", expectedAt: utc(2024, 3, 12, 1, 30), expectedBody: "x", expectedHasDate: true},
		{id: "7", query: "25.12 10:00 gifts", expectedAt: utc(2024, 12, 25, 3, 0), expectedBody: "gifts", expectedHasDate: true},
		{id: "8", query: "10:00 2024-12-25 gifts", expectedAt: utc(2024, 12, 25, 3, 0), expectedBody: "gifts", expectedHasDate: true},
		{id: "9", query: "01.03 09:00 x", expectedAt: utc(2025, 3, 1, 2, 0), expectedBody: "x", expectedHasDate: true},
		{id: "10", query: "01.03.2024 09:00 x", expectedAt: utc(2024, 3, 1, 2, 0), expectedBody: "x", expectedHasDate: true},
		{id: "11", query: "day after tomorrow at 7am run", expectedAt: utc(2024, 3, 12, 0, 0), expectedBody: "run", expectedHasDate: true},
		{id: "12", query: "12am", expectedAt: utc(2024, 3, 10, 17, 0), expectedBody: ""},
		{id: "13", query: "10.30 coffee", expectedAt: utc(2024, 3, 11, 3, 30), expectedBody: "coffee"},
		{id: "14", query: "сегодня 18:00 x", expectedAt: utc(2024, 3, 10, 11, 0), expectedBody: "x", expectedHasDate: true},
		{id: "15", query: "Tomorrow 9:15 Standup", expectedAt: utc(2024, 3, 11, 2, 15), expectedBody: "Standup", expectedHasDate: true},
		{
			id:           "16",
			query:        "20:30 x",
			location:     preference.MustParseTimezone("UTC+05:30").Location(),
			expectedAt:   utc(2024, 3, 10, 15, 0),
			expectedBody: "x",
		},
		{
			id:              "17",
			query:           "завтра в 07:00 x",
			location:        tz("America/New_York"),
			expectedAt:      utc(2024, 3, 11, 11, 0),
			expectedBody:    "x",
			expectedHasDate: true,
		},
		{id: "18", query: "29.02 10:00 x", expectedAt: utc(2028, 2, 29, 3, 0), expectedBody: "x", expectedHasDate: true},
		{id: "19", query: "29.02.2028 10:00 x", expectedAt: utc(2028, 2, 29, 3, 0), expectedBody: "x", expectedHasDate: true},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			location := testcase.location
			if location == nil {
				location = Bangkok
			}

			// Exercise ---
			res, err := New().Resolve(context.Background(), reminder.Query{
				Text:      testcase.query,
				Location:  location,
				Reference: Reference,
				Shape:     reminder.ShapeAbsolute,
			})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedAt, res.At)
			assert.Equal(testcase.expectedBody, res.Body)
			assert.Equal(testcase.expectedHasDate, res.HasDate)
			assert.Equal(reminder.ShapeAbsolute, res.Shape)
		})
	}
}

func TestAnyShape(t *testing.T) {
	cases := []struct {
		id            string
		query         string
		expectedAt    time.Time
		expectedShape reminder.Shape
	}{
		{id: "1", query: "10m tea", expectedAt: Reference.Add(10 * time.Minute), expectedShape: reminder.ShapeRelative},
		{id: "2", query: "21:00 tea", expectedAt: utc(2024, 3, 10, 14, 0), expectedShape: reminder.ShapeAbsolute},
		{id: "3", query: "5 pm tea", expectedAt: utc(2024, 3, 11, 10, 0), expectedShape: reminder.ShapeAbsolute},
		{id: "4", query: "5pm tea", expectedAt: utc(2024, 3, 11, 10, 0), expectedShape: reminder.ShapeAbsolute},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Exercise ---
			res, err := New().Resolve(context.Background(), reminder.Query{
				Text:      testcase.query,
				Location:  Bangkok,
				Reference: Reference,
			})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedAt, res.At)
			assert.Equal("tea", res.Body)
			assert.Equal(testcase.expectedShape, res.Shape)
		})
	}
}

func TestLeapDayWithoutYear(t *testing.T) {
	cases := []struct {
		id         string
		reference  time.Time
		expectedAt time.Time
	}{
		{id: "leap-year-before", reference: utc(2024, 1, 10, 0, 0), expectedAt: utc(2024, 2, 29, 3, 0)},
		{id: "leap-year-after", reference: utc(2024, 3, 10, 0, 0), expectedAt: utc(2028, 2, 29, 3, 0)},
		{id: "common-year", reference: utc(2025, 1, 10, 0, 0), expectedAt: utc(2028, 2, 29, 3, 0)},
		{id: "same-day-passed", reference: utc(2028, 2, 29, 5, 0), expectedAt: utc(2032, 2, 29, 3, 0)},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Exercise ---
			res, err := New().Resolve(context.Background(), reminder.Query{
				Text:      "29.02 10:00 x",
				Location:  Bangkok,
				Reference: testcase.reference,
				Shape:     reminder.ShapeAbsolute,
			})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedAt, res.At)
			assert.True(res.HasDate)
		})
	}
}

func TestNotResolved(t *testing.T) {
	cases := []struct {
		id    string
		query string
		shape reminder.Shape
	}{
		{id: "1", query: "tea", shape: reminder.ShapeRelative},
		{id: "2", query: "at 10:00 tea", shape: reminder.ShapeRelative},
		{id: "3", query: "0m tea", shape: reminder.ShapeRelative},
		{id: "4", query: "5pm", shape: reminder.ShapeRelative},
		{id: "5", query: "", shape: reminder.ShapeAny},
		{id: "6", query: "   ", shape: reminder.ShapeAny},
		{id: "7", query: "через tea", shape: reminder.ShapeRelative},
		{id: "8", query: "завтра купить хлеб", shape: reminder.ShapeAbsolute},
		{id: "9", query: "25:00 x", shape: reminder.ShapeAbsolute},
		{id: "10", query: "31.02 10:00 x", shape: reminder.ShapeAbsolute},
		{id: "11", query: "10m tea", shape: reminder.ShapeAbsolute},
		{id: "12", query: "at noon", shape: reminder.ShapeAbsolute},
		{id: "13", query: "13pm", shape: reminder.ShapeAbsolute},
		{id: "14", query: "10:75 x", shape: reminder.ShapeAny},
		{id: "15", query: "29.02.2025 10:00 x", shape: reminder.ShapeAbsolute},
		{id: "16", query: "30.02 10:00 x", shape: reminder.ShapeAbsolute},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Exercise ---
			_, err := New().Resolve(context.Background(), reminder.Query{
				Text:      testcase.query,
				Location:  Bangkok,
				Reference: Reference,
				Shape:     testcase.shape,
			})

			// Verify ---
			require.ErrorIs(t, err, reminder.ErrParse)
		})
	}
}

func utc(year int, month time.Month, day int, hour int, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func tz(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
