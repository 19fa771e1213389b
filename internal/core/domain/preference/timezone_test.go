package preference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimezoneSuccess(t *testing.T) {
	cases := []struct {
		id             string
		spec           string
		expectedName   string
		expectedOffset int
	}{
		{id: "1", spec: "Europe/Moscow", expectedName: "Europe/Moscow", expectedOffset: 3 * 3600},
		{id: "2", spec: "UTC", expectedName: "UTC"},
		{id: "3", spec: "utc", expectedName: "UTC"},
		{id: "4", spec: "UTC+03:00", expectedName: "UTC+03:00", expectedOffset: 3 * 3600},
		{id: "5", spec: "UTC-05:30", expectedName: "UTC-05:30", expectedOffset: -(5*3600 + 30*60)},
		{id: "6", spec: "UTC+14:00", expectedName: "UTC+14:00", expectedOffset: 14 * 3600},
		{id: "7", spec: "utc+7", expectedName: "UTC+07:00", expectedOffset: 7 * 3600},
		{id: "8", spec: "GMT-14", expectedName: "UTC-14:00", expectedOffset: -14 * 3600},
		{id: "9", spec: "+0530", expectedName: "UTC+05:30", expectedOffset: 5*3600 + 30*60},
		{id: "10", spec: "Москва", expectedName: "Europe/Moscow", expectedOffset: 3 * 3600},
		{id: "11", spec: " Asia/Bangkok ", expectedName: "Asia/Bangkok", expectedOffset: 7 * 3600},
	}

	// Moscow and Bangkok have no DST since 2014.
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			tz, err := ParseTimezone(testcase.spec)

			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedName, tz.Name())
			_, offset := at.In(tz.Location()).Zone()
			assert.Equal(testcase.expectedOffset, offset)
		})
	}
}

func TestParseTimezoneError(t *testing.T) {
	cases := []struct {
		id   string
		spec string
	}{
		{id: "1", spec: "UTC+15:00"},
		{id: "2", spec: "UTC+14:01"},
		{id: "3", spec: "UTC-14:30"},
		{id: "4", spec: "UTC+03:60"},
		{id: "5", spec: "Not/AZone"},
		{id: "6", spec: ""},
		{id: "7", spec: "Local"},
		{id: "8", spec: "../etc/passwd"},
		{id: "9", spec: "Mars"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := ParseTimezone(testcase.spec)
			require.ErrorIs(t, err, ErrInvalidTimezone)
		})
	}
}

func TestParsedTimezoneRoundTrip(t *testing.T) {
	for _, spec := range []string{"Europe/Moscow", "UTC+03:00", "UTC-09:30", "UTC"} {
		tz := MustParseTimezone(spec)
		again, err := ParseTimezone(tz.Name())
		require.Nil(t, err)
		require.Equal(t, tz.Name(), again.Name())
	}
}

func TestTimezoneFromLocalTime(t *testing.T) {
	cases := []struct {
		id           string
		hhmm         string
		now          time.Time
		expectedName string
	}{
		{id: "1", hhmm: "15:00", now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), expectedName: "UTC+03:00"},
		{id: "2", hhmm: "07:00", now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), expectedName: "UTC-05:00"},
		{id: "3", hhmm: "01:00", now: time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), expectedName: "UTC+07:00"},
		{id: "4", hhmm: "17:32", now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), expectedName: "UTC+05:30"},
		{id: "5", hhmm: "12:01", now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), expectedName: "UTC+00:00"},
		{id: "6", hhmm: "23:00", now: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), expectedName: "UTC-10:00"},
		{id: "7", hhmm: "00:00", now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), expectedName: "UTC-12:00"},
		{id: "8", hhmm: "00:30", now: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), expectedName: "UTC-10:30"},
		{id: "9", hhmm: "22:45", now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), expectedName: "UTC+00:45"},
		{id: "10", hhmm: "01:00", now: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), expectedName: "UTC+02:00"},
		{id: "11", hhmm: "13:00", now: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), expectedName: "UTC-10:00"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			tz, err := TimezoneFromLocalTime(testcase.hhmm, testcase.now)
			require.Nil(t, err)
			require.Equal(t, testcase.expectedName, tz.Name())
		})
	}

	_, err := TimezoneFromLocalTime("25:00", time.Now())
	require.ErrorIs(t, err, ErrInvalidTimezone)
	_, err = TimezoneFromLocalTime("noon", time.Now())
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestTimezoneFromLocalTimeKeepsLocalDate(t *testing.T) {
	// Setup ---
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	honolulu, err := time.LoadLocation("Pacific/Honolulu")
	require.Nil(t, err)

	// Exercise ---
	tz, err := TimezoneFromLocalTime(now.In(honolulu).Format("15:04"), now)

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("2024-01-01 23:00", now.In(tz.Location()).Format("2006-01-02 15:04"))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("en")
	require.Nil(t, err)
	require.Equal(t, LanguageEN, lang)

	lang, err = ParseLanguage("ru")
	require.Nil(t, err)
	require.Equal(t, LanguageRU, lang)

	_, err = ParseLanguage("th")
	require.ErrorIs(t, err, ErrInvalidLanguage)
}
