package setlanguage

import (
	"context"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var Defaults = preference.Defaults{
	Timezone: preference.MustParseTimezone("Asia/Bangkok"),
	Language: preference.LanguageRU,
}

func TestSetLanguage(t *testing.T) {
	// Setup ---
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := preference.NewFakeRepository()
	service := New(logging.NewFakeLogger(), repo, Defaults, func() time.Time { return now })
	u := user.User{ID: 3, ChatID: 30}

	// Exercise ---
	result, err := service.Run(context.Background(), Input{User: u, Language: " EN "})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(preference.LanguageEN, result.Preference.Language)
	assert.Equal("Asia/Bangkok", repo.Preferences[u.ID].Timezone.Name())
}

func TestSetLanguageUnsupported(t *testing.T) {
	// Setup ---
	repo := preference.NewFakeRepository()
	service := New(logging.NewFakeLogger(), repo, Defaults, time.Now)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{User: user.User{ID: 3}, Language: "th"})

	// Verify ---
	require.ErrorIs(t, err, preference.ErrInvalidLanguage)
	require.Empty(t, repo.Preferences)
}
