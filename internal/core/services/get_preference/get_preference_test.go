package getpreference

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

var Defaults = preference.Defaults{
	Timezone: preference.MustParseTimezone("Asia/Bangkok"),
	Language: preference.LanguageRU,
}

func TestFallsBackToDefaults(t *testing.T) {
	// Setup ---
	repo := preference.NewFakeRepository()
	service := New(logging.NewFakeLogger(), repo, Defaults)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{User: user.User{ID: 1, ChatID: 10}})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.IsDefault)
	assert.Equal("Asia/Bangkok", result.Preference.Timezone.Name())
	assert.Equal(preference.LanguageRU, result.Preference.Language)
	assert.Equal(user.ChatID(10), result.Preference.ChatID)
	assert.Empty(repo.Preferences)
}

func TestReturnsStoredPreference(t *testing.T) {
	// Setup ---
	repo := preference.NewFakeRepository()
	repo.Preferences[user.ID(1)] = preference.Preference{
		UserID:   1,
		Timezone: preference.MustParseTimezone("Europe/Moscow"),
		Language: preference.LanguageEN,
	}
	service := New(logging.NewFakeLogger(), repo, Defaults)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{User: user.User{ID: 1}})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(result.IsDefault)
	assert.Equal("Europe/Moscow", result.Preference.Timezone.Name())
	assert.Equal(preference.LanguageEN, result.Preference.Language)
}

func TestRepositoryError(t *testing.T) {
	// Setup ---
	repo := preference.NewFakeRepository()
	repo.GetError = errors.New("disk I/O error")
	log := logging.NewFakeLogger()
	service := New(log, repo, Defaults)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{User: user.User{ID: 1}})

	// Verify ---
	require.ErrorIs(t, err, repo.GetError)
	require.Len(t, log.Records(logging.ERROR), 1)
}
