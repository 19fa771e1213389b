package ensurepreference

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	Now      = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	User     = user.User{ID: 1, ChatID: 10}
	Defaults = preference.Defaults{
		Timezone: preference.MustParseTimezone("Asia/Bangkok"),
		Language: preference.LanguageRU,
	}
)

func TestEnsure(t *testing.T) {
	cases := []struct {
		id               string
		stored           *preference.Preference
		expectedTimezone string
	}{
		{id: "new", expectedTimezone: "Asia/Bangkok"},
		{
			id:               "existing",
			stored:           &preference.Preference{UserID: User.ID, Timezone: preference.UTC, Language: preference.LanguageEN},
			expectedTimezone: "UTC",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			repo := preference.NewFakeRepository()
			if testcase.stored != nil {
				repo.Preferences[User.ID] = *testcase.stored
			}
			service := New(logging.NewFakeLogger(), repo, Defaults, func() time.Time { return Now })

			// Exercise ---
			result, err := service.Run(context.Background(), Input{User: User})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			assert.Equal(testcase.expectedTimezone, result.Preference.Timezone.Name())
			assert.Contains(repo.Preferences, User.ID)
			assert.Equal(
				[]preference.EnsureInput{{UserID: User.ID, ChatID: User.ChatID, Defaults: Defaults, CreatedAt: Now}},
				repo.EnsureWith,
			)
		})
	}
}

func TestEnsureError(t *testing.T) {
	// Setup ---
	repo := preference.NewFakeRepository()
	repo.SetError = errors.New("disk full")
	log := logging.NewFakeLogger()
	service := New(log, repo, Defaults, func() time.Time { return Now })

	// Exercise ---
	_, err := service.Run(context.Background(), Input{User: User})

	// Verify ---
	require.ErrorIs(t, err, repo.SetError)
	require.Len(t, log.Records(logging.ERROR), 1)
}
