package listuserreminders

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var At = time.Date(2024, 2, 2, 2, 0, 0, 0, time.UTC)

func TestListOnlyOwnPendingReminders(t *testing.T) {
	cases := []struct {
		id          string
		limit       c.Optional[uint]
		expectedIDs []reminder.ID
	}{
		{id: "1", expectedIDs: []reminder.ID{3, 1, 4}},
		{id: "2", limit: c.NewOptional[uint](2, true), expectedIDs: []reminder.ID{3, 1}},
		{id: "3", limit: c.NewOptional[uint](10, true), expectedIDs: []reminder.ID{3, 1, 4}},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			repo := reminder.NewFakeRepository()
			repo.Add(reminder.Reminder{ID: 1, UserID: 1, At: At.Add(time.Hour), Status: reminder.StatusPending})
			repo.Add(reminder.Reminder{ID: 2, UserID: 2, At: At, Status: reminder.StatusPending})
			repo.Add(reminder.Reminder{ID: 3, UserID: 1, At: At, Status: reminder.StatusPending})
			repo.Add(reminder.Reminder{ID: 4, UserID: 1, At: At.Add(2 * time.Hour), Status: reminder.StatusPending})
			repo.Add(reminder.Reminder{ID: 5, UserID: 1, At: At, Status: reminder.StatusCancelled})
			service := New(logging.NewFakeLogger(), repo, 0)

			// Exercise ---
			result, err := service.Run(context.Background(), Input{User: user.User{ID: 1}, Limit: testcase.limit})

			// Verify ---
			assert := require.New(t)
			assert.Nil(err)
			ids := make([]reminder.ID, 0, len(result.Reminders))
			for _, rem := range result.Reminders {
				ids = append(ids, rem.ID)
			}
			assert.Equal(testcase.expectedIDs, ids)
		})
	}
}

func TestDefaultLimitIsApplied(t *testing.T) {
	// Setup ---
	repo := reminder.NewFakeRepository()
	service := New(logging.NewFakeLogger(), repo, 7)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{User: user.User{ID: 1}})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(c.NewOptional[uint](7, true), repo.ListWith[0].Limit)
	assert.Equal(c.NewOptional(user.ID(1), true), repo.ListWith[0].UserID)
}

func TestListError(t *testing.T) {
	// Setup ---
	repo := reminder.NewFakeRepository()
	repo.ListError = errors.New("database is locked")
	service := New(logging.NewFakeLogger(), repo, 0)

	// Exercise ---
	_, err := service.Run(context.Background(), Input{User: user.User{ID: 1}})

	// Verify ---
	require.ErrorIs(t, err, repo.ListError)
}
