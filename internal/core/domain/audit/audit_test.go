package audit

import (
	"remindbot/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventWithDoesNotMutateOriginal(t *testing.T) {
	assert := require.New(t)

	base := NewEvent(ActionList, user.User{ID: 1, ChatID: 2})
	withCount := base.With("count", 3)

	assert.Empty(base.Fields)
	assert.Equal(map[string]interface{}{"count": 3}, withCount.Fields)
	assert.Equal(ActionList, withCount.Action)
}
