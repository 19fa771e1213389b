package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdmins(t *testing.T) {
	admins := ParseAdmins([]string{"100", " @Alice ", "bob", "", "  "})

	cases := []struct {
		id       string
		user     User
		expected bool
	}{
		{id: "1", user: User{ID: 100}, expected: true},
		{id: "2", user: User{ID: 1, Username: "alice"}, expected: true},
		{id: "3", user: User{ID: 2, Username: "BOB"}, expected: true},
		{id: "4", user: User{ID: 3, Username: "carol"}, expected: false},
		{id: "5", user: User{ID: 4}, expected: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.expected, admins.IsAdmin(testcase.user))
		})
	}
	require.Equal(t, 3, admins.Len())
}

func TestUserString(t *testing.T) {
	require.Equal(t, "42", User{ID: 42}.String())
	require.Equal(t, "@alice", User{ID: 42, Username: "alice"}.String())
}
