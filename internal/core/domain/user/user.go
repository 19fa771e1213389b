package user

import (
	"strconv"
	"strings"
)

type ID int64

type ChatID int64

// User is the Telegram account a command came from.
type User struct {
	ID       ID
	ChatID   ChatID
	Username string
}

func (u User) String() string {
	if u.Username == "" {
		return strconv.FormatInt(int64(u.ID), 10)
	}
	return "@" + u.Username
}

// Admins is a set of numeric ids and usernames allowed to run admin commands.
type Admins struct {
	ids       map[ID]struct{}
	usernames map[string]struct{}
}

// ParseAdmins accepts a list of items like "123", "@alice" or "alice".
func ParseAdmins(items []string) Admins {
	admins := Admins{
		ids:       make(map[ID]struct{}),
		usernames: make(map[string]struct{}),
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if id, err := strconv.ParseInt(item, 10, 64); err == nil {
			admins.ids[ID(id)] = struct{}{}
			continue
		}
		admins.usernames[normalizeUsername(item)] = struct{}{}
	}
	return admins
}

func (a Admins) IsAdmin(u User) bool {
	if _, ok := a.ids[u.ID]; ok {
		return true
	}
	if u.Username == "" {
		return false
	}
	_, ok := a.usernames[normalizeUsername(u.Username)]
	return ok
}

func (a Admins) Len() int {
	return len(a.ids) + len(a.usernames)
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "@"))
}
