package reminder

import (
	"fmt"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MAX_BODY_LEN = 1024
	MAX_DURATION = 5 * 365 * 24 * time.Hour
	// Reminders delivered later than this after their due time are marked as late.
	LATE_THRESHOLD = time.Minute
	MIN_SNOOZE     = time.Minute
	MAX_SNOOZE     = 30 * 24 * time.Hour
)

type ID int64

type Reminder struct {
	ID          ID
	ChatID      user.ChatID
	UserID      user.ID
	Body        string
	At          time.Time
	Timezone    string
	Status      Status
	CreatedAt   time.Time
	DeliveredAt c.Optional[time.Time]
	CancelledAt c.Optional[time.Time]
}

func (r *Reminder) Validate() error {
	if r.DeliveredAt.IsPresent && r.CancelledAt.IsPresent {
		return e.NewInvalidStateError("either DeliveredAt or CancelledAt must not be set")
	}
	if r.Status == StatusDelivered && !r.DeliveredAt.IsPresent {
		return e.NewInvalidStateError("DeliveredAt must be set for delivered reminders")
	}
	if r.Status == StatusCancelled && !r.CancelledAt.IsPresent {
		return e.NewInvalidStateError("CancelledAt must be set for cancelled reminders")
	}
	if r.At.Location() != time.UTC {
		return e.NewInvalidStateError(fmt.Sprintf("At of reminder %d is not in UTC", r.ID))
	}
	return nil
}

func (r *Reminder) IsPending() bool {
	return r.Status == StatusPending
}

func (r *Reminder) IsOwnedBy(userID user.ID) bool {
	return r.UserID == userID
}

// NormalizeBody trims the text and validates its length.
func NormalizeBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return body, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > MAX_BODY_LEN {
		return body, ErrBodyTooLong
	}
	return body, nil
}
