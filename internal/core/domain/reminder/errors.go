package reminder

import "errors"

var (
	ErrParse            = errors.New("time expression is not recognized")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrReminderTooEarly = errors.New("reminder time has already passed")
	ErrReminderTooLate  = errors.New("reminder time is too far in the future")
	ErrEmptyBody        = errors.New("reminder text is empty")
	ErrBodyTooLong      = errors.New("reminder text is too long")
	ErrInvalidSnooze    = errors.New("snooze duration is not valid")
)
