package audit

import (
	"context"
	"remindbot/internal/core/domain/user"
)

const (
	ActionStart          = "cmd:/start"
	ActionHelp           = "cmd:/help"
	ActionList           = "cmd:/list"
	ActionCancel         = "cmd:/cancel"
	ActionTimezone       = "cmd:/tz"
	ActionLanguage       = "cmd:/lang"
	ActionRestart        = "cmd:/botrestart"
	ActionCreateIn       = "create:reminder_in"
	ActionCreateAt       = "create:reminder_at"
	ActionSnooze         = "create:snooze"
	ActionSetTimezone    = "set:tz"
	ActionSetTzOffset    = "set:tz_offset"
	ActionSetLanguage    = "set:lang"
	ActionCallbackIn     = "cb:in"
	ActionCallbackSnooze = "cb:snooze"
	ActionCallback       = "cb"
	ActionDeliver        = "deliver"
	ActionUnknownInput   = "msg:unknown"
	ActionCreateFailure  = "create:failed"
	ActionSnoozeCommand  = "cmd:/snooze"
	ActionIn             = "cmd:/in"
	ActionAt             = "cmd:/at"
	ActionText           = "text"
	ActionFailure        = "error"
)

// MAX_TEXT_LEN limits how much of a user message is copied into an event.
const MAX_TEXT_LEN = 200

// Event is a single audit record. Fields are written as top-level JSON keys.
type Event struct {
	Action string
	User   user.User
	Fields map[string]interface{}
}

func NewEvent(action string, u user.User) Event {
	return Event{Action: action, User: u, Fields: make(map[string]interface{})}
}

func (e Event) With(key string, value interface{}) Event {
	fields := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value
	e.Fields = fields
	return e
}

type EventID string

type EventIDGenerator interface {
	GenerateEventID() EventID
}

type Auditor interface {
	Record(ctx context.Context, event Event)
}
