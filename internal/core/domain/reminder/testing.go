package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"sort"
	"sync"
	"time"
)

// FakeRepository is an in-memory Repository with the same conditional
// update semantics as the SQL one.
type FakeRepository struct {
	Reminders   map[ID]Reminder
	CreateError error
	GetError    error
	ListError   error
	UpdateError error
	CreateWith  []CreateInput
	ListWith    []ListPendingInput
	nextID      ID
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Reminders: make(map[ID]Reminder)}
}

func (r *FakeRepository) Add(rem Reminder) Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	if rem.ID == 0 {
		r.nextID++
		rem.ID = r.nextID
	} else if rem.ID > r.nextID {
		r.nextID = rem.ID
	}
	r.Reminders[rem.ID] = rem
	return rem
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	r.CreateWith = append(r.CreateWith, input)
	r.lock.Unlock()
	return r.Add(Reminder{
		ChatID:    input.ChatID,
		UserID:    input.UserID,
		Body:      input.Body,
		At:        input.At,
		Timezone:  input.Timezone,
		Status:    StatusPending,
		CreatedAt: input.CreatedAt,
	}), nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.GetError != nil {
		return rem, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[id]
	if !ok {
		return rem, ErrReminderNotFound
	}
	return rem, nil
}

func (r *FakeRepository) ListPending(ctx context.Context, input ListPendingInput) ([]Reminder, error) {
	if r.ListError != nil {
		return nil, r.ListError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ListWith = append(r.ListWith, input)

	reminders := make([]Reminder, 0)
	for _, rem := range r.Reminders {
		if !rem.IsPending() {
			continue
		}
		if input.UserID.IsPresent && rem.UserID != input.UserID.Value {
			continue
		}
		reminders = append(reminders, rem)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].At.Equal(reminders[j].At) {
			return reminders[i].ID < reminders[j].ID
		}
		return reminders[i].At.Before(reminders[j].At)
	})
	if input.Limit.IsPresent && uint(len(reminders)) > input.Limit.Value {
		reminders = reminders[:input.Limit.Value]
	}
	return reminders, nil
}

func (r *FakeRepository) MarkDelivered(ctx context.Context, id ID, at time.Time) (Reminder, error) {
	return r.finish(id, func(rem *Reminder) {
		rem.Status = StatusDelivered
		rem.DeliveredAt = c.NewOptional(at, true)
	})
}

func (r *FakeRepository) Cancel(ctx context.Context, id ID, at time.Time) (Reminder, error) {
	return r.finish(id, func(rem *Reminder) {
		rem.Status = StatusCancelled
		rem.CancelledAt = c.NewOptional(at, true)
	})
}

func (r *FakeRepository) Release(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.UpdateError != nil {
		return rem, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[id]
	if !ok || rem.Status != StatusDelivered {
		return Reminder{}, ErrReminderNotFound
	}
	rem.Status = StatusPending
	rem.DeliveredAt = c.Optional[time.Time]{}
	r.Reminders[id] = rem
	return rem, nil
}

func (r *FakeRepository) finish(id ID, update func(rem *Reminder)) (rem Reminder, err error) {
	if r.UpdateError != nil {
		return rem, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[id]
	if !ok || !rem.IsPending() {
		return Reminder{}, ErrReminderNotFound
	}
	update(&rem)
	r.Reminders[id] = rem
	return rem, nil
}

type ArmedTimer struct {
	ID   ID
	At   time.Time
	Fire FireFunc
}

type FakeScheduler struct {
	Armed    []ArmedTimer
	Disarmed []ID
	Error    error
	lock     sync.Mutex
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) Arm(ctx context.Context, id ID, at time.Time, fire FireFunc) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Armed = append(s.Armed, ArmedTimer{ID: id, At: at, Fire: fire})
	return nil
}

func (s *FakeScheduler) Disarm(ctx context.Context, id ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Disarmed = append(s.Disarmed, id)
}

func (s *FakeScheduler) ArmedIDs() []ID {
	s.lock.Lock()
	defer s.lock.Unlock()
	ids := make([]ID, 0, len(s.Armed))
	for _, t := range s.Armed {
		ids = append(ids, t.ID)
	}
	return ids
}

type SentReminder struct {
	Reminder Reminder
	Options  SendOptions
}

type FakeSender struct {
	Sent      []SentReminder
	SentError error
	lock      sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) SendReminder(ctx context.Context, r Reminder, options SendOptions) error {
	if s.SentError != nil {
		return s.SentError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentReminder{Reminder: r, Options: options})
	return nil
}

type FakeTimeResolver struct {
	Result       Resolution
	Error        error
	ResolvedWith []Query
}

func NewFakeTimeResolver() *FakeTimeResolver {
	return &FakeTimeResolver{}
}

func (r *FakeTimeResolver) Resolve(ctx context.Context, query Query) (Resolution, error) {
	r.ResolvedWith = append(r.ResolvedWith, query)
	if r.Error != nil {
		return Resolution{}, r.Error
	}
	return r.Result, nil
}
