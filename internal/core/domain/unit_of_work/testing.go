package uow

import (
	"context"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
)

type FakeUnitOfWorkContext struct {
	ReminderRepository   *reminder.FakeRepository
	PreferenceRepository *preference.FakeRepository
	WasRollbackCalled    bool
	WasCommitCalled      bool
	CommitError          error
}

func NewFakeUnitOfWorkContext(
	reminderRepository *reminder.FakeRepository,
	preferenceRepository *preference.FakeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		ReminderRepository:   reminderRepository,
		PreferenceRepository: preferenceRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.CommitError != nil {
		return c.CommitError
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.Repository {
	return c.ReminderRepository
}

func (c *FakeUnitOfWorkContext) Preferences() preference.Repository {
	return c.PreferenceRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			reminder.NewFakeRepository(),
			preference.NewFakeRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Reminders() *reminder.FakeRepository {
	return u.Context.ReminderRepository
}

func (u *FakeUnitOfWork) Preferences() *preference.FakeRepository {
	return u.Context.PreferenceRepository
}
