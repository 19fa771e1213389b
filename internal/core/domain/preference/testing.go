package preference

import (
	"context"
	"remindbot/internal/core/domain/user"
	"sync"
)

type FakeRepository struct {
	Preferences map[user.ID]Preference
	GetError    error
	SetError    error
	EnsureWith  []EnsureInput
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Preferences: make(map[user.ID]Preference)}
}

func (r *FakeRepository) Get(ctx context.Context, userID user.ID) (Preference, error) {
	if r.GetError != nil {
		return Preference{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.Preferences[userID]
	if !ok {
		return p, ErrPreferenceNotFound
	}
	return p, nil
}

func (r *FakeRepository) Ensure(ctx context.Context, input EnsureInput) (Preference, error) {
	if r.SetError != nil {
		return Preference{}, r.SetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.EnsureWith = append(r.EnsureWith, input)
	if p, ok := r.Preferences[input.UserID]; ok {
		return p, nil
	}
	p := Preference{
		UserID:    input.UserID,
		ChatID:    input.ChatID,
		Timezone:  input.Defaults.Timezone,
		Language:  input.Defaults.Language,
		UpdatedAt: input.CreatedAt,
	}
	r.Preferences[input.UserID] = p
	return p, nil
}

func (r *FakeRepository) SetTimezone(ctx context.Context, input SetTimezoneInput) (Preference, error) {
	if r.SetError != nil {
		return Preference{}, r.SetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.Preferences[input.UserID]
	if !ok {
		p = Preference{UserID: input.UserID, Language: input.Defaults.Language}
	}
	p.ChatID = input.ChatID
	p.Timezone = input.Timezone
	p.UpdatedAt = input.UpdatedAt
	r.Preferences[input.UserID] = p
	return p, nil
}

func (r *FakeRepository) SetLanguage(ctx context.Context, input SetLanguageInput) (Preference, error) {
	if r.SetError != nil {
		return Preference{}, r.SetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	p, ok := r.Preferences[input.UserID]
	if !ok {
		p = Preference{UserID: input.UserID, Timezone: input.Defaults.Timezone}
	}
	p.ChatID = input.ChatID
	p.Language = input.Language
	p.UpdatedAt = input.UpdatedAt
	r.Preferences[input.UserID] = p
	return p, nil
}
