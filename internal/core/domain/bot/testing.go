package bot

import (
	"context"
	"sync"
)

type FakeMessenger struct {
	Sent      []Message
	Answered  []string
	SendError error
	lock      sync.Mutex
}

func NewFakeMessenger() *FakeMessenger {
	return &FakeMessenger{}
}

func (m *FakeMessenger) SendMessage(ctx context.Context, msg Message) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *FakeMessenger) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Answered = append(m.Answered, callbackID)
	return nil
}

func (m *FakeMessenger) Last() (Message, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.Sent) == 0 {
		return Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

func (m *FakeMessenger) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Sent = nil
	m.Answered = nil
}
