package audit

import (
	"context"
	"fmt"
	"sync"
)

type FakeAuditor struct {
	Events []Event
	lock   sync.Mutex
}

func NewFakeAuditor() *FakeAuditor {
	return &FakeAuditor{}
}

func (a *FakeAuditor) Record(ctx context.Context, event Event) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.Events = append(a.Events, event)
}

func (a *FakeAuditor) Actions() []string {
	a.lock.Lock()
	defer a.lock.Unlock()
	actions := make([]string, 0, len(a.Events))
	for _, e := range a.Events {
		actions = append(actions, e.Action)
	}
	return actions
}

type FakeEventIDGenerator struct {
	next int
}

func (g *FakeEventIDGenerator) GenerateEventID() EventID {
	g.next++
	return EventID(fmt.Sprintf("event-%d", g.next))
}
