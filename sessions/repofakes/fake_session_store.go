package repofakes

import (
	"sync"

	"github.com/projectshub/go-hub-client/sessions"
)

var _ sessions.Store = (*FakeSessionStore)(nil)

// FakeSessionStore is an in-memory Store that records call counts for tests.
type FakeSessionStore struct {
	lock       sync.Mutex
	session    *sessions.Session
	saveCalls  int
	clearCalls int
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

func (s *FakeSessionStore) Load() *sessions.Session {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.session
}

func (s *FakeSessionStore) Save(session *sessions.Session) {
	if session == nil {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.session = session
	s.saveCalls++
}

func (s *FakeSessionStore) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.session = nil
	s.clearCalls++
}

// Current returns the last saved session, nil after a Clear.
func (s *FakeSessionStore) Current() *sessions.Session {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.session
}

// SaveCalls returns how many times Save persisted a session.
func (s *FakeSessionStore) SaveCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.saveCalls
}

// ClearCalls returns how many times Clear has been invoked.
func (s *FakeSessionStore) ClearCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.clearCalls
}
