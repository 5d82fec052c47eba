package usecase

import "sync"

// senderLocks hands out one mutex per sender, created on demand and
// dropped once no goroutine holds or waits for it.
type senderLocks struct {
	mu    sync.Mutex
	locks map[string]*senderLock
}

type senderLock struct {
	mu   sync.Mutex
	refs int
}

func newSenderLocks() *senderLocks {
	return &senderLocks{locks: make(map[string]*senderLock)}
}

func (s *senderLocks) lock(sender string) func() {
	s.mu.Lock()
	l, ok := s.locks[sender]
	if !ok {
		l = &senderLock{}
		s.locks[sender] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, sender)
			}
			s.mu.Unlock()
		})
	}
}

// held reports whether a goroutine holds or waits for the sender's lock
func (s *senderLocks) held(sender string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.locks[sender]
	return ok
}

func (s *senderLocks) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
