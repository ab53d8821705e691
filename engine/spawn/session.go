package spawn

import "sync"

// sessionImpl is the implementation of the Session interface.
type sessionImpl struct {
	mu        *sync.Mutex
	fulfilled bool
}

// Session marks one spawn lifetime. It starts unfulfilled; the spawner marks
// it fulfilled after its single plan-and-commit pass, and it is never reset.
// A fulfilled session guarantees no further grains will be created for it,
// even if the update path keeps running.
type Session interface {
	// Fulfilled returns whether the spawn pass for this session has run.
	//
	// Returns:
	//   - bool: true once the session has been fulfilled
	Fulfilled() bool

	// Fulfill marks the session fulfilled. Idempotent.
	Fulfill()
}

var _ Session = &sessionImpl{}

// NewSession creates a new unfulfilled Session.
//
// Returns:
//   - Session: a new Session instance
func NewSession() Session {
	return &sessionImpl{
		mu: &sync.Mutex{},
	}
}

func (s *sessionImpl) Fulfilled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fulfilled
}

func (s *sessionImpl) Fulfill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fulfilled = true
}

// sessionSetImpl is the implementation of the SessionSet interface.
type sessionSetImpl struct {
	mu       *sync.RWMutex
	sessions []Session
}

// SessionSet is the live session registry. During normal operation it holds
// exactly one session, but counts of zero or two-plus occur legitimately
// while one session is being torn down and the next set up. Consumers must
// treat those counts as defer-and-poll states, never as errors.
type SessionSet interface {
	// Add registers a session with the set.
	//
	// Parameters:
	//   - s: the session to register
	Add(s Session)

	// Remove unregisters a session from the set. Unknown sessions are ignored.
	//
	// Parameters:
	//   - s: the session to unregister
	Remove(s Session)

	// Count returns the number of registered sessions.
	//
	// Returns:
	//   - int: the session count
	Count() int

	// Active returns the singleton session when exactly one is registered.
	//
	// Returns:
	//   - Session: the singleton session, or nil
	//   - bool: true only when the set holds exactly one session
	Active() (Session, bool)
}

var _ SessionSet = &sessionSetImpl{}

// NewSessionSet creates an empty SessionSet.
//
// Returns:
//   - SessionSet: a new SessionSet instance
func NewSessionSet() SessionSet {
	return &sessionSetImpl{
		mu: &sync.RWMutex{},
	}
}

func (ss *sessionSetImpl) Add(s Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions = append(ss.sessions, s)
}

func (ss *sessionSetImpl) Remove(s Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for i, existing := range ss.sessions {
		if existing == s {
			ss.sessions = append(ss.sessions[:i], ss.sessions[i+1:]...)
			return
		}
	}
}

func (ss *sessionSetImpl) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

func (ss *sessionSetImpl) Active() (Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	if len(ss.sessions) != 1 {
		return nil, false
	}
	return ss.sessions[0], true
}
