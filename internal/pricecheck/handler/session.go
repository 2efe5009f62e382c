package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"pricecheck-service/internal/pricecheck/model"
)

// SessionHeader carries the session id in both directions.
const SessionHeader = "X-Session-ID"

// FilterState is the last filter run of a session.
type FilterState struct {
	Request model.FilterRequest
	Pairs   []model.SimilarityPair
}

// Session holds the sticky results shown until the next action overwrites them.
type Session struct {
	mu     sync.RWMutex
	filter *FilterState
	check  *model.CheckResult
}

func (s *Session) Filter() *FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Session) SetFilter(st *FilterState) {
	s.mu.Lock()
	s.filter = st
	s.mu.Unlock()
}

func (s *Session) Check() *model.CheckResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check
}

func (s *Session) SetCheck(res *model.CheckResult) {
	s.mu.Lock()
	s.check = res
	s.mu.Unlock()
}

// Sessions is an idle-expiring, size-bounded session store.
type Sessions struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

func NewSessions(size int, ttl time.Duration) *Sessions {
	return &Sessions{cache: expirable.NewLRU[string, *Session](size, nil, ttl)}
}

// Acquire returns the session named by the request header, creating a fresh one when the
// header is missing or the session expired. The id is echoed in the response header.
func (s *Sessions) Acquire(w http.ResponseWriter, r *http.Request) (string, *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.Header.Get(SessionHeader)
	if id != "" {
		if sess, ok := s.cache.Get(id); ok {
			// re-add to refresh the idle TTL
			s.cache.Add(id, sess)
			w.Header().Set(SessionHeader, id)
			return id, sess
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	sess := &Session{}
	s.cache.Add(id, sess)
	w.Header().Set(SessionHeader, id)
	return id, sess
}

func (s *Sessions) Len() int { return s.cache.Len() }
