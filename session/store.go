// Package session keeps per-user pagination state in memory for the
// lifetime of the process.
package session

import (
	"sync"

	"itproger-bot/models"
)

// Store maps Telegram user IDs to their pagination state
type Store struct {
	mu     sync.Mutex
	states map[int64]models.PaginationState
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{states: make(map[int64]models.PaginationState)}
}

// Reset starts a fresh session on page 1; the total page count is recomputed on next use
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = models.PaginationState{CurrentPage: 1}
}

// Get returns the user's state, page 1 for unknown users
func (s *Store) Get(userID int64) models.PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if !ok || state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	return state
}

// SetPage records the page the user is looking at
func (s *Store) SetPage(userID int64, page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.states[userID]
	state.CurrentPage = page
	s.states[userID] = state
}

// TotalPages returns the cached page count of the user's session, calling
// compute once to fill it. compute runs without the lock held.
func (s *Store) TotalPages(userID int64, compute func() int) int {
	s.mu.Lock()
	state, ok := s.states[userID]
	s.mu.Unlock()
	if ok && state.HasTotal() {
		return state.TotalPages
	}

	total := compute()
	if total < 1 {
		total = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state = s.states[userID]
	if state.HasTotal() {
		return state.TotalPages
	}
	if state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	state.TotalPages = total
	s.states[userID] = state
	return total
}
