package services

import (
	"fmt"
	"sync"
	"time"

	"saveup/internal/models"
)

// reservationStore holds in-flight PendingPayments keyed by tempId. All state
// checks and the consume transition happen under one mutex, which is what
// closes the double-spend race: Active -> Consumed is a one-way check-and-set.
type reservationStore struct {
	mu           sync.Mutex
	reservations map[string]*models.PendingPayment
}

func newReservationStore() *reservationStore {
	return &reservationStore{
		reservations: make(map[string]*models.PendingPayment),
	}
}

func (s *reservationStore) put(r *models.PendingPayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.TempID] = r
}

// get returns a copy of the reservation. now >= PixExpiresAt counts as
// expired; expired Active entries are evicted on the way out.
func (s *reservationStore) get(tempID string, now time.Time) (*models.PendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[tempID]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", tempID, models.ErrReservationNotFound)
	}
	if r.State == models.ReservationActive && !now.Before(r.PixExpiresAt) {
		delete(s.reservations, tempID)
		return nil, fmt.Errorf("reservation %s: %w", tempID, models.ErrReservationExpired)
	}
	copied := *r
	copied.Cart = append([]models.CartLine(nil), r.Cart...)
	return &copied, nil
}

// consume performs the atomic Active -> Consumed transition. The expiry check
// and the state flip share the critical section, so a consume racing the
// expiry boundary resolves deterministically and exactly one of N concurrent
// consumers wins.
func (s *reservationStore) consume(tempID string, now time.Time) (*models.PendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[tempID]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", tempID, models.ErrReservationNotFound)
	}
	if r.State == models.ReservationConsumed {
		return nil, fmt.Errorf("reservation %s: %w", tempID, models.ErrReservationConsumed)
	}
	if !now.Before(r.PixExpiresAt) {
		delete(s.reservations, tempID)
		return nil, fmt.Errorf("reservation %s: %w", tempID, models.ErrReservationExpired)
	}

	r.State = models.ReservationConsumed
	copied := *r
	copied.Cart = append([]models.CartLine(nil), r.Cart...)
	return &copied, nil
}

// sweep removes entries whose PIX window closed. Consumed entries are kept
// until then so a duplicate confirmation still sees AlreadyConsumed instead
// of NotFound.
func (s *reservationStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.reservations {
		if !now.Before(r.PixExpiresAt) {
			delete(s.reservations, id)
			removed++
		}
	}
	return removed
}
