package game

import (
	"math/rand"
	"time"
)

// RNG supplies the randomness for monster and problem selection. Tests
// inject a seeded source to pin outcomes.
type RNG interface {
	Intn(n int) int
}

type Service struct {
	store Store
	rng   RNG
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// SetRNG replaces the selection randomness.
func (s *Service) SetRNG(rng RNG) {
	s.rng = rng
}

// SetClock replaces the time source used for completion timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
