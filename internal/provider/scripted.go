package provider

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrExhausted is returned when a Scripted provider runs out of responses.
var ErrExhausted = errors.New("scripted provider: no responses left")

// Scripted replays canned responses in order. It backs tests and the CLI,
// where the response text is already at hand.
type Scripted struct {
	mu        sync.Mutex
	responses []string
	next      int

	// Err, when set, is returned instead of a response.
	Err error
	// Delay simulates model latency before each response.
	Delay time.Duration
}

// NewScripted creates a provider that returns the given responses in order.
func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

// Generate returns the next canned response. It honors context
// cancellation during the configured delay.
func (s *Scripted) Generate(ctx context.Context, req Request) (string, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.Delay):
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	if s.next >= len(s.responses) {
		return "", ErrExhausted
	}
	resp := s.responses[s.next]
	s.next++
	return resp, nil
}
