package solver

import (
	"context"
	"sync"
	"time"

	"fleet-routing-service/internal/ports"
)

// MockSolver is a scripted SolverClient for tests: it returns a fixed
// response or error, optionally after a delay, and counts calls.
type MockSolver struct {
	mu       sync.Mutex
	Response *ports.SolverResponse
	Err      error
	Delay    time.Duration
	calls    int
}

func (m *MockSolver) Solve(ctx context.Context, req ports.SolverRequest) (*ports.SolverResponse, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// Calls returns how many times Solve was invoked.
func (m *MockSolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
