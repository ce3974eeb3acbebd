package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/logger"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards calls to a flaky dependency, in practice the
// ingestion endpoint the device simulators report to. After maxFailures
// consecutive errors it opens and rejects calls until the cool-off passes,
// then lets a few probes through before closing again.
type CircuitBreaker struct {
	name        string
	maxFailures int
	coolOff     time.Duration
	halfOpenMax int

	mu           sync.RWMutex
	state        State
	failures     int
	successes    int
	lastFailTime time.Time
}

type CircuitBreakerConfig struct {
	Name        string
	MaxFailures int
	CoolOff     time.Duration
	HalfOpenMax int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.CoolOff <= 0 {
		cfg.CoolOff = 30 * time.Second
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = 3
	}

	return &CircuitBreaker{
		name:        cfg.Name,
		maxFailures: cfg.MaxFailures,
		coolOff:     cfg.CoolOff,
		halfOpenMax: cfg.HalfOpenMax,
		state:       StateClosed,
	}
}

// Execute runs fn when the breaker allows it. A context already past its
// deadline short-circuits before fn runs and counts as a failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !cb.canExecute() {
		return ErrCircuitOpen
	}

	if err := ctx.Err(); err != nil {
		cb.recordFailure()
		return err
	}

	if err := fn(ctx); err != nil {
		cb.recordFailure()
		return err
	}

	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) canExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastFailTime) > cb.coolOff {
			cb.transitionTo(StateHalfOpen)
			return true
		}
		return false
	case StateHalfOpen:
		return true
	}

	return false
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.halfOpenMax {
			cb.transitionTo(StateClosed)
		}
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailTime = time.Now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.maxFailures {
			cb.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		cb.transitionTo(StateOpen)
	}
}

func (cb *CircuitBreaker) transitionTo(newState State) {
	oldState := cb.state
	cb.state = newState
	cb.failures = 0
	cb.successes = 0

	logger.WithFields(map[string]interface{}{
		"breaker": cb.name,
		"from":    oldState.String(),
		"to":      newState.String(),
	}).Warn("Circuit breaker state change")
}

func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
}

// Stats is a point-in-time snapshot for diagnostics output.
type Stats struct {
	State    string    `json:"state"`
	Failures int       `json:"failures"`
	LastFail time.Time `json:"last_fail,omitempty"`
}

func (cb *CircuitBreaker) Snapshot() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return Stats{
		State:    cb.state.String(),
		Failures: cb.failures,
		LastFail: cb.lastFailTime,
	}
}
