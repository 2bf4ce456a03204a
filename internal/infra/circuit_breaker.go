package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards calls to the extractor sidecar. One stuck extraction holds a worker
// for up to two minutes, so once the sidecar is clearly down we fast-fail the
// queue into the DLQ instead of letting every catalog job time out in turn.
//
// Closed → Open after FailureThreshold consecutive failures.
// Open → Half-Open once OpenTimeout has elapsed.
// Half-Open → Closed after SuccessThreshold consecutive probe successes,
// back to Open on the first probe failure.

// CBState represents the current circuit breaker state.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

// String is what the /health endpoint and the logs show.
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when Execute is called while the CB is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds the trip and recovery thresholds.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

// DefaultCBConfig matches the extraction workload: the sidecar restarts in
// well under a minute, and five straight failures already means every worker
// has seen it down.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

// CircuitBreaker is safe for use from every worker goroutine at once.
type CircuitBreaker struct {
	mu sync.Mutex

	state        CBState
	fallos       int // consecutive failures in closed state
	sondasOK     int // consecutive successes in half-open state
	abiertoDesde time.Time

	cfg CircuitBreakerConfig
}

// NewCircuitBreaker creates a CB in closed state. Zero or negative config
// values fall back to the defaults.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{state: CBClosed, cfg: cfg}
}

// State reports the current state, applying the open → half-open transition
// when the timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.avanzar()
	return cb.state
}

// Execute runs fn unless the breaker is open, in which case it fails fast
// with ErrCircuitOpen and fn never runs.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	cb.avanzar()
	if cb.state == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFallo()
		return err
	}
	cb.registrarExito()
	return nil
}

// avanzar applies the timed transition. Caller holds the lock.
func (cb *CircuitBreaker) avanzar() {
	if cb.state == CBOpen && time.Since(cb.abiertoDesde) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.sondasOK = 0
	}
}

func (cb *CircuitBreaker) registrarFallo() {
	switch cb.state {
	case CBClosed:
		cb.fallos++
		if cb.fallos >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.abiertoDesde = time.Now()
		}
	case CBHalfOpen:
		cb.state = CBOpen
		cb.abiertoDesde = time.Now()
		cb.fallos = 0
	}
}

func (cb *CircuitBreaker) registrarExito() {
	switch cb.state {
	case CBClosed:
		cb.fallos = 0
	case CBHalfOpen:
		cb.sondasOK++
		if cb.sondasOK >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.fallos = 0
			cb.sondasOK = 0
		}
	}
}
