// Package gas defines the kernel's metering surface: a Gas unit, named
// charges, a tracker shared across a call stack, and the PriceList the
// kernel consults for every priced operation. The concrete price numbers
// are a network parameter supplied by the chain, out of scope for this
// module (spec §1); only the shape of the price list lives here.
package gas

import (
	"sync"
	"time"
)

// Gas is the unit of metered compute. It is a plain int64 so arithmetic
// overflow checks stay simple and explicit at call sites that need them.
type Gas int64

// Charge names one accounted unit of work, for tracing/observability.
// It does not affect consensus on its own — only the running total does.
type Charge struct {
	Name  string
	Total Gas
}

func NewCharge(name string, compute Gas) Charge {
	return Charge{Name: name, Total: compute}
}

// OutOfGasError is returned by Tracker.Charge when a charge would exceed
// the available budget. The kernel turns this into guest cancellation,
// not into a classified SyscallError — gas exhaustion is its own channel
// (spec §7).
type OutOfGasError struct {
	Charge    Charge
	Available Gas
}

func (e *OutOfGasError) Error() string {
	return "out of gas: " + e.Charge.Name
}

// Tracker is shared across an entire call stack: a child's consumption
// reduces the parent's available budget (spec §5).
type Tracker struct {
	mu        sync.Mutex
	limit     Gas
	used      Gas
}

func NewTracker(limit Gas) *Tracker {
	return &Tracker{limit: limit}
}

func (t *Tracker) GasUsed() Gas {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used
}

func (t *Tracker) GasAvailable() Gas {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limit - t.used
}

// Charge deducts c.Total from the remaining budget and starts a Timer for
// the caller to Stop when the priced operation completes. It fails
// with *OutOfGasError without mutating the tracker if the charge would
// exceed the limit.
func (t *Tracker) Charge(c Charge) (*Timer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.used+c.Total > t.limit {
		return nil, &OutOfGasError{Charge: c, Available: t.limit - t.used}
	}
	t.used += c.Total
	return &Timer{name: c.Name, start: time.Now()}, nil
}

// TryCharge charges c in full without checking the limit, so it never
// fails; the used total may exceed the limit, leaving GasAvailable
// negative. It exists for
// bookkeeping charges (e.g. OnActorExec) that must never themselves be
// the reason an otherwise-successful call fails.
func (t *Tracker) TryCharge(c Charge) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used += c.Total
}

// Timer is an opaque scoped object recording wall-time for observability.
// It never affects consensus.
type Timer struct {
	name  string
	start time.Time
	stop  time.Time
}

func (t *Timer) Stop() {
	t.stop = time.Now()
}

func (t *Timer) Elapsed() time.Duration {
	if t.stop.IsZero() {
		return time.Since(t.start)
	}
	return t.stop.Sub(t.start)
}
