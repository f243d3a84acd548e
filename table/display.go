package table

import "sync"

// Limits bounds how much of a table is rendered. A zero field means no limit.
type Limits struct {
	MaxRows    int
	MaxColumns int
}

// DefaultLimits are the limits in effect unless overridden.
var DefaultLimits = Limits{MaxRows: 60, MaxColumns: 20}

// Unlimited renders every row and column.
var Unlimited = Limits{}

var (
	mu      sync.Mutex
	current = DefaultLimits
)

// CurrentLimits returns the process-wide display limits.
func CurrentLimits() Limits {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Override replaces the process-wide display limits and returns a function
// that restores the limits in effect before the call. Callers defer it:
//
//	defer table.Override(table.Unlimited)()
//
// Overrides nest; each restore reinstates what its own Override replaced.
func Override(l Limits) (restore func()) {
	mu.Lock()
	previous := current
	current = l
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			current = previous
			mu.Unlock()
		})
	}
}
