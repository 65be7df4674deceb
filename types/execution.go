package types

// ExecutionContext is created fresh per transaction and discarded on
// completion. It owns the compute-unit meter and the ordered log bus.
type ExecutionContext struct {
	computeUnitsRemaining uint64
	initialBudget         uint64
	LogMessages           []string
}

// NewExecutionContext constructs a context with the given compute budget.
func NewExecutionContext(budget uint64) *ExecutionContext {
	return &ExecutionContext{computeUnitsRemaining: budget, initialBudget: budget}
}

// ComputeUnitsRemaining returns the units left to spend.
func (ec *ExecutionContext) ComputeUnitsRemaining() uint64 { return ec.computeUnitsRemaining }

// ComputeUnitsConsumed returns units spent so far.
func (ec *ExecutionContext) ComputeUnitsConsumed() uint64 {
	return ec.initialBudget - ec.computeUnitsRemaining
}

// ConsumeComputeUnits deducts n units. It returns false, leaving the counter
// unchanged, if doing so would underflow.
func (ec *ExecutionContext) ConsumeComputeUnits(n uint64) bool {
	if n > ec.computeUnitsRemaining {
		return false
	}
	ec.computeUnitsRemaining -= n
	return true
}

// Log appends a message to the transaction's log bus.
func (ec *ExecutionContext) Log(msg string) {
	ec.LogMessages = append(ec.LogMessages, msg)
}

// Charge consumes n compute units, or fails the whole remaining budget and
// returns a ComputeBudgetExceeded error if n is unaffordable. Used for both
// the runtime's fixed per-instruction overhead and each handler's own cost,
// so that a budget failure always reports compute_units_consumed equal to
// the full initial budget, matching §8 scenario 6.
func (ec *ExecutionContext) Charge(n uint64) error {
	if ec.ConsumeComputeUnits(n) {
		return nil
	}
	ec.computeUnitsRemaining = 0
	return &ComputeBudgetExceeded{Charged: ec.initialBudget}
}

// TransactionResult is the observable outcome of executing a transaction.
type TransactionResult struct {
	Success              bool
	ComputeUnitsConsumed uint64
	Logs                 []string
	Err                  error
}
