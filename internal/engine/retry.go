package engine

// RetryBudget counts credential attempts for one network operation.
// It is owned by the goroutine running the operation.
type RetryBudget struct {
	attempts int
	ceiling  int
}

// CredentialCeiling is the attempt count at which an operation gives up.
const CredentialCeiling = 4

// NewRetryBudget returns a budget that is exhausted after ceiling attempts.
func NewRetryBudget(ceiling int) *RetryBudget {
	return &RetryBudget{ceiling: ceiling}
}

// Spend records one attempt.
func (b *RetryBudget) Spend() {
	b.attempts++
}

// Exhausted reports whether the ceiling was reached.
func (b *RetryBudget) Exhausted() bool {
	return b.attempts >= b.ceiling
}

// Attempts returns the number of attempts recorded.
func (b *RetryBudget) Attempts() int {
	return b.attempts
}
