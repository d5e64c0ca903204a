// Package match implements the match-acquisition loop: capture,
// normalize, encode, submit to the remote matcher, and poll until a
// matching verdict or the retry budget runs out.
package match

import "time"

const (
	// PollInterval is the fixed sleep between polling attempts.
	PollInterval = 500 * time.Millisecond

	// UseDefaultBudget selects the matcher's configured retry budget.
	UseDefaultBudget = time.Duration(-1)
)
