// Package selector holds the pure rotation-selection logic. It reads pools
// and posted sets but never mutates the ledger; committing a selection is
// the scheduler's job.
package selector

import (
	"errors"
	"math/rand"

	"github.com/castelle/tipcast/content"
)

// ErrNoContent signals an exhausted MCQ pool. Unlike tips, questions are
// never auto-reset: every posting carries a public answer-reveal obligation,
// and replaying one would create duplicate answer threads.
var ErrNoContent = errors.New("no unposted content available")

// NextTip picks a random tip that has not been posted in the current
// rotation cycle. When every tip in the pool has been posted the cycle is
// considered complete and the whole pool becomes available again; the
// returned reset flag tells the caller to clear the persisted set.
//
// The pool must be non-empty. A single-item pool reposts that item once per
// cycle, which is the intended behavior.
func NextTip(pool []content.Tip, posted map[string]bool) (content.Tip, bool) {
	reset := false
	if len(posted) >= len(pool) {
		posted = nil
		reset = true
	}

	available := make([]content.Tip, 0, len(pool))
	for _, tip := range pool {
		if !posted[tip.Text] {
			available = append(available, tip)
		}
	}

	// Duplicate texts in the pool can exhaust it before the set counts say
	// so; treat that as a completed cycle too.
	if len(available) == 0 {
		available = pool
		reset = true
	}

	return available[rand.Intn(len(available))], reset
}

// NextMCQ picks a random question without a ledger record. Returns
// ErrNoContent when every question has been consumed.
func NextMCQ(all []content.MCQ, postedIDs map[int]bool) (content.MCQ, error) {
	unposted := make([]content.MCQ, 0, len(all))
	for _, mcq := range all {
		if !postedIDs[mcq.ID] {
			unposted = append(unposted, mcq)
		}
	}

	if len(unposted) == 0 {
		return content.MCQ{}, ErrNoContent
	}

	return unposted[rand.Intn(len(unposted))], nil
}
