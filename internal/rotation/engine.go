package rotation

import (
	"math/rand"
	"time"
)

// Engine selects idea indexes in shuffled-cursor order: every index appears
// exactly once per cycle, and a fresh shuffle starts each new cycle.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine backed by src, or a time-seeded source when src
// is nil. Tests pass a fixed seed for reproducible permutations.
func NewEngine(src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{rng: rand.New(src)}
}

// EnsureOrder validates st.Order against the current idea count n and
// regenerates it when missing, empty, or holding an index that no longer
// exists (the idea list shrank). Regeneration resets the cursor and discards
// cycle progress. Reports whether the state was modified so the caller can
// persist the new permutation even if the subsequent publish fails.
func (e *Engine) EnsureOrder(st *State, n int) bool {
	if orderValid(st.Order, n) {
		return false
	}
	st.Order = e.rng.Perm(n)
	st.Index = 0
	return true
}

// Next returns the idea index under the cursor. A fully consumed cycle
// reshuffles the existing order in place and resets the cursor first; the new
// cycle has no ordering relation to the previous one. The bool reports
// whether a reshuffle happened.
//
// Next does not advance the cursor. The caller advances via State.MarkPosted
// only after a confirmed publish, so a failed post retries the same item.
func (e *Engine) Next(st *State) (int, bool) {
	reshuffled := false
	if st.Index >= len(st.Order) {
		e.rng.Shuffle(len(st.Order), func(i, j int) {
			st.Order[i], st.Order[j] = st.Order[j], st.Order[i]
		})
		st.Index = 0
		reshuffled = true
	}
	return st.Order[st.Index], reshuffled
}

func orderValid(order []int, n int) bool {
	if len(order) == 0 {
		return false
	}
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}
