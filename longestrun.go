package wofa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// GetLengthLongestRun Returns the number of transitions of the longest simple path (no state
// visited twice) that starts in an initial state and only passes live states, those reachable
// from an initial state that can still reach an accept state. Beyond this length the growth of
// the language is governed by cycles alone. Returns 0 for an empty language.
func (a *Automaton) GetLengthLongestRun() int {
	live := getLiveStates(a)
	numLive := int(live.Count())
	if numLive == 0 {
		return 0
	}

	// Distinct live successors of every live state:
	successors := make([][]int, a.GetNumStates())
	t := NewTransition()
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		count := a.InitTransition(int(s), t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if live.Test(uint(t.Dest)) {
				successors[s] = append(successors[s], t.Dest)
			}
		}
		slices.Sort(successors[s])
		successors[s] = slices.Compact(successors[s])
	}

	path := bitset.New(uint(a.GetNumStates()))
	longest := 0
	for _, s := range a.GetInitialStates() {
		if !live.Test(uint(s)) {
			continue
		}
		if l := longestRun(successors, s, path, numLive-1); l > longest {
			longest = l
		}
	}
	return longest
}

// Depth first search over simple paths. bound is the longest run still possible from state.
func longestRun(successors [][]int, state int, path *bitset.BitSet, bound int) int {
	path.Set(uint(state))
	longest := 0
	for _, next := range successors[state] {
		if path.Test(uint(next)) {
			continue
		}
		if l := 1 + longestRun(successors, next, path, bound-1); l > longest {
			longest = l
		}
		if longest == bound {
			break
		}
	}
	path.Clear(uint(state))
	return longest
}
