package wofa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// transitionMatrix Holds, for a deterministic automaton, how many labels lead from each state to
// each other state.
type transitionMatrix struct {
	run       *RunAutomaton
	counts    *mat.Dense
	numLabels float64
}

func newTransitionMatrix(r *RunAutomaton) *transitionMatrix {
	n := r.GetSize()
	numLabels := r.alphabet.Size()
	counts := mat.NewDense(n, n, nil)
	for p := 0; p < n; p++ {
		for label := 0; label < numLabels; label++ {
			if q := r.Step(p, label); q != -1 {
				counts.Set(p, q, counts.At(p, q)+1)
			}
		}
	}

	return &transitionMatrix{
		run:       r,
		counts:    counts,
		numLabels: float64(numLabels),
	}
}

// acceptedShares Returns, for every length n in 0..upTo, the share of the words of length n that
// are accepted, c(n)/kⁿ. Shares stay within [0, 1] where the counts themselves would overflow.
func (m *transitionMatrix) acceptedShares(upTo int) []float64 {
	n := m.run.GetSize()

	// reach holds the share of the words of the current length leading to each state.
	reach := mat.NewVecDense(n, nil)
	reach.SetVec(m.run.GetInitialState(), 1)
	next := mat.NewVecDense(n, nil)

	shares := make([]float64, upTo+1)
	for length := 0; length <= upTo; length++ {
		if length > 0 {
			next.MulVec(m.counts.T(), reach)
			next.ScaleVec(1/m.numLabels, next)
			reach, next = next, reach
		}
		shares[length] = m.accepted(reach)
	}
	return shares
}

func (m *transitionMatrix) accepted(v *mat.VecDense) float64 {
	total := 0.0
	for s, ok := m.run.accept.NextSet(0); ok; s, ok = m.run.accept.NextSet(s + 1) {
		total += v.AtVec(int(s))
	}
	return total
}

// discountedWeight Returns (1-λ) Σ_n c(n)/kⁿ λⁿ over all word lengths n, c(n) being the number of
// accepted words of length n. Per state q the sum x_q satisfies
//
//	x_q = [q accepts](1-λ) + (λ/k) Σ_label x_δ(q,label)
//
// which is solved as the linear system ((λ/k)M - I) x = -(1-λ) f. The spectral radius of (λ/k)M
// is at most λ < 1, so the system has a unique solution.
func (m *transitionMatrix) discountedWeight(lambda float64) (float64, error) {
	n := m.run.GetSize()

	system := mat.NewDense(n, n, nil)
	system.Scale(lambda/m.numLabels, m.counts)
	for i := 0; i < n; i++ {
		system.Set(i, i, system.At(i, i)-1)
	}

	rhs := mat.NewVecDense(n, nil)
	for s, ok := m.run.accept.NextSet(0); ok; s, ok = m.run.accept.NextSet(s + 1) {
		rhs.SetVec(int(s), -(1 - lambda))
	}

	var x mat.VecDense
	if err := x.SolveVec(system, rhs); err != nil {
		return 0, fmt.Errorf("solving weight system of %d states: %w", n, err)
	}
	return x.AtVec(m.run.GetInitialState()), nil
}
