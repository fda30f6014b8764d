package wofa

import (
	"fmt"
	"math"

	u "github.com/araddon/gou"
)

// WeightDiffResult The weights of the two halves of the symmetric difference of A and B.
type WeightDiffResult struct {
	// OnlyA is the weight of the words accepted by A and rejected by B.
	OnlyA float64
	// OnlyB is the weight of the words accepted by B and rejected by A.
	OnlyB float64
	// Symmetric is the weight of the symmetric difference, OnlyA + OnlyB.
	Symmetric float64
}

type weightOptions struct {
	determinizeWorkLimit int
}

type WeightOption func(*weightOptions)

// WithDeterminizeWorkLimit Sets the work limit of every determinization done by WeightDiff.
func WithDeterminizeWorkLimit(workLimit int) WeightOption {
	return func(o *weightOptions) {
		o.determinizeWorkLimit = workLimit
	}
}

func newWeightOptions(opts ...WeightOption) *weightOptions {
	o := &weightOptions{
		determinizeWorkLimit: DEFAULT_DETERMINIZE_WORK_LIMIT,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func validateWeightParameters(eta int, lambda float64) error {
	if eta < 0 {
		return fmt.Errorf("%w: eta must not be negative, got %d", ErrUndefinedWeightParameter, eta)
	}
	if math.IsNaN(lambda) || lambda <= 0 || lambda >= 1 {
		return fmt.Errorf("%w: lambda must lie strictly between 0 and 1, got %v", ErrUndefinedWeightParameter, lambda)
	}
	return nil
}

// DiscountFactor Returns λ = (1-x)^(1/η): the decay rate leaving the mass x to the words longer
// than η.
func DiscountFactor(tailMass float64, eta int) (float64, error) {
	if eta < 1 {
		return 0, fmt.Errorf("%w: eta must be positive, got %d", ErrUndefinedWeightParameter, eta)
	}
	if math.IsNaN(tailMass) || tailMass <= 0 || tailMass >= 1 {
		return 0, fmt.Errorf("%w: tail mass must lie strictly between 0 and 1, got %v", ErrUndefinedWeightParameter, tailMass)
	}
	return math.Pow(1-tailMass, 1/float64(eta)), nil
}

// Weight Returns the weight of the language of the deterministic automaton a. Words of length up to
// eta share the mass 1-λ^(eta+1) evenly, one share per possible word; a word of length n > eta
// weighs (1-λ)(λ/k)^n, k being the alphabet size. The language of all words weighs 1, the empty
// language 0.
func Weight(a *Automaton, eta int, lambda float64) (float64, error) {
	if err := validateWeightParameters(eta, lambda); err != nil {
		return 0, err
	}
	if !a.IsDeterministic() {
		return 0, fmt.Errorf("%w: cannot weigh", ErrNotDeterministic)
	}
	if IsEmpty(a) {
		return 0, nil
	}

	m := newTransitionMatrix(compile(a))
	k := m.numLabels

	// The whole series with geometric weights, then the words up to eta are weighed evenly instead.
	w, err := m.discountedWeight(lambda)
	if err != nil {
		return 0, err
	}

	uniform := 1 - math.Pow(lambda, float64(eta+1))
	for n, share := range m.acceptedShares(eta) {
		w += uniform*share*lengthFraction(k, n, eta) - (1-lambda)*share*math.Pow(lambda, float64(n))
	}

	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%w: weight is not finite for eta=%d lambda=%v", ErrUndefinedWeightParameter, eta, lambda)
	}
	u.Debugf("weight eta=%d lambda=%.6f states=%d: %.6f", eta, lambda, a.GetNumStates(), w)
	return w, nil
}

// lengthFraction Returns kⁿ/N(eta), the fraction of the words of length 0..eta that have length n,
// without forming kⁿ or N(eta) themselves.
func lengthFraction(k float64, n, eta int) float64 {
	if k == 1 {
		return 1 / float64(eta+1)
	}
	// kⁿ(k-1)/(k^(eta+1)-1) = (k-1)k^(n-eta-1)/(1-k^-(eta+1))
	return (k - 1) * math.Pow(k, float64(n-eta-1)) / (1 - math.Pow(k, -float64(eta+1)))
}

// WeightDiff Returns the weight of the symmetric difference of the languages of a and b, split into
// the words only a accepts and the words only b accepts. Both differences are minimized before they
// are weighed. The symmetric weight is 0 exactly when both languages are equal.
func WeightDiff(a, b *Automaton, eta int, lambda float64, opts ...WeightOption) (*WeightDiffResult, error) {
	if err := validateWeightParameters(eta, lambda); err != nil {
		return nil, err
	}
	if err := sameAlphabet(a, b); err != nil {
		return nil, err
	}
	o := newWeightOptions(opts...)

	onlyA, err := differenceWeight(a, b, eta, lambda, o.determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	onlyB, err := differenceWeight(b, a, eta, lambda, o.determinizeWorkLimit)
	if err != nil {
		return nil, err
	}

	result := &WeightDiffResult{
		OnlyA:     onlyA,
		OnlyB:     onlyB,
		Symmetric: onlyA + onlyB,
	}
	u.Debugf("weight diff eta=%d lambda=%.6f: %+v", eta, lambda, *result)
	return result, nil
}

func differenceWeight(a, b *Automaton, eta int, lambda float64, determinizeWorkLimit int) (float64, error) {
	d, err := Difference(a, b, determinizeWorkLimit)
	if err != nil {
		return 0, err
	}
	if IsEmpty(d) {
		return 0, nil
	}
	m, err := Minimize(d, determinizeWorkLimit)
	if err != nil {
		return 0, err
	}
	return Weight(m, eta, lambda)
}

// WeightGrid Returns the weight of a for every combination of the given lambdas (rows) and etas
// (columns). a is determinized first if needed.
func WeightGrid(a *Automaton, etas []int, lambdas []float64, opts ...WeightOption) ([][]float64, error) {
	for _, lambda := range lambdas {
		for _, eta := range etas {
			if err := validateWeightParameters(eta, lambda); err != nil {
				return nil, err
			}
		}
	}

	o := newWeightOptions(opts...)
	d, err := Determinize(a, o.determinizeWorkLimit)
	if err != nil {
		return nil, err
	}

	grid := make([][]float64, len(lambdas))
	for i, lambda := range lambdas {
		grid[i] = make([]float64, len(etas))
		for j, eta := range etas {
			if grid[i][j], err = Weight(d, eta, lambda); err != nil {
				return nil, err
			}
		}
	}
	return grid, nil
}
