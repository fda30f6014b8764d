package wofa

import (
	u "github.com/araddon/gou"
)

// Grader Scores submissions against a reference automaton by the weight of the symmetric difference
// of their languages: 0 for a correct submission, up to 1 for the worst one.
type Grader struct {
	cfg Config
}

// Grade The score of one submission together with the parameters it was computed with.
type Grade struct {
	Eta    int
	Lambda float64
	WeightDiffResult
}

func NewGrader(cfg Config) (*Grader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grader{cfg: cfg}, nil
}

// Parameters Returns η and λ for grading against reference. Unless the config fixes η, it is the
// longest run of the minimized reference plus the configured offset.
func (g *Grader) Parameters(reference *Automaton) (int, float64, error) {
	eta := g.cfg.Eta
	if eta == 0 {
		m, err := Minimize(reference, g.cfg.DeterminizeWorkLimit)
		if err != nil {
			return 0, 0, err
		}
		eta = m.GetLengthLongestRun() + g.cfg.EtaOffset
	}

	lambda, err := DiscountFactor(g.cfg.TailMass, eta)
	if err != nil {
		return 0, 0, err
	}
	return eta, lambda, nil
}

// Grade Scores candidate against reference.
func (g *Grader) Grade(reference, candidate *Automaton) (*Grade, error) {
	if err := sameAlphabet(reference, candidate); err != nil {
		return nil, err
	}

	eta, lambda, err := g.Parameters(reference)
	if err != nil {
		return nil, err
	}

	diff, err := WeightDiff(reference, candidate, eta, lambda, WithDeterminizeWorkLimit(g.cfg.DeterminizeWorkLimit))
	if err != nil {
		return nil, err
	}

	u.Debugf("graded candidate with %d states: eta=%d lambda=%.6f score=%.6f",
		candidate.GetNumStates(), eta, lambda, diff.Symmetric)
	return &Grade{
		Eta:              eta,
		Lambda:           lambda,
		WeightDiffResult: *diff,
	}, nil
}
