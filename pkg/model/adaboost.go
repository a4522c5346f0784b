package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultRounds is the ensemble size when none is configured.
	DefaultRounds = 50

	minStumpError = 1e-10
)

// AdaBoost is a binary boosted ensemble of decision stumps. Labels are 0/1
// at the API boundary and ±1 internally.
type AdaBoost struct {
	Rounds int
	Stumps []Stump
	Alphas []float64
}

func NewAdaBoost(rounds int) *AdaBoost {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &AdaBoost{Rounds: rounds}
}

// Fit boosts stumps against the 0/1 label vector. Boosting stops early when
// a round fits the weighted sample perfectly or stops being better than
// chance.
func (b *AdaBoost) Fit(x *mat.Dense, labels []int) error {
	rows, _ := x.Dims()
	if rows == 0 {
		return fmt.Errorf("cannot fit on zero rows")
	}
	if rows != len(labels) {
		return fmt.Errorf("feature matrix has %d rows, got %d labels", rows, len(labels))
	}

	y := make([]int, rows)
	for i, label := range labels {
		if label > 0 {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}

	w := make([]float64, rows)
	for i := range w {
		w[i] = 1 / float64(rows)
	}

	b.Stumps = b.Stumps[:0]
	b.Alphas = b.Alphas[:0]

	for round := 0; round < b.Rounds; round++ {
		stump, weightedErr, err := fitStump(x, y, w)
		if err != nil {
			return err
		}
		if weightedErr >= 0.5 {
			// A tie with chance can happen on degenerate folds; keep one
			// near-zero-weight stump so the ensemble is never empty.
			if len(b.Stumps) == 0 {
				weightedErr = 0.5 - 1e-6
			} else {
				break
			}
		}
		if weightedErr < minStumpError {
			weightedErr = minStumpError
		}

		alpha := 0.5 * math.Log((1-weightedErr)/weightedErr)
		b.Stumps = append(b.Stumps, stump)
		b.Alphas = append(b.Alphas, alpha)

		var total float64
		for i := range w {
			w[i] *= math.Exp(-alpha * float64(y[i]) * float64(stump.Vote(x, i)))
			total += w[i]
		}
		for i := range w {
			w[i] /= total
		}

		if weightedErr <= minStumpError {
			break
		}
	}

	if len(b.Stumps) == 0 {
		return fmt.Errorf("boosting found no stump better than chance")
	}
	return nil
}

// Score returns the signed ensemble margin for row i.
func (b *AdaBoost) Score(x *mat.Dense, i int) float64 {
	var score float64
	for t, stump := range b.Stumps {
		score += b.Alphas[t] * float64(stump.Vote(x, i))
	}
	return score
}

// Predict maps each row to a 0/1 label.
func (b *AdaBoost) Predict(x *mat.Dense) []int {
	rows, _ := x.Dims()
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		if b.Score(x, i) > 0 {
			out[i] = 1
		}
	}
	return out
}
