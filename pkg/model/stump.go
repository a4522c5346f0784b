// Package model assembles and trains the multi-output boosted-stump
// classifier behind the feature union, runs the hyperparameter grid search
// and serializes the fitted result.
package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Stump is a depth-1 decision rule on a single feature column. With
// Polarity +1 it votes +1 for values strictly above Threshold; with -1 the
// vote is inverted.
type Stump struct {
	Feature   int
	Threshold float64
	Polarity  int
}

// Vote returns the stump's ±1 prediction for row i of x.
func (s *Stump) Vote(x *mat.Dense, i int) int {
	if x.At(i, s.Feature) > s.Threshold {
		return s.Polarity
	}
	return -s.Polarity
}

// fitStump finds the weighted-error-minimizing stump over all features and
// all distinct-value split points. Labels are ±1 and weights must sum to 1.
func fitStump(x *mat.Dense, y []int, w []float64) (Stump, float64, error) {
	rows, cols := x.Dims()
	if rows != len(y) || rows != len(w) {
		return Stump{}, 0, fmt.Errorf("stump training dimensions disagree: %d rows, %d labels, %d weights",
			rows, len(y), len(w))
	}

	best := Stump{Polarity: 1}
	bestErr := 2.0

	order := make([]int, rows)
	posPrefix := make([]float64, rows+1)
	negPrefix := make([]float64, rows+1)

	for j := 0; j < cols; j++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return x.At(order[a], j) < x.At(order[b], j)
		})

		var posTotal, negTotal float64
		for k, idx := range order {
			posPrefix[k+1] = posPrefix[k]
			negPrefix[k+1] = negPrefix[k]
			if y[idx] > 0 {
				posPrefix[k+1] += w[idx]
			} else {
				negPrefix[k+1] += w[idx]
			}
		}
		posTotal = posPrefix[rows]
		negTotal = negPrefix[rows]

		// k samples on the left of the split; k == 0 puts everything right.
		for k := 0; k <= rows; k++ {
			if k > 0 && k < rows && x.At(order[k-1], j) == x.At(order[k], j) {
				continue
			}

			var threshold float64
			switch {
			case k == 0:
				threshold = x.At(order[0], j) - 1
			case k == rows:
				threshold = x.At(order[rows-1], j) + 1
			default:
				threshold = (x.At(order[k-1], j) + x.At(order[k], j)) / 2
			}

			// Polarity +1 misclassifies positives on the left and
			// negatives on the right.
			errPlus := posPrefix[k] + (negTotal - negPrefix[k])
			errMinus := (posTotal + negTotal) - errPlus

			if errPlus < bestErr {
				bestErr = errPlus
				best = Stump{Feature: j, Threshold: threshold, Polarity: 1}
			}
			if errMinus < bestErr {
				bestErr = errMinus
				best = Stump{Feature: j, Threshold: threshold, Polarity: -1}
			}
		}
	}

	return best, bestErr, nil
}
