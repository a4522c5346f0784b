package model

import (
	"fmt"
	"math/rand"
)

// SplitTrainTest shuffles row indices with the given seed and splits off the
// requested test fraction.
func SplitTrainTest(n int, testFraction float64, seed int64) (train, test []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v outside (0, 1)", testFraction)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * testFraction)
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		return nil, nil, fmt.Errorf("test fraction %v leaves no training rows for n=%d", testFraction, n)
	}
	return indices[cut:], indices[:cut], nil
}

// kFolds partitions shuffled indices into k validation folds.
func kFolds(n, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot split %d rows into %d folds", n, k)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	for i, idx := range indices {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds, nil
}
