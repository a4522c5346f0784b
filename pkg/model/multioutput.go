package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MultiOutput fits one independent AdaBoost ensemble per label column and
// predicts each label independently.
type MultiOutput struct {
	Rounds     int
	Estimators []*AdaBoost
}

func NewMultiOutput(rounds int) *MultiOutput {
	return &MultiOutput{Rounds: rounds}
}

func (m *MultiOutput) Fit(x *mat.Dense, labels [][]int) error {
	rows, _ := x.Dims()
	if len(labels) != rows {
		return fmt.Errorf("feature matrix has %d rows, label matrix has %d", rows, len(labels))
	}
	if rows == 0 || len(labels[0]) == 0 {
		return fmt.Errorf("cannot fit on an empty label matrix")
	}

	numLabels := len(labels[0])
	m.Estimators = make([]*AdaBoost, numLabels)
	column := make([]int, rows)

	for j := 0; j < numLabels; j++ {
		for i, row := range labels {
			if len(row) != numLabels {
				return fmt.Errorf("label row %d has %d columns, expected %d", i, len(row), numLabels)
			}
			column[i] = row[j]
		}

		est := NewAdaBoost(m.Rounds)
		if err := est.Fit(x, column); err != nil {
			return fmt.Errorf("label column %d: %w", j, err)
		}
		m.Estimators[j] = est
	}
	return nil
}

func (m *MultiOutput) Predict(x *mat.Dense) ([][]int, error) {
	if len(m.Estimators) == 0 {
		return nil, fmt.Errorf("classifier is not fitted")
	}

	rows, _ := x.Dims()
	out := make([][]int, rows)
	for i := range out {
		out[i] = make([]int, len(m.Estimators))
	}
	for j, est := range m.Estimators {
		preds := est.Predict(x)
		for i, p := range preds {
			out[i][j] = p
		}
	}
	return out, nil
}
