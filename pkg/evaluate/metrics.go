// Package evaluate computes per-label classification quality and renders
// the textual report. Nothing here persists anything.
package evaluate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ClassMetrics is the precision/recall/F1 breakdown for one class of one
// label.
type ClassMetrics struct {
	Class     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// LabelReport covers one label column: both classes plus the label's own
// accuracy.
type LabelReport struct {
	Label    string
	Classes  []ClassMetrics
	Accuracy float64
}

func classMetrics(yTrue, yPred []int, class int) ClassMetrics {
	var tp, fp, fn, support int
	for i := range yTrue {
		if yTrue[i] == class {
			support++
			if yPred[i] == class {
				tp++
			} else {
				fn++
			}
		} else if yPred[i] == class {
			fp++
		}
	}

	m := ClassMetrics{Class: class, Support: support}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Report computes the per-label breakdown for every label column.
func Report(yTrue, yPred [][]int, labelNames []string) ([]LabelReport, error) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("truth has %d rows, predictions %d", len(yTrue), len(yPred))
	}
	if len(yTrue[0]) != len(labelNames) {
		return nil, fmt.Errorf("%d label columns but %d names", len(yTrue[0]), len(labelNames))
	}

	reports := make([]LabelReport, len(labelNames))
	truthCol := make([]int, len(yTrue))
	predCol := make([]int, len(yTrue))

	for j, name := range labelNames {
		correct := 0
		for i := range yTrue {
			truthCol[i] = yTrue[i][j]
			predCol[i] = yPred[i][j]
			if truthCol[i] == predCol[i] {
				correct++
			}
		}
		reports[j] = LabelReport{
			Label: name,
			Classes: []ClassMetrics{
				classMetrics(truthCol, predCol, 0),
				classMetrics(truthCol, predCol, 1),
			},
			Accuracy: float64(correct) / float64(len(yTrue)),
		}
	}
	return reports, nil
}

// OverallAccuracy averages accuracy first within each label column, then
// across labels. Identical predictions and truth yield exactly 1.0.
func OverallAccuracy(yTrue, yPred [][]int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) || len(yTrue[0]) == 0 {
		return 0
	}

	perLabel := make([]float64, len(yTrue[0]))
	for j := range perLabel {
		correct := 0
		for i := range yTrue {
			if yTrue[i][j] == yPred[i][j] {
				correct++
			}
		}
		perLabel[j] = float64(correct) / float64(len(yTrue))
	}
	return stat.Mean(perLabel, nil)
}
