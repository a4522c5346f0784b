package model

import "fmt"

// Candidate is one point of the hyperparameter grid: the vectorizer's
// n-gram span, document-frequency cutoff and vocabulary cap, and the tf-idf
// toggle. MaxFeatures == 0 leaves the vocabulary uncapped.
type Candidate struct {
	NgramMin    int
	NgramMax    int
	MaxDF       float64
	MaxFeatures int
	UseIDF      bool
}

// Key is a stable identifier used for logging and checkpoint lookups.
func (c Candidate) Key() string {
	return fmt.Sprintf("ngram=%d-%d,max_df=%.2f,max_features=%d,use_idf=%t",
		c.NgramMin, c.NgramMax, c.MaxDF, c.MaxFeatures, c.UseIDF)
}

// DefaultGrid enumerates the fixed search grid: n-gram span (1,1)/(1,2),
// max document frequency 0.75/1.0, vocabulary uncapped/5000, idf on/off.
// 16 candidates in deterministic order.
func DefaultGrid() []Candidate {
	var grid []Candidate
	for _, ngramMax := range []int{1, 2} {
		for _, maxDF := range []float64{0.75, 1.0} {
			for _, maxFeatures := range []int{0, 5000} {
				for _, useIDF := range []bool{true, false} {
					grid = append(grid, Candidate{
						NgramMin:    1,
						NgramMax:    ngramMax,
						MaxDF:       maxDF,
						MaxFeatures: maxFeatures,
						UseIDF:      useIDF,
					})
				}
			}
		}
	}
	return grid
}
