// Package features turns raw message texts into numeric feature matrices.
// Every feature-generating component implements Transformer, so pipelines
// are composed statically instead of by duck typing.
package features

import "gonum.org/v1/gonum/mat"

// Transformer is the capability set the model pipeline expects of a feature
// stage: learn whatever state it needs from the training texts, then map any
// sequence of texts to a row-aligned feature matrix.
type Transformer interface {
	Fit(texts []string) error
	Transform(texts []string) (*mat.Dense, error)
	NumFeatures() int
}
