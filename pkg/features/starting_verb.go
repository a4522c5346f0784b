package features

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lab/disaster-pipeline/pkg/nlp"
)

// StartingVerbExtractor emits a single boolean column: 1 when the text's
// first sentence opens with a base-form or non-3rd-person-present verb (or
// the retweet marker), 0 otherwise. It is stateless, so Fit is a no-op.
type StartingVerbExtractor struct {
	proc *nlp.Processor
}

func NewStartingVerbExtractor(proc *nlp.Processor) *StartingVerbExtractor {
	return &StartingVerbExtractor{proc: proc}
}

func (e *StartingVerbExtractor) NumFeatures() int { return 1 }

func (e *StartingVerbExtractor) Fit(texts []string) error { return nil }

func (e *StartingVerbExtractor) Transform(texts []string) (*mat.Dense, error) {
	out := mat.NewDense(len(texts), 1, nil)
	for i, text := range texts {
		verb, err := e.proc.StartingVerb(text)
		if err != nil {
			return nil, err
		}
		if verb {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}
