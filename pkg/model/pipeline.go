package model

import (
	"fmt"

	"github.com/lab/disaster-pipeline/pkg/features"
	"github.com/lab/disaster-pipeline/pkg/nlp"
)

// Pipeline is the full estimator: a feature union of the tf-idf text
// pipeline and the starting-verb extractor, feeding the multi-output
// boosted-stump classifier.
type Pipeline struct {
	Candidate Candidate

	text       *features.TextPipeline
	union      *features.Union
	classifier *MultiOutput
}

func NewPipeline(proc *nlp.Processor, cand Candidate, rounds int) *Pipeline {
	text := features.NewTextPipeline(proc.Tokenize, features.CountVectorizerConfig{
		NgramMin:    cand.NgramMin,
		NgramMax:    cand.NgramMax,
		MaxDF:       cand.MaxDF,
		MaxFeatures: cand.MaxFeatures,
	}, cand.UseIDF)

	return &Pipeline{
		Candidate:  cand,
		text:       text,
		union:      features.NewUnion(text, features.NewStartingVerbExtractor(proc)),
		classifier: NewMultiOutput(rounds),
	}
}

func (p *Pipeline) Fit(texts []string, labels [][]int) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("%d texts but %d label rows", len(texts), len(labels))
	}
	if err := p.union.Fit(texts); err != nil {
		return fmt.Errorf("failed to fit features: %w", err)
	}
	x, err := p.union.Transform(texts)
	if err != nil {
		return fmt.Errorf("failed to transform features: %w", err)
	}
	if err := p.classifier.Fit(x, labels); err != nil {
		return fmt.Errorf("failed to fit classifier: %w", err)
	}
	return nil
}

func (p *Pipeline) Predict(texts []string) ([][]int, error) {
	x, err := p.union.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to transform features: %w", err)
	}
	return p.classifier.Predict(x)
}
