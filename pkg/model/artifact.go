package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/lab/disaster-pipeline/pkg/features"
	"github.com/lab/disaster-pipeline/pkg/nlp"
)

// BoostState is the serializable state of one per-label ensemble.
type BoostState struct {
	Stumps []Stump
	Alphas []float64
}

// Artifact is the on-disk form of a fitted pipeline: the winning candidate,
// the fitted vectorizer vocabulary and IDF vector, and every per-label
// ensemble. It carries no version or schema tag; reloading requires a
// matching build.
type Artifact struct {
	Candidate  Candidate
	Rounds     int
	Vocabulary []string
	IDF        []float64
	LabelNames []string
	Estimators []BoostState
	CreatedAt  time.Time
}

// Export captures the fitted pipeline state for serialization.
func (p *Pipeline) Export(labelNames []string) (*Artifact, error) {
	if len(p.classifier.Estimators) == 0 {
		return nil, fmt.Errorf("pipeline is not fitted")
	}
	if len(labelNames) != len(p.classifier.Estimators) {
		return nil, fmt.Errorf("%d label names for %d estimators",
			len(labelNames), len(p.classifier.Estimators))
	}

	estimators := make([]BoostState, len(p.classifier.Estimators))
	for i, est := range p.classifier.Estimators {
		estimators[i] = BoostState{Stumps: est.Stumps, Alphas: est.Alphas}
	}

	return &Artifact{
		Candidate:  p.Candidate,
		Rounds:     p.classifier.Rounds,
		Vocabulary: p.text.Vectorizer.Vocabulary(),
		IDF:        append([]float64(nil), p.text.Tfidf.IDF...),
		LabelNames: append([]string(nil), labelNames...),
		Estimators: estimators,
		CreatedAt:  time.Now(),
	}, nil
}

// Pipeline rebuilds a fitted pipeline from the artifact, backed by the given
// processor.
func (a *Artifact) Pipeline(proc *nlp.Processor) (*Pipeline, error) {
	if len(a.Vocabulary) == 0 || len(a.Estimators) == 0 {
		return nil, fmt.Errorf("artifact is incomplete")
	}

	p := NewPipeline(proc, a.Candidate, a.Rounds)
	p.text.Vectorizer = features.NewCountVectorizerFromVocabulary(proc.Tokenize, features.CountVectorizerConfig{
		NgramMin:    a.Candidate.NgramMin,
		NgramMax:    a.Candidate.NgramMax,
		MaxDF:       a.Candidate.MaxDF,
		MaxFeatures: a.Candidate.MaxFeatures,
	}, a.Vocabulary)
	p.text.Tfidf.IDF = append([]float64(nil), a.IDF...)

	p.classifier.Estimators = make([]*AdaBoost, len(a.Estimators))
	for i, state := range a.Estimators {
		p.classifier.Estimators[i] = &AdaBoost{
			Rounds: a.Rounds,
			Stumps: state.Stumps,
			Alphas: state.Alphas,
		}
	}
	return p, nil
}

// SaveArtifact gob-encodes the artifact to path, writing to a temp file
// first and renaming so a failed run never leaves a truncated artifact.
func SaveArtifact(path string, artifact *Artifact) error {
	tmpPath := path + ".tmp"
	defer os.Remove(tmpPath)

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}

	if err := gob.NewEncoder(file).Encode(artifact); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync artifact: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to finalize artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a gob-encoded artifact back from disk.
func LoadArtifact(path string) (*Artifact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	var artifact Artifact
	if err := gob.NewDecoder(file).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &artifact, nil
}
