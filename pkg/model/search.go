package model

import (
	"fmt"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/lab/disaster-pipeline/pkg/evaluate"
	"github.com/lab/disaster-pipeline/pkg/nlp"
)

const (
	DefaultFolds   = 3
	DefaultWorkers = 4
)

// SearchConfig controls the cross-validated grid search.
type SearchConfig struct {
	Folds          int
	Workers        int
	Rounds         int
	Seed           int64
	CheckpointPath string
}

// SearchResult is one candidate's cross-validation outcome.
type SearchResult struct {
	Candidate  Candidate `json:"candidate"`
	FoldScores []float64 `json:"fold_scores"`
	MeanScore  float64   `json:"mean_score"`
}

// GridSearch is the unfit estimator returned by BuildModel. Calling Fit
// evaluates every grid candidate with k-fold cross-validation on a bounded
// worker pool, then refits the winner on the full training data.
type GridSearch struct {
	proc   *nlp.Processor
	grid   []Candidate
	cfg    SearchConfig
	logger *zap.SugaredLogger

	Best    *Pipeline
	Results []SearchResult
}

// BuildModel assembles the estimator declaratively; no fitting or search
// happens until Fit is invoked.
func BuildModel(proc *nlp.Processor, cfg SearchConfig, logger *zap.SugaredLogger) *GridSearch {
	if cfg.Folds <= 0 {
		cfg.Folds = DefaultFolds
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	return &GridSearch{
		proc:   proc,
		grid:   DefaultGrid(),
		cfg:    cfg,
		logger: logger,
	}
}

type candidateJob struct {
	index int
	cand  Candidate
}

// Fit runs the search and refits the best candidate on all rows. Each
// candidate evaluation is pure given its configuration and the folds; the
// workers share nothing mutable.
func (gs *GridSearch) Fit(texts []string, labels [][]int) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("%d texts but %d label rows", len(texts), len(labels))
	}

	folds, err := kFolds(len(texts), gs.cfg.Folds, gs.cfg.Seed)
	if err != nil {
		return err
	}

	var checkpointer *Checkpointer
	if gs.cfg.CheckpointPath != "" {
		checkpointer, err = NewCheckpointer(gs.cfg.CheckpointPath)
		if err != nil {
			return err
		}
		defer checkpointer.Close()
	}

	results := make([]SearchResult, len(gs.grid))
	pending := make([]candidateJob, 0, len(gs.grid))
	for i, cand := range gs.grid {
		if checkpointer != nil {
			stored, ok, err := checkpointer.Lookup(cand)
			if err != nil {
				return err
			}
			if ok {
				gs.logger.Infow("skipping checkpointed candidate",
					"candidate", cand.Key(), "mean_score", stored.MeanScore)
				results[i] = *stored
				continue
			}
		}
		pending = append(pending, candidateJob{index: i, cand: cand})
	}

	if len(pending) > 0 {
		if err := gs.evaluatePending(texts, labels, folds, pending, results, checkpointer); err != nil {
			return err
		}
	}

	best := 0
	for i := range results {
		if results[i].MeanScore > results[best].MeanScore {
			best = i
		}
	}
	gs.Results = results
	gs.logger.Infow("grid search finished",
		"best_candidate", results[best].Candidate.Key(),
		"cv_score", results[best].MeanScore)

	gs.Best = NewPipeline(gs.proc, results[best].Candidate, gs.cfg.Rounds)
	if err := gs.Best.Fit(texts, labels); err != nil {
		return fmt.Errorf("failed to refit best candidate: %w", err)
	}
	return nil
}

func (gs *GridSearch) evaluatePending(texts []string, labels [][]int, folds [][]int,
	pending []candidateJob, results []SearchResult, checkpointer *Checkpointer) error {

	progress := mpb.New(mpb.WithWidth(80))
	bar := progress.AddBar(int64(len(pending)),
		mpb.PrependDecorators(
			decor.Name("Grid search: "),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO), "done!"),
		),
	)

	jobs := make(chan candidateJob, len(pending))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	workers := gs.cfg.Workers
	if workers > len(pending) {
		workers = len(pending)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result, err := gs.evaluateCandidate(texts, labels, folds, job.cand)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("candidate %s: %w", job.cand.Key(), err)
					}
				} else {
					results[job.index] = *result
					if checkpointer != nil {
						if cpErr := checkpointer.Store(*result); cpErr != nil {
							gs.logger.Warnw("failed to checkpoint candidate",
								"candidate", job.cand.Key(), "error", cpErr)
						}
					}
				}
				mu.Unlock()
				bar.Increment()
			}
		}()
	}

	for _, job := range pending {
		jobs <- job
	}
	close(jobs)
	wg.Wait()
	progress.Wait()

	return firstErr
}

// evaluateCandidate trains the candidate on each fold complement and scores
// it on the held-out fold.
func (gs *GridSearch) evaluateCandidate(texts []string, labels [][]int, folds [][]int, cand Candidate) (*SearchResult, error) {
	result := &SearchResult{Candidate: cand}

	for f, validation := range folds {
		var trainIdx []int
		for g, fold := range folds {
			if g != f {
				trainIdx = append(trainIdx, fold...)
			}
		}

		trainTexts, trainLabels := subset(texts, labels, trainIdx)
		valTexts, valLabels := subset(texts, labels, validation)

		pipeline := NewPipeline(gs.proc, cand, gs.cfg.Rounds)
		if err := pipeline.Fit(trainTexts, trainLabels); err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		preds, err := pipeline.Predict(valTexts)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		result.FoldScores = append(result.FoldScores, evaluate.OverallAccuracy(valLabels, preds))
	}

	var sum float64
	for _, s := range result.FoldScores {
		sum += s
	}
	result.MeanScore = sum / float64(len(result.FoldScores))
	return result, nil
}

func subset(texts []string, labels [][]int, indices []int) ([]string, [][]int) {
	outTexts := make([]string, len(indices))
	outLabels := make([][]int, len(indices))
	for i, idx := range indices {
		outTexts[i] = texts[idx]
		outLabels[i] = labels[idx]
	}
	return outTexts, outLabels
}
