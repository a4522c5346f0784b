// train-classifier reads the cleaned message table, fits the multi-output
// classification pipeline with a cross-validated grid search, reports
// per-label quality and serializes the fitted model.
//
// Usage:
//
//	train-classifier <store.db> <model.gob>
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lab/disaster-pipeline/internal/config"
	"github.com/lab/disaster-pipeline/internal/logging"
	"github.com/lab/disaster-pipeline/pkg/evaluate"
	"github.com/lab/disaster-pipeline/pkg/model"
	"github.com/lab/disaster-pipeline/pkg/nlp"
	"github.com/lab/disaster-pipeline/pkg/store"
)

const usage = `Please provide the filepath of the disaster messages database as the first
argument and the filepath of the file to save the model to as the second
argument.

Example: train-classifier DisasterResponse.db classifier.gob`

func main() {
	if len(os.Args) != 3 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1], os.Args[2], cfg, logger); err != nil {
		logger.Errorf("Training failed: %v", err)
		os.Exit(1)
	}
}

func run(storePath, modelPath string, cfg *config.Config, logger *zap.SugaredLogger) error {
	logger.Infof("Loading data... DATABASE: %s", storePath)
	data, err := store.Load(storePath)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d rows with %d label columns", len(data.Texts), len(data.LabelNames))

	proc, err := nlp.NewProcessor()
	if err != nil {
		return err
	}

	trainIdx, testIdx, err := model.SplitTrainTest(len(data.Texts), cfg.TestSplit, cfg.Seed)
	if err != nil {
		return err
	}
	trainTexts, trainLabels := take(data.Texts, data.Labels, trainIdx)
	testTexts, testLabels := take(data.Texts, data.Labels, testIdx)

	logger.Infof("Building model...")
	search := model.BuildModel(proc, model.SearchConfig{
		Folds:          cfg.Folds,
		Workers:        cfg.Workers,
		Rounds:         cfg.BoostRounds,
		Seed:           cfg.Seed,
		CheckpointPath: cfg.CheckpointPath,
	}, logger)

	logger.Infof("Training model on %d rows (%d held out)...", len(trainIdx), len(testIdx))
	if err := search.Fit(trainTexts, trainLabels); err != nil {
		return err
	}

	logger.Infof("Evaluating model...")
	preds, err := search.Best.Predict(testTexts)
	if err != nil {
		return err
	}
	reports, err := evaluate.Report(testLabels, preds, data.LabelNames)
	if err != nil {
		return err
	}
	evaluate.Render(os.Stdout, reports, evaluate.OverallAccuracy(testLabels, preds))

	logger.Infof("Saving model... MODEL: %s", modelPath)
	artifact, err := search.Best.Export(data.LabelNames)
	if err != nil {
		return err
	}
	if err := model.SaveArtifact(modelPath, artifact); err != nil {
		return err
	}

	logger.Infof("Trained model saved!")
	return nil
}

func take(texts []string, labels [][]int, indices []int) ([]string, [][]int) {
	outTexts := make([]string, len(indices))
	outLabels := make([][]int, len(indices))
	for i, idx := range indices {
		outTexts[i] = texts[idx]
		outLabels[i] = labels[idx]
	}
	return outTexts, outLabels
}
