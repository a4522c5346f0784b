package model

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/lab/disaster-pipeline/pkg/nlp"
)

var (
	sharedProc     *nlp.Processor
	sharedProcErr  error
	sharedProcOnce sync.Once
)

func testProcessor(t *testing.T) *nlp.Processor {
	t.Helper()
	sharedProcOnce.Do(func() {
		sharedProc, sharedProcErr = nlp.NewProcessor()
	})
	if sharedProcErr != nil {
		t.Fatalf("failed to build processor: %v", sharedProcErr)
	}
	return sharedProc
}

func trainingFixture() ([]string, [][]int, []string) {
	texts := []string{
		"We urgently need drinking water in the camp",
		"Please send bottled water to the shelter",
		"Water supplies ran out this morning",
		"Families are asking for food and rice",
		"There is no food left in the village",
		"Send food packages to the school",
	}
	labels := [][]int{
		{1, 0},
		{1, 0},
		{1, 0},
		{0, 1},
		{0, 1},
		{0, 1},
	}
	return texts, labels, []string{"water", "food"}
}

func TestArtifactRoundTrip(t *testing.T) {
	proc := testProcessor(t)
	texts, labels, labelNames := trainingFixture()

	cand := Candidate{NgramMin: 1, NgramMax: 1, MaxDF: 1.0, MaxFeatures: 0, UseIDF: true}
	pipeline := NewPipeline(proc, cand, 10)
	if err := pipeline.Fit(texts, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	original, err := pipeline.Predict(texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	artifact, err := pipeline.Export(labelNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "classifier.gob")
	if err := SaveArtifact(path, artifact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Candidate != cand {
		t.Errorf("candidate = %+v, want %+v", loaded.Candidate, cand)
	}
	if !reflect.DeepEqual(loaded.LabelNames, labelNames) {
		t.Errorf("label names = %v, want %v", loaded.LabelNames, labelNames)
	}

	restored, err := loaded.Pipeline(proc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	replayed, err := restored.Predict(texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(replayed, original) {
		t.Errorf("restored pipeline disagrees:\noriginal: %v\nrestored: %v", original, replayed)
	}
}

func TestExportUnfittedPipeline(t *testing.T) {
	proc := testProcessor(t)
	pipeline := NewPipeline(proc, DefaultGrid()[0], 5)
	if _, err := pipeline.Export([]string{"water"}); err == nil {
		t.Fatal("expected error for unfitted pipeline")
	}
}

func TestExportLabelNameMismatch(t *testing.T) {
	proc := testProcessor(t)
	texts, labels, _ := trainingFixture()

	pipeline := NewPipeline(proc, Candidate{NgramMin: 1, NgramMax: 1, MaxDF: 1.0, UseIDF: true}, 5)
	if err := pipeline.Fit(texts, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pipeline.Export([]string{"water"}); err == nil {
		t.Fatal("expected error for wrong label-name count")
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	if _, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestSaveArtifactLeavesNoTempFile(t *testing.T) {
	proc := testProcessor(t)
	texts, labels, labelNames := trainingFixture()

	pipeline := NewPipeline(proc, Candidate{NgramMin: 1, NgramMax: 1, MaxDF: 1.0, UseIDF: false}, 5)
	if err := pipeline.Fit(texts, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	artifact, err := pipeline.Export(labelNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "classifier.gob")
	if err := SaveArtifact(path, artifact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadArtifact(path + ".tmp"); err == nil {
		t.Error("temp file left behind after save")
	}
}
