package model

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAdaBoostLearnsSeparableData(t *testing.T) {
	x := mat.NewDense(6, 2, []float64{
		0, 0.1,
		0, 0.3,
		0, 0.2,
		1, 0.9,
		1, 0.8,
		1, 0.7,
	})
	labels := []int{0, 0, 0, 1, 1, 1}

	b := NewAdaBoost(10)
	if err := b.Fit(x, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(b.Predict(x), labels) {
		t.Errorf("predictions %v, want %v", b.Predict(x), labels)
	}
}

func TestAdaBoostXOR(t *testing.T) {
	// XOR needs more than one stump; a single round cannot fit it.
	x := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	labels := []int{0, 1, 1, 0}

	b := NewAdaBoost(DefaultRounds)
	if err := b.Fit(x, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Stumps) < 2 {
		t.Errorf("expected more than one stump for xor, got %d", len(b.Stumps))
	}
}

func TestAdaBoostConstantLabels(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})

	for _, label := range []int{0, 1} {
		b := NewAdaBoost(5)
		if err := b.Fit(x, []int{label, label, label}); err != nil {
			t.Fatalf("unexpected error for constant label %d: %v", label, err)
		}
		for _, p := range b.Predict(x) {
			if p != label {
				t.Errorf("constant-label ensemble predicted %d, want %d", p, label)
			}
		}
	}
}

func TestAdaBoostErrors(t *testing.T) {
	b := NewAdaBoost(5)

	if err := b.Fit(mat.NewDense(1, 1, []float64{1}), []int{0, 1}); err == nil {
		t.Error("expected error for mismatched labels")
	}
}

func TestNewAdaBoostDefaultRounds(t *testing.T) {
	if b := NewAdaBoost(0); b.Rounds != DefaultRounds {
		t.Errorf("rounds = %d, want %d", b.Rounds, DefaultRounds)
	}
}

func TestMultiOutputPerColumn(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	// Label 0 follows feature 0, label 1 follows feature 1.
	labels := [][]int{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}

	m := NewMultiOutput(10)
	if err := m.Fit(x, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Estimators) != 2 {
		t.Fatalf("expected 2 estimators, got %d", len(m.Estimators))
	}

	preds, err := m.Predict(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(preds, labels) {
		t.Errorf("predictions %v, want %v", preds, labels)
	}
}

func TestMultiOutputRaggedLabels(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 2})
	err := NewMultiOutput(5).Fit(x, [][]int{{0, 1}, {1}})
	if err == nil {
		t.Fatal("expected error for ragged label rows")
	}
}

func TestMultiOutputUnfitted(t *testing.T) {
	if _, err := NewMultiOutput(5).Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Fatal("expected error from unfitted classifier")
	}
}
