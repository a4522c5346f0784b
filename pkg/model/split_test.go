package model

import (
	"reflect"
	"testing"
)

func TestSplitTrainTest(t *testing.T) {
	train, test, err := SplitTrainTest(10, 0.2, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(test) != 2 || len(train) != 8 {
		t.Fatalf("split sizes %d/%d, want 8/2", len(train), len(test))
	}

	seen := make(map[int]bool, 10)
	for _, idx := range append(append([]int{}, train...), test...) {
		if seen[idx] {
			t.Errorf("index %d assigned twice", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 10 {
		t.Errorf("split covers %d indices, want 10", len(seen))
	}
}

func TestSplitTrainTestDeterministic(t *testing.T) {
	train1, test1, _ := SplitTrainTest(20, 0.25, 7)
	train2, test2, _ := SplitTrainTest(20, 0.25, 7)
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}

	_, testOther, _ := SplitTrainTest(20, 0.25, 8)
	if reflect.DeepEqual(test1, testOther) {
		t.Error("different seeds produced identical splits")
	}
}

func TestSplitTrainTestBadFraction(t *testing.T) {
	for _, fraction := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := SplitTrainTest(10, fraction, 1); err == nil {
			t.Errorf("expected error for fraction %v", fraction)
		}
	}
}

func TestKFolds(t *testing.T) {
	folds, err := kFolds(10, 3, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folds) != 3 {
		t.Fatalf("got %d folds, want 3", len(folds))
	}

	seen := make(map[int]bool, 10)
	for _, fold := range folds {
		if len(fold) < 3 {
			t.Errorf("fold of size %d, want at least 3", len(fold))
		}
		for _, idx := range fold {
			if seen[idx] {
				t.Errorf("index %d appears in two folds", idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("folds cover %d indices, want 10", len(seen))
	}
}

func TestKFoldsErrors(t *testing.T) {
	if _, err := kFolds(10, 1, 1); err == nil {
		t.Error("expected error for a single fold")
	}
	if _, err := kFolds(2, 3, 1); err == nil {
		t.Error("expected error for more folds than rows")
	}
}
