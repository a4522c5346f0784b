package model

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCheckpointerStoreAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")

	cp, err := NewCheckpointer(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cp.Close()

	cand := Candidate{NgramMin: 1, NgramMax: 2, MaxDF: 0.75, MaxFeatures: 5000, UseIDF: true}

	if _, ok, err := cp.Lookup(cand); err != nil || ok {
		t.Fatalf("expected no stored result, got ok=%v err=%v", ok, err)
	}

	stored := SearchResult{
		Candidate:  cand,
		FoldScores: []float64{0.91, 0.93, 0.92},
		MeanScore:  0.92,
	}
	if err := cp.Store(stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, ok, err := cp.Lookup(cand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("stored result not found")
	}
	if !reflect.DeepEqual(*result, stored) {
		t.Errorf("lookup returned %+v, want %+v", *result, stored)
	}
}

func TestCheckpointerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")
	cand := DefaultGrid()[0]

	cp, err := NewCheckpointer(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cp.Store(SearchResult{Candidate: cand, MeanScore: 0.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cp.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cp, err = NewCheckpointer(path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer cp.Close()

	_, ok, err := cp.Lookup(cand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("result lost across reopen")
	}
}
