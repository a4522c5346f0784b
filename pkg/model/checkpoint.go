package model

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var resultsBucket = []byte("GridResults")

// Checkpointer records finished grid candidates in a bbolt file so an
// interrupted search resumes without re-evaluating them.
type Checkpointer struct {
	db *bbolt.DB
}

func NewCheckpointer(dbPath string) (*Checkpointer, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(resultsBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Checkpointer{db: db}, nil
}

func (c *Checkpointer) Close() error {
	return c.db.Close()
}

// Lookup returns the stored result for a candidate, if any.
func (c *Checkpointer) Lookup(cand Candidate) (*SearchResult, bool, error) {
	var result *SearchResult
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(resultsBucket).Get([]byte(cand.Key()))
		if data == nil {
			return nil
		}
		var r SearchResult
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to unmarshal checkpoint for %s: %w", cand.Key(), err)
		}
		result = &r
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, result != nil, nil
}

// Store persists a finished candidate evaluation.
func (c *Checkpointer) Store(result SearchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(resultsBucket).Put([]byte(result.Candidate.Key()), data)
	})
}
