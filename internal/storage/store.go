// Package storage keeps a history of completed sweeps in a bbolt database
// under the output directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"searchbench/internal/bench"
)

const BucketRuns = "runs"

// RunConfig echoes the settings a sweep ran with.
type RunConfig struct {
	ElasticURL     string        `json:"elastic_url"`
	Index          string        `json:"index"`
	QueryDir       string        `json:"query_dir"`
	OutDir         string        `json:"out_dir"`
	RequestTimeout time.Duration `json:"request_timeout"`
	Duration       time.Duration `json:"duration_per_client"`
	Warmup         int           `json:"warmup_requests"`
	Seed           int64         `json:"seed"`
}

// RunRecord is one completed sweep.
type RunRecord struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Config    RunConfig               `json:"config"`
	Summaries []bench.ScenarioSummary `json:"summaries"`
}

type Store struct {
	db *bbolt.DB
}

// Open creates or opens the history database at dir/history.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(filepath.Join(dir, "history.db"), 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save assigns the record an ID if it has none and persists it. Keys are
// timestamp-prefixed so a reverse cursor yields newest first.
func (s *Store) Save(rec RunRecord) (RunRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	return rec, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s_%s", rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.ID)
		return b.Put([]byte(key), data)
	})
}

// List returns all recorded runs, newest first.
func (s *Store) List() ([]RunRecord, error) {
	var records []RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, err
}

// Get returns one run by ID.
func (s *Store) Get(id string) (*RunRecord, error) {
	var found *RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		return b.ForEach(func(k, v []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil
			}
			if rec.ID == id {
				found = &rec
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return found, nil
}
