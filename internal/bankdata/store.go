package bankdata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kredio/kredio/internal/policy"
)

const policyKey = "_policies"

// Snapshot is an immutable view of the data document: all customers plus
// the resolved policy. Decisions only ever see one snapshot.
type Snapshot struct {
	Customers map[string]CustomerRecord
	Policy    policy.Config
	Hash      string
	LoadedAt  time.Time
}

// Customer looks up a record by canonical identifier.
func (s *Snapshot) Customer(id string) (CustomerRecord, bool) {
	c, ok := s.Customers[id]
	return c, ok
}

// Store reads the bank data document once and serves the cached snapshot.
// Concurrent first callers share a single load; Reload swaps the whole
// snapshot atomically so no request sees mixed data.
type Store struct {
	path  string
	log   *slog.Logger
	group singleflight.Group
	snap  atomic.Pointer[Snapshot]
}

func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{path: path, log: log}
}

// Snapshot returns the cached data, loading it on first use.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.snap.Load(); snap != nil {
		return snap, nil
	}

	v, err, _ := s.group.Do("load", func() (any, error) {
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
		snap, err := s.load()
		if err != nil {
			return nil, err
		}
		s.snap.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Reload re-reads the data file and swaps the snapshot in one step.
func (s *Store) Reload(ctx context.Context) error {
	snap, err := s.load()
	if err != nil {
		return err
	}
	s.snap.Store(snap)
	return nil
}

func (s *Store) load() (*Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read bank data: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bank data: %w", err)
	}

	cfg, err := policy.Decode(doc[policyKey])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", policyKey, err)
	}

	customers := make(map[string]CustomerRecord, len(doc))
	for key, val := range doc {
		if strings.HasPrefix(key, "_") {
			continue
		}
		var rec CustomerRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return nil, fmt.Errorf("parse customer %s: %w", key, err)
		}
		rec.ID = key
		for i, loan := range rec.Loans {
			if loan.RemainingBalance > loan.Principal {
				s.log.Warn("remaining balance exceeds principal, clamping",
					"customer_id", key, "loan_id", loan.LoanID)
				rec.Loans[i].RemainingBalance = loan.Principal
			}
		}
		customers[key] = rec
	}

	snap := &Snapshot{
		Customers: customers,
		Policy:    cfg,
		Hash:      digest(raw),
		LoadedAt:  time.Now().UTC(),
	}
	s.log.Info("bank data loaded", "customers", len(customers), "hash", snap.Hash)
	return snap, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}
