// Package session persists the last successful result so a restart can show
// it without re-querying the provider. The store is advisory: losing it or
// racing on writes only costs a warm start.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/buywise/buywise/internal/listing"
)

// Store is the session cache contract: a page-lifetime string key-value
// store with wholesale clearing.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear()
}

// Keys for the last result pair. Both are written together and read
// together; a half-present pair is treated as absent.
const (
	resultsKey = "last_search_results"
	summaryKey = "last_search_summary"
)

// Save stores the listings and summary of a successful search as one pair.
func Save(s Store, res listing.Result) error {
	lb, err := json.Marshal(res.Listings)
	if err != nil {
		return err
	}
	sb, err := json.Marshal(res.Summary)
	if err != nil {
		return err
	}
	s.Set(resultsKey, string(lb))
	s.Set(summaryKey, string(sb))
	return nil
}

// Load restores the cached pair. Any inconsistency — one key missing, or
// either value failing to parse — clears the whole store and reports no
// cached result, so the cache never stays partially consistent.
func Load(s Store) (listing.Result, bool) {
	lraw, ok1 := s.Get(resultsKey)
	sraw, ok2 := s.Get(summaryKey)
	if !ok1 || !ok2 {
		return listing.Result{}, false
	}
	var res listing.Result
	if err := json.Unmarshal([]byte(lraw), &res.Listings); err != nil {
		s.Clear()
		return listing.Result{}, false
	}
	if err := json.Unmarshal([]byte(sraw), &res.Summary); err != nil {
		s.Clear()
		return listing.Result{}, false
	}
	return res, true
}

// FileStore keeps one file per key under a directory. Writes are
// last-write-wins, which is acceptable for an advisory cache.
type FileStore struct {
	Dir string
}

func (f *FileStore) pathFor(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileStore) Get(key string) (string, bool) {
	b, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (f *FileStore) Set(key, value string) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(f.pathFor(key), []byte(value), 0o644)
}

// Clear removes only the session's own key files; the directory may be
// shared with unrelated data.
func (f *FileStore) Clear() {
	for _, key := range []string{resultsKey, summaryKey} {
		_ = os.Remove(f.pathFor(key))
	}
}

// MemStore is an in-memory Store for tests and for running without a
// session directory.
type MemStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.m[key]
	return v, ok
}

func (m *MemStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = value
}

func (m *MemStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m = make(map[string]string)
}
