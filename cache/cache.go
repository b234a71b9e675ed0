// Package cache is a content-addressed score cache keyed by the raw trail
// bytes and the exact configuration that produced the score. The pipeline
// itself stays a pure function; callers decide what to cache and when to
// invalidate.
package cache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/gpxtone/gpxtone/model"
)

// Key addresses one (trail, configuration) pair.
type Key struct {
	Trail  string
	Config string
}

// TrailFingerprint hashes the raw uploaded bytes, before parsing, so two
// byte-identical files always hit the same entry.
func TrailFingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// ConfigFingerprint hashes the JSON form of a configuration. Struct field
// order is stable, so equal configs produce equal fingerprints.
func ConfigFingerprint(cfg any) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("fingerprinting config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Store is a concurrency-safe in-memory cache.
type Store struct {
	mu     sync.RWMutex
	scores map[Key]*model.Score
}

func New() *Store {
	return &Store{scores: make(map[Key]*model.Score)}
}

func (s *Store) Get(k Key) (*model.Score, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scores[k]
	return sc, ok
}

func (s *Store) Put(k Key, sc *model.Score) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[k] = sc
}

// Invalidate drops one entry.
func (s *Store) Invalidate(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, k)
}

// Reset drops everything.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = make(map[Key]*model.Score)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores)
}

// SaveTo writes a gob snapshot of the cache, for keeping warm entries
// across server restarts.
func (s *Store) SaveTo(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := gob.NewEncoder(w).Encode(s.scores); err != nil {
		return fmt.Errorf("encoding cache snapshot: %w", err)
	}
	return nil
}

// LoadFrom replaces the cache contents with a snapshot written by SaveTo.
func (s *Store) LoadFrom(r io.Reader) error {
	scores := make(map[Key]*model.Score)
	if err := gob.NewDecoder(r).Decode(&scores); err != nil {
		return fmt.Errorf("decoding cache snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = scores
	return nil
}
