package profile

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/atomicfile"
)

// Store owns the canonical profile file. It is the only writer; every
// load→merge→save cycle runs under one exclusive section so concurrent file
// pipelines cannot race a lost update. All other components hold at most a
// transient copy of the profile.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the profile file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current profile, returning a fresh empty profile when the
// file does not exist yet. An unreadable profile file is an error: silently
// starting over would throw away merged history.
func (s *Store) Load() (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Profile, error) {
	var p Profile
	if err := atomicfile.ReadJSON(s.path, &p); err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", s.path).Info("no existing profile, starting empty")
			return NewEmptyProfile(), nil
		}
		return nil, err
	}
	if p.PersonalInfo == nil {
		p.PersonalInfo = map[string]string{}
	}
	if p.Skills.Technical == nil {
		p.Skills.Technical = map[string][]string{}
	}
	return &p, nil
}

// Save atomically replaces the profile file with p.
func (s *Store) Save(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicfile.WriteJSON(s.path, p)
}

// Merge folds one document's structured fields into the stored profile:
// load, merge per category identity rules, save atomically. If persistence
// fails the prior on-disk profile remains authoritative and the error is
// returned so the caller does not record success.
func (s *Store) Merge(ext *Extraction) (*MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	res := mergeExtraction(p, ext, now)

	if err := atomicfile.WriteJSON(s.path, p); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"added":  res.Added,
		"merged": res.Merged,
	}).Info("profile updated")
	return res, nil
}
