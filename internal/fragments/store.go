package fragments

import (
	"errors"
	"io/fs"
	"os"
)

// Store memoizes fragment file reads for one generation pass. It is created by
// the caller per run and is not safe for concurrent use.
type Store struct {
	cache map[string]entry
	reads int
}

type entry struct {
	content string
	exists  bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cache: make(map[string]entry)}
}

// Read returns the content of path. exists is false when the file is absent;
// other read failures are returned as errors and not cached.
func (s *Store) Read(path string) (content string, exists bool, err error) {
	if e, ok := s.cache[path]; ok {
		return e.content, e.exists, nil
	}

	s.reads++
	data, err := os.ReadFile(path) // #nosec G304 -- fragment paths derive from the configured root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.cache[path] = entry{}
		return "", false, nil
	case err != nil:
		return "", false, err
	}

	e := entry{content: string(data), exists: true}
	s.cache[path] = e
	return e.content, true, nil
}

// Reads returns how many times the filesystem was hit.
func (s *Store) Reads() int { return s.reads }
