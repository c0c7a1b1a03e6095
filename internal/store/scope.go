package store

import (
	"errors"
	"fmt"
	"os"
)

// Scope activates a Cache over a working root for a bounded stretch of
// work. Enter changes the process working directory to the root and builds
// the cache there; Close persists every member and restores the previous
// directory. Close runs the save even when the work in between failed, so
// a deferred Close gives the persistence guarantee on every exit path.
//
// Scopes nest (each remembers its own previous directory) but two scopes
// over the same root at the same time are unsupported, as is any use of a
// scope from more than one goroutine.
type Scope struct {
	cache   *Cache
	root    string
	prevDir string
	closed  bool
}

// Enter activates a cache scope rooted at dir.
func Enter(dir string) (*Scope, error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	return &Scope{
		cache:   NewCache("."),
		root:    dir,
		prevDir: prev,
	}, nil
}

// Cache returns the active cache. After Close (or on a nil scope) it fails
// with ErrNotActive: operating on caches outside a scope is a usage error,
// never silently defaulted.
func (s *Scope) Cache() (*Cache, error) {
	if s == nil || s.closed {
		return nil, ErrNotActive
	}
	return s.cache, nil
}

// Root returns the directory the scope was entered with.
func (s *Scope) Root() string { return s.root }

// Close persists all cache members and restores the previous working
// directory. It is idempotent; only the first call does work.
func (s *Scope) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	saveErr := s.cache.SaveState()
	chdirErr := os.Chdir(s.prevDir)
	if chdirErr != nil {
		chdirErr = fmt.Errorf("failed to restore working directory: %w", chdirErr)
	}
	return errors.Join(saveErr, chdirErr)
}
