package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Namespace names for the three resource categories tracked per course.
const (
	NamespaceFiles       = "files"
	NamespaceAssignments = "assignments"
	NamespaceQuizzes     = "quizzes"
)

// Namespaces lists every namespace in canonical order.
var Namespaces = []string{NamespaceFiles, NamespaceAssignments, NamespaceQuizzes}

// Cache groups one Map per namespace under a shared lifecycle. The member
// set is fixed at construction; SaveState, Update and Reset apply uniformly
// across all members.
type Cache struct {
	members map[string]*Map
}

// NewCache creates a Cache rooted at dir, with each namespace backed by its
// dot-file (.files.json, .assignments.json, .quizzes.json) in that
// directory.
func NewCache(dir string) *Cache {
	members := make(map[string]*Map, len(Namespaces))
	for _, name := range Namespaces {
		members[name] = NewMap(filepath.Join(dir, "."+name+".json"), nil)
	}
	return &Cache{members: members}
}

// Member returns the Map backing the named namespace.
func (c *Cache) Member(namespace string) (*Map, error) {
	m, ok := c.members[namespace]
	if !ok {
		return nil, fmt.Errorf("unknown namespace %q", namespace)
	}
	return m, nil
}

// SaveState persists every member. All members are attempted even when one
// fails; the errors are joined.
func (c *Cache) SaveState() error {
	var errs []error
	for _, name := range Namespaces {
		if err := c.members[name].Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update replaces the content of each named namespace with the given
// mapping. The swap is atomic with respect to the member's loaded state and
// does not touch the disk until SaveState. Names that are not members are
// rejected.
func (c *Cache) Update(values map[string]map[string]any) error {
	for name, data := range values {
		m, err := c.Member(name)
		if err != nil {
			return err
		}
		if err := m.Load(data); err != nil {
			return err
		}
	}
	return nil
}

// Reset resets every member, dropping unsaved changes.
func (c *Cache) Reset() {
	for _, m := range c.members {
		m.Reset()
	}
}

// Resolve translates a logical path in the named namespace to its remote
// identifier. Fails with ErrNotFound when the path is not cached; callers
// typically reconcile against the remote course and retry.
func (c *Cache) Resolve(namespace, logicalPath string) (int, error) {
	m, err := c.Member(namespace)
	if err != nil {
		return 0, err
	}
	return m.GetID(logicalPath)
}
