// Package store provides the disk-backed caches that map logical course
// paths (folder/file paths, "group/assignment" names, quiz titles) to their
// numeric remote identifiers.
//
// The storage primitive is Map, a lazily loaded JSON-object file. Cache
// groups the three namespace Maps (files, assignments, quizzes) under one
// lifecycle, and Scope ties a Cache to a working directory with guaranteed
// persistence on exit.
//
// Layout on disk:
//   - .files.json       logical file path -> file id
//   - .assignments.json "group/assignment name" -> assignment id
//   - .quizzes.json     quiz title -> quiz id
//
// Each file is a single flat JSON object. Writes are whole-file overwrites;
// there is no cross-process locking (single-user, single-process tool).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for the storage layer. Callers match them with errors.Is.
var (
	// ErrNotFound indicates a key absent from a Map or Cache lookup.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt indicates on-disk content that is not a JSON object.
	ErrCorrupt = errors.New("on-disk data is not a JSON object")
	// ErrNotActive indicates an operation that requires an active scope.
	ErrNotActive = errors.New("cache must be used within an active scope")
)

// Map is a disk-backed key-value mapping, loaded lazily on first access.
//
// A Map constructed over a path does not touch the disk until the first
// read or write. Save before that first access is a no-op, so a fresh Map
// can never clobber on-disk data with an empty object. Two Maps over the
// same path mutated independently are last-writer-wins; that is a known
// limitation, not a guarded case.
type Map struct {
	path    string
	def     map[string]any
	loaded  bool
	entries map[string]any
}

// NewMap creates a Map backed by the JSON file at path. The default content
// is used when the file does not exist yet; nil means empty.
func NewMap(path string, def map[string]any) *Map {
	return &Map{path: path, def: def}
}

// Path returns the backing file path.
func (m *Map) Path() string { return m.path }

// Loaded reports whether the map has been populated (from disk, default,
// or an explicit Load).
func (m *Map) Loaded() bool { return m.loaded }

// ensureLoaded populates entries from disk or the default on first access.
func (m *Map) ensureLoaded() error {
	if m.loaded {
		return nil
	}
	return m.Load(nil)
}

// Load populates the map and marks it loaded.
//
// With non-nil data the map adopts it as current content, bypassing the
// disk entirely; reconciliation uses this to swap in a fresh remote
// snapshot without an intermediate save. With nil data the backing file is
// read if it exists, otherwise the configured default is copied in.
func (m *Map) Load(data map[string]any) error {
	if data == nil {
		raw, err := os.ReadFile(m.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			data = m.def
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", m.path, err)
		default:
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("%s: %w: %v", m.path, ErrCorrupt, err)
			}
			if data == nil {
				// A bare JSON null decodes without error.
				return fmt.Errorf("%s: %w", m.path, ErrCorrupt)
			}
		}
	}
	m.entries = make(map[string]any, len(data))
	for k, v := range data {
		m.entries[k] = v
	}
	m.loaded = true
	return nil
}

// Get returns the value stored under key, loading from disk first if
// needed. Absent keys fail with ErrNotFound.
func (m *Map) Get(key string) (any, error) {
	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return v, nil
}

// GetID returns the numeric remote identifier stored under key.
func (m *Map) GetID(key string) (int, error) {
	v, err := m.Get(key)
	if err != nil {
		return 0, err
	}
	id, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("%q: value %v is not an integer id", key, v)
	}
	return id, nil
}

// Set stores value under key, loading from disk first if needed.
func (m *Map) Set(key string, value any) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	m.entries[key] = value
	return nil
}

// Len returns the number of entries without triggering a load.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the live entry map. Mutating it mutates the Map; the
// Map stays the sole owner of its content between Load and Save.
func (m *Map) Entries() map[string]any { return m.entries }

// Save serializes the current entries as a JSON object, fully overwriting
// the backing file. A Map that was never loaded saves nothing: there is no
// in-memory state worth persisting, and writing would destroy whatever is
// on disk.
func (m *Map) Save() error {
	if !m.loaded {
		return nil
	}
	data, err := json.Marshal(m.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", m.path, err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return nil
}

// Reset discards the in-memory entries and marks the map unloaded. The
// disk is untouched; the next access reloads from it, so unsaved writes
// are lost.
func (m *Map) Reset() {
	m.entries = nil
	m.loaded = false
}

// Update merges other into the map recursively: when both the existing and
// the incoming value for a key are objects they merge key by key, anything
// else is overwritten. Triggers an implicit load first.
func (m *Map) Update(other map[string]any) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	recUpdate(m.entries, other)
	return nil
}

func recUpdate(dst, src map[string]any) {
	for key, value := range src {
		if existing, ok := dst[key].(map[string]any); ok {
			if incoming, ok := value.(map[string]any); ok {
				recUpdate(existing, incoming)
				continue
			}
		}
		dst[key] = value
	}
}

// asInt normalizes the numeric representations that reach a Map: ints set
// in process and float64/json.Number decoded from JSON.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
