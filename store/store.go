// Package store persists canvas snapshots through gdata, a cross-platform
// key-value storage layer. Snapshots are saved into named slots, so a host
// can keep several boards side by side.
//
// A store opened with a nil manager runs in degraded mode: every operation
// succeeds but nothing is persisted. That mirrors how hosts behave on
// platforms where local storage is unavailable.
package store

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"

	"github.com/muralkit/mural"
)

const snapshotsObject = "snapshots"

// ErrNoSnapshot is returned by Load when the slot has never been saved.
var ErrNoSnapshot = errors.New("store: no snapshot in slot")

// SnapshotStore saves and restores canvas snapshots.
type SnapshotStore struct {
	m *gdata.Manager
}

// Open builds a store backed by the platform's data directory for appName.
func Open(appName string) (*SnapshotStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open data manager: %w", err)
	}
	return &SnapshotStore{m: m}, nil
}

// NewWithManager wraps an existing gdata manager. A nil manager yields a
// degraded store that drops saves and reports every slot as empty.
func NewWithManager(m *gdata.Manager) *SnapshotStore {
	return &SnapshotStore{m: m}
}

// Save exports the canvas and writes it into slot.
func (s *SnapshotStore) Save(slot string, c *mural.Canvas) error {
	if s.m == nil {
		return nil
	}
	data, err := c.ExportJSON()
	if err != nil {
		return fmt.Errorf("store: export snapshot: %w", err)
	}
	if err := s.m.SaveObjectProp(snapshotsObject, slot, data); err != nil {
		return fmt.Errorf("store: save slot %q: %w", slot, err)
	}
	return nil
}

// Load restores the snapshot in slot into the canvas. The canvas is left
// untouched when the slot is empty or the stored data fails validation.
func (s *SnapshotStore) Load(slot string, c *mural.Canvas) error {
	if s.m == nil || !s.m.ObjectPropExists(snapshotsObject, slot) {
		return ErrNoSnapshot
	}
	data, err := s.m.LoadObjectProp(snapshotsObject, slot)
	if err != nil {
		return fmt.Errorf("store: load slot %q: %w", slot, err)
	}
	if err := c.ImportJSON(data); err != nil {
		return fmt.Errorf("store: restore slot %q: %w", slot, err)
	}
	return nil
}

// Exists reports whether slot holds a snapshot.
func (s *SnapshotStore) Exists(slot string) bool {
	return s.m != nil && s.m.ObjectPropExists(snapshotsObject, slot)
}
