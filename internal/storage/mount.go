package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// MountFS is a FileSystem that routes each container of a single scheme to
// an ObjectStore.
type MountFS struct {
	scheme string
	mounts map[string]ObjectStore
}

func NewMountFS(scheme string) (*MountFS, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if !schemePattern.MatchString(scheme) {
		return nil, fmt.Errorf("invalid scheme: %q", scheme)
	}
	return &MountFS{scheme: scheme, mounts: map[string]ObjectStore{}}, nil
}

func (m *MountFS) Scheme() string {
	return m.scheme
}

func (m *MountFS) Mount(container string, store ObjectStore) error {
	if store == nil {
		return fmt.Errorf("object store is required")
	}
	if err := validatePathComponent(container, "container"); err != nil {
		return err
	}
	if _, exists := m.mounts[container]; exists {
		return fmt.Errorf("container %q is already mounted", container)
	}
	m.mounts[container] = store
	return nil
}

func (m *MountFS) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if loc.Scheme != m.scheme {
		return nil, fmt.Errorf("unsupported scheme %q for %q", loc.Scheme, location)
	}
	store, ok := m.mounts[loc.Container]
	if !ok {
		return nil, fmt.Errorf("container %q is not mounted", loc.Container)
	}
	return store.Get(ctx, loc.Key)
}

var _ FileSystem = (*MountFS)(nil)
