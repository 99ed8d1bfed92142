package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type memoryFile struct {
	data     []byte
	modified time.Time
}

// Memory is an in-process Store, handy for tests and throwaway servers.
type Memory struct {
	mu    sync.Mutex
	files map[string]memoryFile
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]memoryFile), now: time.Now}
}

func (m *Memory) Put(_ context.Context, name string, r io.Reader) error {
	if err := ValidName(name); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = memoryFile{data: data, modified: m.now()}
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[name]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *Memory) Prune(_ context.Context, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxAge)
	var removed int
	for name, f := range m.files {
		if f.modified.Before(cutoff) {
			delete(m.files, name)
			removed++
		}
	}
	return removed, nil
}

// Names lists what is currently stored, in no particular order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	return names
}
