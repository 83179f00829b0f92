package mocks

import (
	"fmt"

	"github.com/user/heatgrid/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by
// an in-memory map.
type FileSystem struct {
	Files map[string][]byte

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
}

// NewFileSystem creates an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{Files: map[string][]byte{}}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return data, nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	if m.Files == nil {
		m.Files = map[string][]byte{}
	}
	m.Files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error { return nil }

func (m *FileSystem) Exists(path string) (bool, error) {
	_, ok := m.Files[path]
	return ok, nil
}

func (m *FileSystem) Remove(path string) error {
	delete(m.Files, path)
	return nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
