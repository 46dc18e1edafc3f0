package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSlotRepo stores each slot as <dir>/<name>.json.
type FileSlotRepo struct {
	dir string
}

// NewFileSlotRepo creates dir if needed and returns a repo rooted there.
func NewFileSlotRepo(dir string) (*FileSlotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &FileSlotRepo{dir: dir}, nil
}

// Dir returns the directory slots are written to.
func (r *FileSlotRepo) Dir() string {
	return r.dir
}

func (r *FileSlotRepo) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotName, name)
	}
	return filepath.Join(r.dir, name+".json"), nil
}

func (r *FileSlotRepo) Get(_ context.Context, name string) ([]byte, error) {
	p, err := r.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", name, err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the slot so readers never
// see a partial value.
func (r *FileSlotRepo) Put(_ context.Context, name string, data []byte) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	return nil
}

func (r *FileSlotRepo) Delete(_ context.Context, name string) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", name, err)
	}
	return nil
}
