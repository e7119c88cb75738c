package kv

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/edunova/colegio/core"
)

// File stores each document as a JSON file under a root directory.
// Writes go through a temp file and an atomic rename so a crash cannot
// leave a half-written document behind.
type File struct {
	root string
}

var _ core.KVStore = (*File)(nil)

func NewFile(root string) (*File, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating storage dir")
	}
	return &File{root: root}, nil
}

func (s *File) Get(key string) ([]byte, bool, error) {
	doc, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "reading %q", key)
	}
	return doc, true, nil
}

func (s *File) Set(key string, doc []byte) error {
	path := s.path(key)
	tmp, err := os.CreateTemp(s.root, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %q", key)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "closing %q", key)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "renaming %q", key)
	}
	return nil
}

func (s *File) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting %q", key)
	}
	return nil
}

func (s *File) path(key string) string {
	return filepath.Join(s.root, sanitizeKey(key)+".json")
}

// sanitizeKey keeps keys from escaping the root directory.
func sanitizeKey(key string) string {
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	key = strings.ReplaceAll(key, "..", "_")
	return key
}
