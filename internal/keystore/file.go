package keystore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"internmatch-client/internal/common/errors"
)

// FileKeystore keeps all keys in one JSON object on disk. Writes go to a
// temp file in the same directory and are renamed into place.
type FileKeystore struct {
	mu   sync.Mutex
	path string
}

func NewFileKeystore(path string) *FileKeystore {
	return &FileKeystore{path: path}
}

func (k *FileKeystore) Path() string {
	return k.path
}

func (k *FileKeystore) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.load()
	if err != nil {
		return "", false, errors.NewStorageError("get "+key, err)
	}
	val, ok := data[key]
	return val, ok, nil
}

func (k *FileKeystore) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.load()
	if err != nil {
		return errors.NewStorageError("set "+key, err)
	}
	data[key] = value
	if err := k.save(data); err != nil {
		return errors.NewStorageError("set "+key, err)
	}
	return nil
}

func (k *FileKeystore) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := k.load()
	if err != nil {
		return errors.NewStorageError("delete", err)
	}
	changed := false
	for _, key := range keys {
		if _, ok := data[key]; ok {
			delete(data, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := k.save(data); err != nil {
		return errors.NewStorageError("delete", err)
	}
	return nil
}

func (k *FileKeystore) load() (map[string]string, error) {
	raw, err := os.ReadFile(k.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (k *FileKeystore) save(data map[string]string) error {
	dir := filepath.Dir(k.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".keystore-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), k.path)
}
