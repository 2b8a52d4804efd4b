package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

var (
	ErrInvalidName = errors.New("invalid snapshot name")

	nameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// SnapshotStore keeps one pretty-printed JSON file per collection: <dir>/<name>.json.
// The directory is created on first write.
type SnapshotStore struct {
	dir string
}

var _ study.SnapshotStore = (*SnapshotStore)(nil) // interface compliance check

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

func (fs *SnapshotStore) Dir() string {
	return fs.dir
}

func (fs *SnapshotStore) path(name string) (string, error) {
	if !nameRegex.MatchString(name) {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(fs.dir, name+".json"), nil
}

func (fs *SnapshotStore) ReadSnapshot(name string, dst interface{}) (bool, error) {
	path, err := fs.path(name)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading %s", path)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return false, errors.Wrapf(err, "decoding %s", path)
	}
	return true, nil
}

// WriteSnapshot replaces the snapshot atomically: records are written to a temp file which is then renamed.
func (fs *SnapshotStore) WriteSnapshot(name string, records interface{}) error {
	path, err := fs.path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	if err = os.MkdirAll(fs.dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", fs.dir)
	}

	tmp, err := os.CreateTemp(fs.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", name)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "renaming %s", tmp.Name())
	}
	return nil
}
