package gatewaysvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/iwneis/neishelper/core/checklist"
)

// FileSlot keeps the device's blob in a single file named after the storage key.
// A device holds one checklist, so the user id is ignored.
type FileSlot struct {
	path string
}

var _ checklist.Gateway = (*FileSlot)(nil)

func NewFileSlot(dir, key string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, key+".json")}
}

func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Get(_ context.Context, _ string) (string, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "reading checklist file")
	}
	if len(b) == 0 {
		return "", false, nil
	}
	return string(b), true, nil
}

// Put replaces the file atomically.
func (s *FileSlot) Put(_ context.Context, _ string, blob string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating checklist directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.WriteString(blob); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing checklist file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing checklist file")
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "replacing checklist file")
	}
	return nil
}
