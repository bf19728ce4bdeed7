package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// stageFile writes a pending file for path in the same directory. The
// target is untouched until the file is committed with
// CloseAtomicallyReplace; Cleanup discards it.
func stageFile(path string, write func(io.Writer) error) (*renameio.PendingFile, error) {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	bw := bufio.NewWriter(pf)
	if err := write(bw); err != nil {
		pf.Cleanup()
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		pf.Cleanup()
		return nil, fmt.Errorf("export: write %s: %w", path, err)
	}
	return pf, nil
}

// WriteFileAtomic writes path through a temporary file in the same
// directory, synced and renamed into place only when write succeeds. On
// failure path is left untouched.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	pf, err := stageFile(path, write)
	if err != nil {
		return err
	}
	defer pf.Cleanup()
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// removeAll deletes paths, ignoring errors. It undoes a partial set of
// writes.
func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
