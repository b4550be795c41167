package fs

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/akeil/xform/internal/logging"
)

// WriteFile creates the file at path with content from the write func.
//
// Data is written to a temporary file next to path first and moved into
// place when write succeeds, so a failed render never leaves a partial
// file behind.
func WriteFile(path string, write func(w io.Writer) error) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := ioutil.TempFile(dir, "."+name+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	err = write(tmp)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	logging.Debug("Move %v -> %v", tmpPath, path)
	return Move(tmpPath, path)
}

// Move moves a file from src to dst.
// It tries os.Rename() first and falls back on "copy and delete".
//
// If src cannot be delted after a successful copy,
// NO error is returned and src remains as it was.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	// Rename may have failed when moving across file systems
	// so try again w/ copy & delete.
	logging.Debug("Rename failed for %v -> %v, fall back on copy and delete", src, dst)
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	// A bit untidy, but we carry on even if we fail to clean up behind us.
	ignoredErr := os.Remove(src)
	if ignoredErr != nil {
		logging.Error("Failed to remove file %v", src)
	}

	return nil
}
