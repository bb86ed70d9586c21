package fileutil

import (
	"os"
	"path/filepath"

	"github.com/terroirai/terroir-web/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return newFileError(ErrCausePathError, fullDir, err)
	}
	return nil
}

// WriteFileAtomic writes content to a sibling temp file and renames it over
// fullPath, so readers never observe a half-written page.
func WriteFileAtomic(fullPath string, content []byte) failure.ClassifiedError {
	if err := EnsureDir(filepath.Dir(fullPath)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".tmp-*")
	if err != nil {
		return newFileError(ErrCauseWriteError, fullPath, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) failure.ClassifiedError {
		os.Remove(tmpName)
		return newFileError(ErrCauseWriteError, fullPath, err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return fail(err)
	}
	return nil
}
