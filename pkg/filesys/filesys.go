// Package filesys wraps the directory and existence checks the engine's
// startup protocol needs: creating the data directory on first boot, and
// telling a fresh data directory apart from a warm one by checking for the
// log and snapshot files.
package filesys

import (
	"errors"
	"os"
)

var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates dirPath with the given permission. If force is false,
// it returns whatever stat reported unless dirPath does not exist (nil when
// dirPath already exists, without any further check). With force set, it
// returns ErrIsNotDir if dirPath exists and is not a directory.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && !os.IsNotExist(err) {
		return err
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
