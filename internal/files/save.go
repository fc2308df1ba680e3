package files

import (
	"os"
	"path/filepath"
)

// SaveFile saves a file to the specified path, truncating an existing one.
// If the destination directory doesn't exist, it will be created.
func SaveFile(filePath string, data []byte) error {
	dirPath := filepath.Dir(filePath)
	// Create directories recursively
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return err
	}

	dest, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if _, err = dest.Write(data); err != nil {
		_ = dest.Close()
		return err
	}

	return dest.Close()
}

// EnsureDir creates the directory with all missing parents.
// An existing directory is not an error.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, os.ModePerm)
}
