package materialize

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to path via a temp file + rename. The temp
// file lives in the same directory so the rename is atomic on POSIX; a
// failure leaves any pre-existing file unchanged. The parent directory must
// exist.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".skaff-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}
