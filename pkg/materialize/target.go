package materialize

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/types"
)

// PrepareTarget brings the target directory into the state the merge mode
// requires and returns its absolute path. Create fails on a non-empty
// pre-existing target, Force replaces it wholesale, Append keeps it.
func PrepareTarget(target string, mode types.MergeMode) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot resolve target %q", target)
	}

	info, statErr := os.Stat(abs)
	switch {
	case statErr == nil && !info.IsDir():
		return "", errors.Newf(errors.ErrMergeConflict,
			"target %q exists and is not a directory", abs)

	case statErr == nil && mode == types.MergeCreate:
		empty, err := dirIsEmpty(abs)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot read target %q", abs)
		}
		if !empty {
			return "", errors.Newf(errors.ErrMergeConflict,
				"target %q already exists and is not empty (use force or append)", abs)
		}

	case statErr == nil && mode == types.MergeForce:
		if err := os.RemoveAll(abs); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot replace target %q", abs)
		}
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create target %q", abs)
	}
	return abs, nil
}

func dirIsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
