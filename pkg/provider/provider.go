// Package provider resolves a template locator to a local, readable
// directory. Local paths pass through; git locations are cloned into the
// user's cache directory. All network access and ref checkout happens
// here — the engine only ever sees a directory.
package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/logging"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

// Source fetches templates.
type Source struct {
	logger   zerolog.Logger
	cacheDir string
}

// New builds a Source caching clones under the XDG cache home. cacheDir
// overrides the location when non-empty.
func New(cacheDir string) *Source {
	if cacheDir == "" {
		cacheDir = filepath.Join(xdg.CacheHome, "skaff", "templates")
	}
	return &Source{
		logger:   logging.GetLogger("provider"),
		cacheDir: cacheDir,
	}
}

// Resolve returns a local directory holding the raw template tree. ref is
// a tag or commit hash checked out after cloning; subdir narrows to a
// template living below the repository root. Both are ignored for plain
// local directories (subdir still applies).
func (s *Source) Resolve(ctx context.Context, locator, ref, subdir string) (string, error) {
	var dir string
	switch {
	case isRemote(locator):
		cloned, err := s.clone(ctx, locator, ref)
		if err != nil {
			return "", err
		}
		dir = cloned
	default:
		info, err := os.Stat(locator)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ErrSourceNotFound,
				"template %q is neither a directory nor a git location", locator)
		}
		dir = locator
	}

	if subdir != "" {
		dir = filepath.Join(dir, subdir)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ErrSourceNotFound,
				"template path %q not found in %s", subdir, locator)
		}
	}
	return dir, nil
}

func isRemote(locator string) bool {
	return strings.HasSuffix(locator, ".git") ||
		strings.HasPrefix(locator, "http://") ||
		strings.HasPrefix(locator, "https://") ||
		strings.HasPrefix(locator, "git@") ||
		strings.HasPrefix(locator, "ssh://")
}

// clone fetches the repository into a cache slot derived from the locator.
// A stale slot is removed first so every run sees a fresh checkout.
func (s *Source) clone(ctx context.Context, locator, ref string) (string, error) {
	dir := filepath.Join(s.cacheDir, cacheKey(locator))

	if err := os.RemoveAll(dir); err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceFetch, "cannot clear cache slot %q", dir)
	}
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceFetch, "cannot create cache dir %q", s.cacheDir)
	}

	s.logger.Info().Str("url", locator).Str("dir", dir).Msg("Cloning template")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: locator})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceFetch, "cannot clone %q", locator)
	}

	if ref != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrSourceFetch, "cannot resolve ref %q", ref)
		}
		wt, err := repo.Worktree()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrSourceFetch, "cannot open worktree")
		}
		if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
			return "", errors.Wrapf(err, errors.ErrSourceFetch, "cannot check out %q", ref)
		}
		s.logger.Debug().Str("ref", ref).Str("hash", hash.String()).Msg("Checked out ref")
	}
	return dir, nil
}

// cacheKey derives a stable directory name from the locator.
func cacheKey(locator string) string {
	sum := sha256.Sum256([]byte(locator))
	return hex.EncodeToString(sum[:])[:12]
}
