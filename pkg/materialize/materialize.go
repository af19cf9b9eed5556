// Package materialize walks a raw template tree and writes the rendered
// result to a target directory. Traversal is deterministic (parents before
// children, siblings lexicographic), exclusion globs match raw relative
// paths, and every file write is individually atomic. There is no
// whole-tree atomicity: a mid-run failure leaves the already-written
// prefix in place.
package materialize

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/glob"
	"github.com/arthur-debert/skaff/pkg/logging"
	"github.com/arthur-debert/skaff/pkg/render"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures one materialization run. TargetDir must already exist
// (see PrepareTarget).
type Options struct {
	TemplateDir string
	TargetDir   string
	Mode        types.MergeMode
	Descriptor  *types.Descriptor
	Context     render.Context
	// OnProgress receives one event per processed file, in traversal
	// order. Optional.
	OnProgress types.ProgressFunc
}

// Result reports what a run produced.
type Result struct {
	Files []types.MaterializedFile
	// Notes is the descriptor's notes rendered against the context,
	// empty when the template declares none.
	Notes string
}

// Run materializes the template tree into the target directory.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("materialize")
	done := logging.LogOperationStart(logger, "materialize")
	defer done()

	exclude, _, err := glob.CompileAll(opts.Descriptor.Exclude)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid exclude glob")
	}
	rawCopy, _, err := glob.CompileAll(opts.Descriptor.DisableTemplating)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid disable_templating glob")
	}

	m := &run{
		opts:    opts,
		logger:  logger,
		exclude: exclude,
		rawCopy: rawCopy,
		written: make(map[string]string),
	}

	if err := filepath.WalkDir(opts.TemplateDir, m.visit); err != nil {
		return nil, err
	}

	result := &Result{Files: m.files}
	if opts.Descriptor.Notes != "" {
		notes, err := render.Render(opts.Descriptor.Notes, opts.Context)
		if err != nil {
			return nil, err
		}
		result.Notes = notes
	}
	return result, nil
}

type run struct {
	opts    Options
	logger  zerolog.Logger
	exclude glob.Set
	rawCopy glob.Set
	// written maps rendered relative paths to the raw path that produced
	// them, for collision detection.
	written map[string]string
	files   []types.MaterializedFile
}

func (m *run) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot read template entry %q", path)
	}
	if path == m.opts.TemplateDir {
		return nil
	}

	rel, err := filepath.Rel(m.opts.TemplateDir, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot relativize %q", path)
	}
	raw := filepath.ToSlash(rel)

	// The descriptor and any git metadata never materialize.
	if d.IsDir() && d.Name() == ".git" {
		return fs.SkipDir
	}
	if raw == types.DescriptorFileTOML || raw == types.DescriptorFileYAML {
		return nil
	}

	// Exclusion is decided on the raw, un-rendered path; a matching
	// directory prunes its whole subtree.
	if m.exclude.Match(raw) {
		m.logger.Debug().Str("path", raw).Msg("Excluded")
		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}

	rendered, err := m.renderPath(raw)
	if err != nil {
		return err
	}

	if d.IsDir() {
		return m.makeDir(raw, rendered, d)
	}
	return m.writeFile(path, raw, rendered, d)
}

// renderPath renders a raw relative path and rejects results that would
// land outside the target.
func (m *run) renderPath(raw string) (string, error) {
	rendered, err := render.Render(raw, m.opts.Context)
	if err != nil {
		return "", err
	}
	rendered = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rendered)))
	if rendered == "" || rendered == "." || !filepath.IsLocal(filepath.FromSlash(rendered)) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"path %q renders to %q, which is outside the target directory", raw, rendered)
	}
	return rendered, nil
}

func (m *run) makeDir(raw, rendered string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %q", raw)
	}
	target := filepath.Join(m.opts.TargetDir, filepath.FromSlash(rendered))
	if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %q", rendered)
	}
	return nil
}

func (m *run) writeFile(path, raw, rendered string, d fs.DirEntry) error {
	if prev, ok := m.written[rendered]; ok {
		return errors.Newf(errors.ErrCollision,
			"template paths %q and %q both render to %q", prev, raw, rendered).
			WithDetail("first", prev).
			WithDetail("second", raw).
			WithDetail("target", rendered)
	}
	m.written[rendered] = raw

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot read template file %q", raw)
	}

	// Files opted out of templating, and binary content, copy through
	// untouched; their paths still render.
	if !m.rawCopy.Match(raw) && utf8.Valid(content) {
		renderedContent, err := render.Render(string(content), m.opts.Context)
		if err != nil {
			return err
		}
		content = []byte(renderedContent)
	}

	target := filepath.Join(m.opts.TargetDir, filepath.FromSlash(rendered))
	outcome := types.OutcomeCreated
	if _, err := os.Stat(target); err == nil {
		if m.opts.Mode == types.MergeAppend {
			m.record(raw, rendered, types.OutcomeSkipped)
			return nil
		}
		outcome = types.OutcomeOverwritten
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %q", rendered)
	}

	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %q", raw)
	}
	if err := writeFileAtomic(target, content, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %q", rendered)
	}

	m.record(raw, rendered, outcome)
	return nil
}

func (m *run) record(raw, rendered string, outcome types.FileOutcome) {
	file := types.MaterializedFile{RawPath: raw, Path: rendered, Outcome: outcome}
	m.files = append(m.files, file)
	m.logger.Debug().
		Str("path", rendered).
		Str("outcome", string(outcome)).
		Msg("File processed")
	if m.opts.OnProgress != nil {
		m.opts.OnProgress(file)
	}
}
