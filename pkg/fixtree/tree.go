package fixtree

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fixtree/pkg/config"
	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
	"github.com/arthur-debert/fixtree/pkg/logging"
	"github.com/arthur-debert/fixtree/pkg/types"
)

// Tree is a handle pairing a filesystem path with operations to reconcile
// it against a fixture description. The path is immutable for the lifetime
// of the instance; mutation operations act on the filesystem at that path,
// not on the Tree itself.
type Tree struct {
	path   string
	fs     types.FS
	cfg    *config.Config
	logger zerolog.Logger
}

// Option configures a Tree at construction time
type Option func(*Tree)

// WithFS makes the Tree operate through the given filesystem instead of
// the OS filesystem.
func WithFS(fs types.FS) Option {
	return func(t *Tree) {
		t.fs = fs
	}
}

// WithConfig overrides the process-wide configuration for this Tree.
func WithConfig(cfg *config.Config) Option {
	return func(t *Tree) {
		t.cfg = cfg
	}
}

// New creates a Tree rooted at the given path. No filesystem state is
// created or checked; the path need not exist yet.
func New(path string, opts ...Option) *Tree {
	t := &Tree{
		path:   filepath.Clean(path),
		fs:     filesystem.NewOS(),
		logger: logging.GetLogger("fixtree"),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cfg == nil {
		t.cfg = config.Active()
	}
	return t
}

// Path returns the absolute filesystem path backing this Tree.
func (t *Tree) Path() string {
	return t.path
}

// Join returns a new Tree rooted at this Tree's path extended by rel,
// which may contain multiple segments ("a/b/c"). Join has no filesystem
// side effect; the returned Tree shares this Tree's filesystem and
// configuration.
func (t *Tree) Join(rel string) *Tree {
	return &Tree{
		path:   filepath.Join(t.path, rel),
		fs:     t.fs,
		cfg:    t.cfg,
		logger: t.logger,
	}
}

// Merge reconciles the filesystem at the Tree's path with data. A
// directory node ensures a directory exists at the path (replacing a
// conflicting file) and recurses into its entries, leaving existing
// siblings untouched. A file node replaces whatever exists at the path
// with a single file holding its contents, creating parents as needed.
func (t *Tree) Merge(data Node) error {
	t.logger.Debug().Str("path", t.path).Msg("merging fixture data")
	return t.merge(t.path, data)
}

func (t *Tree) merge(path string, data Node) error {
	switch node := data.(type) {
	case dirNode:
		info, err := t.fs.Stat(path)
		if err == nil && !info.IsDir() {
			if err := t.fs.RemoveAll(path); err != nil {
				return errors.Wrapf(err, errors.ErrDelete, "failed to remove %s before creating directory", path)
			}
		}
		if err := t.fs.MkdirAll(path, t.cfg.FilePermissions.Directory); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
		}
		for _, name := range sortedNames(node) {
			if err := t.merge(filepath.Join(path, name), node[name]); err != nil {
				return err
			}
		}
		return nil

	case fileNode:
		if err := t.fs.RemoveAll(path); err != nil {
			return errors.Wrapf(err, errors.ErrDelete, "failed to remove %s before writing file", path)
		}
		if err := t.fs.MkdirAll(filepath.Dir(path), t.cfg.FilePermissions.Directory); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
		}
		if err := t.fs.WriteFile(path, []byte(node), t.cfg.FilePermissions.File); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write file %s", path)
		}
		return nil

	default:
		return errors.Newf(errors.ErrInvalidNode, "unsupported fixture node of type %T at %s", data, path)
	}
}

// Replace deletes everything currently at the Tree's path, then merges
// data onto the now-empty path. No residue from a prior tree survives.
func (t *Tree) Replace(data Node) error {
	t.logger.Debug().Str("path", t.path).Msg("replacing fixture data")
	if err := t.Delete(); err != nil {
		return err
	}
	return t.merge(t.path, data)
}

// Delete removes whatever currently exists at the Tree's path, recursively
// for a directory. Deleting a nonexistent path is a no-op; Delete is
// idempotent.
func (t *Tree) Delete() error {
	t.logger.Debug().Str("path", t.path).Msg("deleting fixture data")
	if err := t.fs.RemoveAll(t.path); err != nil {
		return errors.Wrapf(err, errors.ErrDelete, "failed to delete %s", t.path)
	}
	return nil
}

func sortedNames(entries dirNode) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
