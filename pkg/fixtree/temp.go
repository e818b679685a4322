package fixtree

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// TempTree allocates a uniquely-named temporary directory via the host
// OS's temp facility and returns it together with a Tree rooted at the
// configured fixture subdirectory inside it. Nothing below the root is
// created until the Tree is first merged into. The caller owns the root
// and is responsible for removing it.
func TempTree(opts ...Option) (root string, tree *Tree, err error) {
	t := New("", opts...)

	root, err = os.MkdirTemp("", t.cfg.TempPrefix)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrTempCreate, "failed to create temporary fixture root")
	}

	t.path = filepath.Join(root, t.cfg.FixtureDir)
	t.logger.Debug().Str("root", root).Msg("created temporary fixture root")
	return root, t, nil
}

// WithTempTree runs fn with a Tree backed by a fresh temporary root and
// removes the root when fn returns, whether it succeeds or fails. Removal
// is skipped if the root no longer exists by then.
func WithTempTree(fn func(*Tree) error, opts ...Option) error {
	root, tree, err := TempTree(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			return
		}
		if rmErr := os.RemoveAll(root); rmErr != nil {
			tree.logger.Warn().Err(rmErr).Str("root", root).Msg("failed to remove temporary fixture root")
		}
	}()
	return fn(tree)
}
