// Package scope binds named fixture trees into a test's lifecycle.
//
// A Scope is created per test (or subtest) and registers named, lazily
// created fixture trees. First access to a name allocates a temporary
// root and seeds it; a cleanup hook registered with the testing package
// removes every root the scope owns once the test finishes. Scopes nest:
// an inner scope can reuse an enclosing scope's same-named tree instead
// of creating its own, in which case only the owning scope deletes it.
package scope

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fixtree/pkg/fixtree"
	"github.com/arthur-debert/fixtree/pkg/logging"
)

// Scope holds the fixture tree registrations of one test scope.
type Scope struct {
	tb       testing.TB
	parent   *Scope
	regs     map[string]*registration
	treeOpts []fixtree.Option
	logger   zerolog.Logger
}

// registration is the per-name state cell: the memoized tree once
// resolved, and the temporary root this scope owns, if it created one.
type registration struct {
	name        string
	data        fixtree.Node
	mergeParent bool
	eager       bool
	tree        *fixtree.Tree
	ownedRoot   string
}

// Option configures a Scope at construction time
type Option func(*Scope)

// WithParent chains this scope to an enclosing one. Names not registered
// here resolve against the parent, and registrations made with
// MergeParent reuse the parent's tree of the same name.
func WithParent(parent *Scope) Option {
	return func(s *Scope) {
		s.parent = parent
	}
}

// WithTreeOptions passes options through to the trees this scope creates.
func WithTreeOptions(opts ...fixtree.Option) Option {
	return func(s *Scope) {
		s.treeOpts = opts
	}
}

// New creates a Scope bound to tb. Teardown of all owned temporary roots
// is registered with tb.Cleanup and runs when the test completes, whether
// it passes or fails.
func New(tb testing.TB, opts ...Option) *Scope {
	s := &Scope{
		tb:     tb,
		regs:   make(map[string]*registration),
		logger: logging.GetLogger("scope"),
	}
	for _, opt := range opts {
		opt(s)
	}
	tb.Cleanup(s.teardown)
	return s
}

// RegisterOption configures one fixture tree registration
type RegisterOption func(*registration)

// WithData seeds the tree with data on first access.
func WithData(data fixtree.Node) RegisterOption {
	return func(r *registration) {
		r.data = data
	}
}

// MergeParent makes first access reuse the parent scope's same-named
// tree instead of creating a fresh temporary root. The parent scope
// keeps ownership, so only its teardown removes the shared root.
func MergeParent() RegisterOption {
	return func(r *registration) {
		r.mergeParent = true
	}
}

// Eager forces evaluation at registration time, so seed data is merged
// even if the test body never accesses the name.
func Eager() RegisterOption {
	return func(r *registration) {
		r.eager = true
	}
}

// Register declares a named fixture tree in this scope. The tree itself
// is not created until the first Tree(name) call, unless Eager is given.
// Registering a name twice in one scope replaces the earlier, unresolved
// registration.
func (s *Scope) Register(name string, opts ...RegisterOption) {
	s.tb.Helper()

	reg := &registration{name: name}
	for _, opt := range opts {
		opt(reg)
	}
	s.regs[name] = reg

	if reg.eager {
		s.Tree(name)
	}
}

// Tree returns the fixture tree registered under name, creating it on
// first access. The result is memoized for the lifetime of the scope.
// Names not registered in this scope resolve against the parent scope.
// Failures to create or seed the tree fail the test immediately.
func (s *Scope) Tree(name string) *fixtree.Tree {
	s.tb.Helper()

	reg, ok := s.regs[name]
	if !ok {
		if s.parent != nil {
			return s.parent.Tree(name)
		}
		s.tb.Fatalf("no fixture tree registered under %q", name)
		return nil
	}

	if reg.tree != nil {
		return reg.tree
	}

	if reg.mergeParent && s.parent != nil && s.parent.defines(name) {
		reg.tree = s.parent.Tree(name)
		s.logger.Trace().Str("name", name).Msg("reusing parent scope fixture tree")
	} else {
		root, tree, err := fixtree.TempTree(s.treeOpts...)
		if err != nil {
			s.tb.Fatalf("creating fixture tree %q: %v", name, err)
		}
		reg.tree = tree
		reg.ownedRoot = root
		s.logger.Trace().Str("name", name).Str("root", root).Msg("created fixture tree")
	}

	if reg.data != nil {
		if err := reg.tree.Merge(reg.data); err != nil {
			s.tb.Fatalf("seeding fixture tree %q: %v", name, err)
		}
	}

	return reg.tree
}

// defines reports whether name is registered in this scope or any
// enclosing one.
func (s *Scope) defines(name string) bool {
	if _, ok := s.regs[name]; ok {
		return true
	}
	if s.parent != nil {
		return s.parent.defines(name)
	}
	return false
}

// teardown removes every temporary root this scope owns and clears the
// records so an enclosing scope never double-deletes a root it does not
// own. Unevaluated and parent-reusing registrations are no-ops.
func (s *Scope) teardown() {
	for _, reg := range s.regs {
		if reg.ownedRoot == "" {
			continue
		}
		if err := os.RemoveAll(reg.ownedRoot); err != nil {
			s.logger.Warn().Err(err).Str("name", reg.name).Str("root", reg.ownedRoot).Msg("failed to remove fixture root")
		}
		reg.ownedRoot = ""
		reg.tree = nil
	}
}
