package fixtree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/fixtree"
	"github.com/arthur-debert/fixtree/pkg/testutil"
)

func TestTree_MergeLeaf(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	err := tree.Merge(fixtree.File("some content"))
	require.NoError(t, err)

	testutil.AssertFileContent(t, tree.Path(), "some content")
}

func TestTree_MergeLeafBytes(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	payload := []byte{0x00, 0xff, 0x10}
	err := tree.Merge(fixtree.Bytes(payload))
	require.NoError(t, err)

	got, err := os.ReadFile(tree.Path())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestTree_MergeNested(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	err := tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"a": fixtree.File("x"),
		"b": fixtree.Dir(map[string]fixtree.Node{
			"c": fixtree.File("y"),
		}),
	}))
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "a"), "x")
	assert.True(t, testutil.DirExists(t, filepath.Join(tree.Path(), "b")))
	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "b", "c"), "y")
}

func TestTree_MergeIsAdditive(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"one": fixtree.File("two"),
	})))
	require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"eight": fixtree.File("nine"),
	})))

	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "one"), "two")
	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "eight"), "nine")
}

func TestTree_MergeReplacesOnTypeMismatch(t *testing.T) {
	t.Run("leaf over directory", func(t *testing.T) {
		dir := t.TempDir()
		tree := fixtree.New(filepath.Join(dir, "fixture"))

		require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
			"sub": fixtree.Dir(map[string]fixtree.Node{
				"deep": fixtree.File("buried"),
			}),
		})))
		require.NoError(t, tree.Merge(fixtree.File("flat")))

		testutil.AssertFileContent(t, tree.Path(), "flat")
	})

	t.Run("directory over file", func(t *testing.T) {
		dir := t.TempDir()
		tree := fixtree.New(filepath.Join(dir, "fixture"))

		require.NoError(t, tree.Merge(fixtree.File("flat")))
		require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
			"sub": fixtree.File("nested"),
		})))

		assert.True(t, testutil.DirExists(t, tree.Path()))
		testutil.AssertFileContent(t, filepath.Join(tree.Path(), "sub"), "nested")
	})
}

func TestTree_Replace(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"one": fixtree.File("two"),
	})))
	require.NoError(t, tree.Replace(fixtree.Dir(map[string]fixtree.Node{
		"ten": fixtree.File("eleven"),
	})))

	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "ten"), "eleven")
	testutil.AssertNoFile(t, filepath.Join(tree.Path(), "one"))
}

func TestTree_DeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	// Nothing was ever created under the path
	require.NoError(t, tree.Delete())
	require.NoError(t, tree.Delete())
	testutil.AssertNoFile(t, tree.Path())

	require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"one": fixtree.File("two"),
	})))
	require.NoError(t, tree.Delete())
	testutil.AssertNoFile(t, tree.Path())
}

func TestTree_Join(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	joined := tree.Join("five/six")
	stepped := tree.Join("five").Join("six")

	assert.Equal(t, joined.Path(), stepped.Path())
	assert.Equal(t, filepath.Join(tree.Path(), "five", "six"), joined.Path())

	// Join is pure: nothing was written
	testutil.AssertNoFile(t, tree.Path())
	testutil.AssertNoFile(t, joined.Path())
}

func TestTree_JoinSharesFilesystem(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	sub := tree.Join("nested")
	require.NoError(t, sub.Merge(fixtree.File("below")))

	testutil.AssertFileContent(t, filepath.Join(tree.Path(), "nested"), "below")
}

func TestTree_MergeInvalidNode(t *testing.T) {
	dir := t.TempDir()
	tree := fixtree.New(filepath.Join(dir, "fixture"))

	err := tree.Merge(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_NODE")
}

func TestTree_WithTestFS(t *testing.T) {
	tree := fixtree.New("/fixture", fixtree.WithFS(testutil.NewTestFS()))

	require.NoError(t, tree.Merge(fixtree.Dir(map[string]fixtree.Node{
		"one": fixtree.File("two"),
	})))

	// The in-memory tree never touches the real filesystem
	_, err := os.Stat("/fixture")
	assert.True(t, os.IsNotExist(err))
}
