package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CraigFe/tezos/logging"
	"github.com/CraigFe/tezos/snapshot"
	"github.com/CraigFe/tezos/storage"
	"github.com/CraigFe/tezos/types"
)

func TestStore(t *testing.T) {
	t.Run("trees are content addressed and listable", testStoreTrees)
	t.Run("sub-tree resolves multi step paths", testStoreSubTree)
	t.Run("node referencing an unknown hash is rejected", testStoreUnknownHash)
	t.Run("failed batches leave no trace", testStoreBatchRollback)
	t.Run("commit round trips through get context", testStoreCommit)
	t.Run("commit rejects a header with the wrong context hash", testStoreCommitMismatch)
	t.Run("level db backend opens on disk", testStoreLevelDB)
	t.Run("config validation", testStoreConfig)
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(logging.NewTestLogger(), storage.NewTestConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// install builds {dir: {a: "va", z: "vz"}, leaf: "content"} and returns the
// root tree, presenting the directory entries in the unsorted order z, a.
func install(t *testing.T, store *storage.Store) (snapshot.Tree, types.Hash) {
	t.Helper()
	ctx := context.Background()
	var root snapshot.Tree
	err := store.Batch(ctx, func(b snapshot.Batch) error {
		va, err := b.AddBlob(ctx, []byte("va"))
		if err != nil {
			return err
		}
		vaHash, _ := va.Hash(ctx)
		vz, err := b.AddBlob(ctx, []byte("vz"))
		if err != nil {
			return err
		}
		vzHash, _ := vz.Hash(ctx)
		dir, err := b.AddNode(ctx, []snapshot.ChildEntry{
			{Name: "z", Hash: vzHash},
			{Name: "a", Hash: vaHash},
		})
		if err != nil {
			return err
		}
		dirHash, _ := dir.Hash(ctx)
		leaf, err := b.AddBlob(ctx, []byte("content"))
		if err != nil {
			return err
		}
		leafHash, _ := leaf.Hash(ctx)
		root, err = b.AddNode(ctx, []snapshot.ChildEntry{
			{Name: "dir", Hash: dirHash},
			{Name: "leaf", Hash: leafHash},
		})
		return err
	})
	require.NoError(t, err)
	rootHash, err := root.Hash(ctx)
	require.NoError(t, err)
	return root, rootHash
}

// commit links the root to a fresh header and returns it.
func commit(t *testing.T, store *storage.Store, root snapshot.Tree, rootHash types.Hash) *types.BlockHeader {
	t.Helper()
	ctx := context.Background()
	header := &types.BlockHeader{Level: 1, Timestamp: 1600000001, ContextHash: rootHash}
	info := &types.CommitInfo{Author: "tezos", Message: "test", Date: 1600000001}
	c := store.UpdateContext(store.NewContext(), root)
	committed, err := store.Commit(ctx, info, []types.CommitHash{types.CommitHash(rootHash)}, c, header)
	require.NoError(t, err)
	require.NotNil(t, committed)
	return header
}

func testStoreTrees(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	root, _ := install(t, store)

	children, err := root.List(ctx)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, snapshot.Child{Name: "dir", Kind: snapshot.KindNode}, children[0])
	assert.Equal(t, snapshot.Child{Name: "leaf", Kind: snapshot.KindContents}, children[1])

	// an interior node has no content
	content, err := root.Content(ctx)
	require.NoError(t, err)
	assert.Nil(t, content)

	// entries are canonicalized, the z-first insertion order is gone
	dir, err := root.SubTree(ctx, "dir")
	require.NoError(t, err)
	dirKids, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, dirKids, 2)
	assert.Equal(t, "a", dirKids[0].Name)
	assert.Equal(t, "z", dirKids[1].Name)

	// identical content gets an identical hash
	other := newTestStore(t)
	_, otherHash := install(t, other)
	rootHash, err := root.Hash(ctx)
	require.NoError(t, err)
	assert.True(t, rootHash.Equal(otherHash))

	// the node hash does not depend on presentation order
	dirHash, err := dir.Hash(ctx)
	require.NoError(t, err)
	var reordered snapshot.Tree
	err = store.Batch(ctx, func(b snapshot.Batch) error {
		va, err := b.AddBlob(ctx, []byte("va"))
		if err != nil {
			return err
		}
		vaHash, _ := va.Hash(ctx)
		vz, err := b.AddBlob(ctx, []byte("vz"))
		if err != nil {
			return err
		}
		vzHash, _ := vz.Hash(ctx)
		reordered, err = b.AddNode(ctx, []snapshot.ChildEntry{
			{Name: "a", Hash: vaHash},
			{Name: "z", Hash: vzHash},
		})
		return err
	})
	require.NoError(t, err)
	reorderedHash, err := reordered.Hash(ctx)
	require.NoError(t, err)
	assert.True(t, reorderedHash.Equal(dirHash))
}

func testStoreSubTree(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	root, _ := install(t, store)

	leaf, err := root.SubTree(ctx, "dir", "a")
	require.NoError(t, err)
	require.NotNil(t, leaf)
	content, err := leaf.Content(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), content)

	missing, err := root.SubTree(ctx, "dir", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// descending through a leaf resolves nothing
	missing, err = root.SubTree(ctx, "leaf", "below")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testStoreUnknownHash(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	err := store.Batch(ctx, func(b snapshot.Batch) error {
		tree, err := b.AddNode(ctx, []snapshot.ChildEntry{
			{Name: "k", Hash: types.HashBytes([]byte("never installed"))},
		})
		require.NoError(t, err)
		assert.Nil(t, tree)

		// duplicate steps within one node are forbidden
		blob, err := b.AddBlob(ctx, []byte("v"))
		require.NoError(t, err)
		blobHash, _ := blob.Hash(ctx)
		_, err = b.AddNode(ctx, []snapshot.ChildEntry{
			{Name: "k", Hash: blobHash},
			{Name: "k", Hash: blobHash},
		})
		require.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}

func testStoreBatchRollback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	var blobHash types.Hash
	err := store.Batch(ctx, func(b snapshot.Batch) error {
		blob, err := b.AddBlob(ctx, []byte("doomed"))
		require.NoError(t, err)
		blobHash, _ = blob.Hash(ctx)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// the staged blob never reached the database
	err = store.Batch(ctx, func(b snapshot.Batch) error {
		tree, err := b.AddNode(ctx, []snapshot.ChildEntry{{Name: "k", Hash: blobHash}})
		require.NoError(t, err)
		assert.Nil(t, tree)
		return nil
	})
	require.NoError(t, err)
}

func testStoreCommit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	root, rootHash := install(t, store)
	header := commit(t, store, root, rootHash)

	sctx, err := store.GetContext(ctx, header)
	require.NoError(t, err)
	require.NotNil(t, sctx)
	gotHash, err := sctx.Tree().Hash(ctx)
	require.NoError(t, err)
	assert.True(t, gotHash.Equal(rootHash))
	require.NotNil(t, sctx.Info())
	assert.Equal(t, "tezos", sctx.Info().Author)
	require.Len(t, sctx.Parents(), 1)

	// unknown headers have no context
	missing, err := store.GetContext(ctx, &types.BlockHeader{Level: 99})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testStoreCommitMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	root, _ := install(t, store)

	header := &types.BlockHeader{Level: 1, ContextHash: types.HashBytes([]byte("wrong"))}
	c := store.UpdateContext(store.NewContext(), root)
	committed, err := store.Commit(ctx, &types.CommitInfo{}, nil, c, header)
	require.NoError(t, err)
	assert.Nil(t, committed)

	// a context with no root cannot be committed either
	committed, err = store.Commit(ctx, &types.CommitInfo{}, nil, store.NewContext(), header)
	require.NoError(t, err)
	assert.Nil(t, committed)
}

func testStoreLevelDB(t *testing.T) {
	cfg := storage.NewDefaultConfig()
	cfg.DBPath = t.TempDir()
	store, err := storage.New(logging.NewTestLogger(), cfg)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	root, rootHash := install(t, store)
	header := commit(t, store, root, rootHash)

	sctx, err := store.GetContext(ctx, header)
	require.NoError(t, err)
	require.NotNil(t, sctx)
}

func testStoreConfig(t *testing.T) {
	cfg := storage.NewDefaultConfig()
	_, err := storage.New(logging.NewTestLogger(), cfg)
	require.Error(t, err, "GOLevelDB without a path must be rejected")

	cfg.Storage = "bogus"
	_, err = storage.New(logging.NewTestLogger(), cfg)
	require.Error(t, err)
}
