package snapshot_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CraigFe/tezos/logging"
	"github.com/CraigFe/tezos/snapshot"
	"github.com/CraigFe/tezos/storage"
	"github.com/CraigFe/tezos/types"
)

type testEngine struct {
	*snapshot.Engine

	ctx   context.Context
	store *storage.Store
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	log := logging.NewTestLogger()
	store, err := storage.New(log, storage.NewTestConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return &testEngine{
		Engine: snapshot.New(log, snapshot.NewTestConfig(), store),
		ctx:    context.Background(),
		store:  store,
	}
}

// testTree describes a source tree to install in a store.
type testTree struct {
	blob []byte
	kids []testKid
}

type testKid struct {
	name string
	node *testTree
}

func tBlob(data string) *testTree {
	return &testTree{blob: []byte(data)}
}

func tNode(kids ...testKid) *testTree {
	return &testTree{kids: kids}
}

func tKid(name string, node *testTree) testKid {
	return testKid{name: name, node: node}
}

func installTree(ctx context.Context, b snapshot.Batch, n *testTree) (snapshot.Tree, error) {
	if n.blob != nil {
		return b.AddBlob(ctx, n.blob)
	}
	entries := make([]snapshot.ChildEntry, 0, len(n.kids))
	for _, kid := range n.kids {
		child, err := installTree(ctx, b, kid.node)
		if err != nil {
			return nil, err
		}
		hash, err := child.Hash(ctx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, snapshot.ChildEntry{Name: kid.name, Hash: hash})
	}
	return b.AddNode(ctx, entries)
}

// commitTree installs the tree and commits it under a fresh header at the
// given level, returning the header and the root hash.
func commitTree(t *testing.T, eng *testEngine, root *testTree, level int64) (*types.BlockHeader, types.Hash) {
	t.Helper()
	header := &types.BlockHeader{
		Level:     level,
		Proto:     1,
		Timestamp: 1600000000 + level,
		Fitness:   [][]byte{{0x01}},
	}
	rootHash := commitTreeAt(t, eng, root, header)
	return header, rootHash
}

// commitTreeAt installs the tree and commits it under the given header,
// pointing the header's context hash at the new root.
func commitTreeAt(t *testing.T, eng *testEngine, root *testTree, header *types.BlockHeader) types.Hash {
	t.Helper()
	var rootTree snapshot.Tree
	err := eng.store.Batch(eng.ctx, func(b snapshot.Batch) error {
		tr, err := installTree(eng.ctx, b, root)
		rootTree = tr
		return err
	})
	require.NoError(t, err)
	rootHash, err := rootTree.Hash(eng.ctx)
	require.NoError(t, err)

	header.ContextHash = rootHash
	info := &types.CommitInfo{Author: "tezos", Message: "snapshot test", Date: header.Timestamp}
	c := eng.store.UpdateContext(eng.store.NewContext(), rootTree)
	committed, err := eng.store.Commit(eng.ctx, info, []types.CommitHash{types.CommitHash(rootHash)}, c, header)
	require.NoError(t, err)
	require.NotNil(t, committed)
	return rootHash
}

// makeChain builds a predecessor chain of n+1 headers, genesis at index 0.
func makeChain(t *testing.T, n int) []*types.BlockHeader {
	t.Helper()
	headers := make([]*types.BlockHeader, n+1)
	headers[0] = &types.BlockHeader{Level: 0, Timestamp: 1500000000}
	for i := 1; i <= n; i++ {
		headers[i] = &types.BlockHeader{
			Level:       int64(i),
			Predecessor: headers[i-1].Hash(),
			Timestamp:   1500000000 + int64(i),
		}
	}
	return headers
}

// chainIterator walks the headers chain backwards, serving protocol
// activations keyed by level.
func chainIterator(headers []*types.BlockHeader, protos map[int64]*types.ProtocolData) snapshot.PrunedIterator {
	byHash := make(map[string]int, len(headers))
	for i, h := range headers {
		byHash[h.Hash().Key()] = i
	}
	return func(_ context.Context, header *types.BlockHeader) (*types.PrunedBlock, *types.ProtocolData, error) {
		i := byHash[header.Hash().Key()]
		pdata := protos[int64(i)]
		if i == 0 {
			return nil, pdata, nil
		}
		return &types.PrunedBlock{Header: headers[i-1]}, pdata, nil
	}
}

// noHistory is an iterator for a chain with no predecessors.
func noHistory(_ context.Context, _ *types.BlockHeader) (*types.PrunedBlock, *types.ProtocolData, error) {
	return nil, nil, nil
}

// The helpers below re-parse produced snapshots straight from the wire
// format, independent of the engine's own codec.

func parseFrames(t *testing.T, data []byte) [][]byte {
	t.Helper()
	frames := [][]byte{}
	for len(data) > 0 {
		require.GreaterOrEqual(t, len(data), 8, "dangling frame header")
		length := binary.BigEndian.Uint64(data[:8])
		data = data[8:]
		require.GreaterOrEqual(t, uint64(len(data)), length, "truncated frame payload")
		frames = append(frames, data[:length])
		data = data[length:]
	}
	return frames
}

// frameTags returns the command tag of every frame after the metadata one.
func frameTags(t *testing.T, frames [][]byte) []byte {
	t.Helper()
	tags := make([]byte, 0, len(frames)-1)
	for _, f := range frames[1:] {
		require.NotEmpty(t, f)
		tags = append(tags, f[0])
	}
	return tags
}

func parseNodeFrame(t *testing.T, frame []byte) []snapshot.ChildEntry {
	t.Helper()
	require.Equal(t, byte('d'), frame[0])
	b := frame[1:]
	count := binary.BigEndian.Uint32(b[:4])
	b = b[4:]
	entries := make([]snapshot.ChildEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		nameLen := binary.BigEndian.Uint32(b[:4])
		name := string(b[4 : 4+nameLen])
		b = b[4+nameLen:]
		hashLen := binary.BigEndian.Uint32(b[:4])
		hash := types.Hash(b[4 : 4+hashLen])
		b = b[4+hashLen:]
		entries = append(entries, snapshot.ChildEntry{Name: name, Hash: hash})
	}
	return entries
}

func parseBlobFrame(t *testing.T, frame []byte) []byte {
	t.Helper()
	require.Equal(t, byte('b'), frame[0])
	length := binary.BigEndian.Uint32(frame[1:5])
	return frame[5 : 5+length]
}

// buildFrame wraps a payload with the outer length prefix.
func buildFrame(payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload))
	binary.BigEndian.PutUint64(out, uint64(len(payload)))
	return append(out, payload...)
}

// buildMetadataFrame assembles a metadata frame for hand-crafted streams.
func buildMetadataFrame(version string, mode byte) []byte {
	payload := make([]byte, 4, 5+len(version))
	binary.BigEndian.PutUint32(payload, uint32(len(version)))
	payload = append(payload, version...)
	payload = append(payload, mode)
	return buildFrame(payload)
}

// buildNodeFrame assembles a node command frame for hand-crafted streams.
func buildNodeFrame(entries []snapshot.ChildEntry) []byte {
	payload := []byte{'d'}
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(entries)))
	for _, e := range entries {
		payload = binary.BigEndian.AppendUint32(payload, uint32(len(e.Name)))
		payload = append(payload, e.Name...)
		payload = binary.BigEndian.AppendUint32(payload, uint32(len(e.Hash)))
		payload = append(payload, e.Hash...)
	}
	return buildFrame(payload)
}

// lootLevel pulls the activation level out of a protocol data frame.
func lootLevel(t *testing.T, frame []byte) int64 {
	t.Helper()
	require.Equal(t, byte('l'), frame[0])
	return int64(binary.BigEndian.Uint64(frame[5:13]))
}
