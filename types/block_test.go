package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CraigFe/tezos/types"
)

func TestBlockHeader(t *testing.T) {
	t.Run("hash is stable and depends on the context hash", testHeaderHash)
	t.Run("predecessor linkage survives a round trip", testHeaderLinkage)
}

func TestHistoryMode(t *testing.T) {
	t.Run("names round trip", testHistoryModeNames)
	t.Run("unknown names are rejected", testHistoryModeUnknown)
}

func TestMetadata(t *testing.T) {
	t.Run("metadata round trips", testMetadataRoundTrip)
	t.Run("unknown mode byte fails decoding", testMetadataBadMode)
}

func testHeaderHash(t *testing.T) {
	header := &types.BlockHeader{
		Level:       7,
		Proto:       1,
		Predecessor: types.HashBytes([]byte("pred")),
		Timestamp:   1600000007,
		Fitness:     [][]byte{{0x01}},
		ContextHash: types.HashBytes([]byte("ctx")),
	}
	assert.True(t, header.Hash().Equal(header.Hash()))

	changed := *header
	changed.ContextHash = types.HashBytes([]byte("other"))
	assert.False(t, header.Hash().Equal(changed.Hash()))
}

func testHeaderLinkage(t *testing.T) {
	genesis := &types.BlockHeader{Level: 0, Timestamp: 1500000000}
	next := &types.BlockHeader{
		Level:       1,
		Predecessor: genesis.Hash(),
		Timestamp:   1500000001,
		Data:        []byte("priority"),
	}
	encoded, err := next.MarshalBinary()
	require.NoError(t, err)

	decoded := &types.BlockHeader{}
	require.NoError(t, decoded.UnmarshalBinary(encoded))
	assert.True(t, decoded.Predecessor.Equal(genesis.Hash()))
	assert.True(t, decoded.Hash().Equal(next.Hash()))
}

func testHistoryModeNames(t *testing.T) {
	for _, mode := range []types.HistoryMode{
		types.HistoryModeFull,
		types.HistoryModeRolling,
		types.HistoryModeArchive,
	} {
		parsed, err := types.HistoryModeFromString(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}

func testHistoryModeUnknown(t *testing.T) {
	_, err := types.HistoryModeFromString("bonanza")
	require.Error(t, err)
	assert.Equal(t, "unspecified", types.HistoryModeUnspecified.String())
}

func testMetadataRoundTrip(t *testing.T) {
	in := types.Metadata{Version: types.SnapshotVersion, Mode: types.HistoryModeRolling}
	encoded, err := in.MarshalBinary()
	require.NoError(t, err)

	out := types.Metadata{}
	require.NoError(t, out.UnmarshalBinary(encoded))
	assert.Equal(t, in, out)

	// the unspecified mode has no wire form
	_, err = types.Metadata{Version: types.SnapshotVersion}.MarshalBinary()
	require.Error(t, err)
}

func testMetadataBadMode(t *testing.T) {
	in := types.Metadata{Version: types.SnapshotVersion, Mode: types.HistoryModeFull}
	encoded, err := in.MarshalBinary()
	require.NoError(t, err)
	encoded[len(encoded)-1] = 0x7f

	out := types.Metadata{}
	require.Error(t, out.UnmarshalBinary(encoded))
}

func TestErrors(t *testing.T) {
	err := types.InvalidSnapshotVersionError{Got: "tezos-snapshot-0.9.0", Expected: types.SnapshotVersion}
	assert.Equal(t, `invalid snapshot version "tezos-snapshot-0.9.0", expected "tezos-snapshot-1.0.0"`, err.Error())

	bad := types.BadHashError{Kind: "context", Got: types.Hash{0x01}, Expected: types.Hash{0x02}}
	assert.Equal(t, "bad context hash, got 01, expected 02", bad.Error())
}
