package snapshot

import (
	"context"
	"io"

	"github.com/CraigFe/tezos/logging"
	"github.com/CraigFe/tezos/metrics"
	"github.com/CraigFe/tezos/types"
)

// prunedChunkSize is how many restored pruned blocks accumulate before
// being handed to the persistence callback.
const prunedChunkSize = 5000

// ImportResult is everything reconstructed from a snapshot stream.
type ImportResult struct {
	// Header is the block header the restored context is linked to, as
	// returned by the store commit.
	Header *types.BlockHeader
	// Data is the caboose block carried by the root record.
	Data *types.BlockData
	// Mode is the history mode the snapshot was taken under.
	Mode types.HistoryMode
	// OldestHeader is the header of the last pruned block of the walk,
	// nil when the snapshot carries no history.
	OldestHeader *types.BlockHeader
	// BlockHashes lists the restored block hashes in chronological
	// order, oldest first.
	BlockHashes []types.Hash
	// ProtocolData lists the protocol activations in the order they
	// appear in the stream, newest first.
	ProtocolData []*types.ProtocolData
}

// Import reads a snapshot stream from r and rebuilds it in the engine's
// store. The tree is restored first, inside a scoped write batch; the
// block history follows, handed to storePruned in chunks of up to 5,000
// and checked one by one through validate.
func (e *Engine) Import(ctx context.Context, r io.Reader, storePruned StorePrunedBlocksFn, validate ValidateBlockFn) (*ImportResult, error) {
	defer metrics.StartSnapshot("import")()
	fr := newFrameReader(r)

	meta, err := e.readMetadata(fr)
	if err != nil {
		return nil, err
	}

	header, data, err := e.restoreTree(ctx, fr)
	if err != nil {
		return nil, err
	}
	e.log.Debug("context tree restored",
		logging.Int64("block-level", header.Level),
	)

	res, err := e.restoreHistory(ctx, fr, storePruned, validate)
	if err != nil {
		return nil, err
	}
	res.Header = header
	res.Data = data
	res.Mode = meta.Mode
	e.log.Info("snapshot imported",
		logging.Int64("block-level", header.Level),
		logging.String("history-mode", res.Mode.String()),
		logging.Int("blocks", len(res.BlockHashes)),
		logging.Int("protocol-activations", len(res.ProtocolData)),
	)
	return res, nil
}

// readMetadata consumes the metadata frame and rejects any version other
// than the current one before a single payload byte is touched.
func (e *Engine) readMetadata(fr *frameReader) (*types.Metadata, error) {
	payload, err := fr.nextFrame()
	if err != nil {
		if err == io.EOF {
			return nil, types.ErrMissingSnapshotData
		}
		return nil, err
	}
	meta := &types.Metadata{}
	if err := meta.UnmarshalBinary(payload); err != nil {
		return nil, types.ErrInconsistentSnapshotFile
	}
	if meta.Version != types.SnapshotVersion {
		return nil, types.InvalidSnapshotVersionError{
			Got:      meta.Version,
			Expected: types.SnapshotVersion,
		}
	}
	return meta, nil
}

func (e *Engine) readCommand(fr *frameReader) (interface{}, error) {
	payload, err := fr.nextFrame()
	if err != nil {
		if err == io.EOF {
			return nil, types.ErrMissingSnapshotData
		}
		return nil, err
	}
	return decodeCommand(payload)
}

// restoreTree is the first pass: blob and node commands accumulate in a
// write batch until the root record commits the rebuilt context.
func (e *Engine) restoreTree(ctx context.Context, fr *frameReader) (*types.BlockHeader, *types.BlockData, error) {
	var (
		header *types.BlockHeader
		data   *types.BlockData
	)
	err := e.store.Batch(ctx, func(b Batch) error {
		c := e.store.NewContext()
		for {
			cmd, err := e.readCommand(fr)
			if err != nil {
				return err
			}
			switch cmd := cmd.(type) {
			case commandBlob:
				tree, err := b.AddBlob(ctx, cmd.Data)
				if err != nil {
					return err
				}
				c = e.store.UpdateContext(c, tree)
			case commandNode:
				tree, err := b.AddNode(ctx, cmd.Children)
				if err != nil {
					return err
				}
				if tree == nil {
					return types.ErrRestoreContextFailure
				}
				c = e.store.UpdateContext(c, tree)
			case commandRoot:
				committed, err := e.store.Commit(ctx, cmd.Info, cmd.Parents, c, cmd.Header)
				if err != nil {
					return err
				}
				if committed == nil {
					return types.ErrInconsistentSnapshotData
				}
				header = committed
				data = cmd.Data
				return nil
			default:
				return types.ErrInconsistentSnapshotData
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return header, data, nil
}

// restoreHistory is the second pass: pruned blocks stream in reverse
// chronological order, chunked out to the persistence callback, until the
// end marker.
func (e *Engine) restoreHistory(ctx context.Context, fr *frameReader, storePruned StorePrunedBlocksFn, validate ValidateBlockFn) (*ImportResult, error) {
	var (
		pred   *types.BlockHeader
		hashes []types.Hash
		protos []*types.ProtocolData
		chunk  []PrunedBlockEntry
	)
	flush := func() error {
		handed := chunk
		chunk = nil
		if storePruned == nil {
			return nil
		}
		if err := storePruned(ctx, handed); err != nil {
			return err
		}
		metrics.BlocksRestoredAdd(len(handed))
		return nil
	}
	for {
		cmd, err := e.readCommand(fr)
		if err != nil {
			return nil, err
		}
		switch cmd := cmd.(type) {
		case commandProot:
			block := cmd.Block
			hash := block.Header.Hash()
			if validate != nil {
				if err := validate(pred, hash, block); err != nil {
					return nil, err
				}
			}
			chunk = append(chunk, PrunedBlockEntry{Hash: hash, Block: block})
			hashes = append(hashes, hash)
			pred = block.Header
			if len(chunk) >= prunedChunkSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		case commandLoot:
			if err := flush(); err != nil {
				return nil, err
			}
			protos = append(protos, cmd.Data)
		case commandEnd:
			if len(chunk) > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			// stream order is newest to oldest, flip to chronological
			for i, j := 0, len(hashes)-1; i < j; i, j = i+1, j-1 {
				hashes[i], hashes[j] = hashes[j], hashes[i]
			}
			return &ImportResult{
				OldestHeader: pred,
				BlockHashes:  hashes,
				ProtocolData: protos,
			}, nil
		default:
			return nil, types.ErrInconsistentSnapshotData
		}
	}
}
