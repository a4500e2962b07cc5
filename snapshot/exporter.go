package snapshot

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/CraigFe/tezos/logging"
	"github.com/CraigFe/tezos/metrics"
	"github.com/CraigFe/tezos/types"
)

// Export streams the context attached to header, followed by the pruned
// block history walked through iter, onto w. It returns the number of
// bytes produced.
//
// The stream is deterministic for a given store and inputs: children of
// every interior node are emitted sorted ascending by name, and each
// distinct sub-tree hash is emitted exactly once.
func (e *Engine) Export(ctx context.Context, w io.Writer, header *types.BlockHeader, data *types.BlockData, mode types.HistoryMode, iter PrunedIterator) (int64, error) {
	defer metrics.StartSnapshot("export")()
	fw := newFrameWriter(w)

	meta := types.Metadata{Version: types.SnapshotVersion, Mode: mode}
	payload, err := meta.MarshalBinary()
	if err != nil {
		return fw.bytesOut(), err
	}
	if err := fw.writeFrame(payload); err != nil {
		return fw.bytesOut(), err
	}

	sctx, err := e.store.GetContext(ctx, header)
	if err != nil {
		return fw.bytesOut(), err
	}
	if sctx == nil {
		headerBytes, _ := header.MarshalBinary()
		return fw.bytesOut(), types.ContextNotFoundError{Header: headerBytes}
	}

	nodes, blobs, err := e.exportTree(ctx, fw, sctx.Tree())
	if err != nil {
		return fw.bytesOut(), err
	}
	e.log.Debug("context tree exported",
		logging.Int("tree-nodes", nodes),
		logging.Int("blobs", blobs),
		logging.Int64("bytes", fw.bytesOut()),
	)

	payload, err = encodeRoot(commandRoot{
		Header:  header,
		Info:    sctx.Info(),
		Parents: sctx.Parents(),
		Data:    data,
	})
	if err != nil {
		return fw.bytesOut(), err
	}
	if err := fw.writeFrame(payload); err != nil {
		return fw.bytesOut(), err
	}

	protos, err := e.exportHistory(ctx, fw, data.Header, iter)
	if err != nil {
		return fw.bytesOut(), err
	}
	for _, pd := range protos {
		payload, err := encodeLoot(pd)
		if err != nil {
			return fw.bytesOut(), err
		}
		if err := fw.writeFrame(payload); err != nil {
			return fw.bytesOut(), err
		}
	}

	if err := fw.writeFrame(encodeEnd()); err != nil {
		return fw.bytesOut(), err
	}
	if err := fw.flush(); err != nil {
		return fw.bytesOut(), err
	}
	e.log.Info("snapshot exported",
		logging.Int64("block-level", header.Level),
		logging.String("history-mode", mode.String()),
		logging.Int64("bytes", fw.bytesOut()),
	)
	return fw.bytesOut(), nil
}

// exportFrame is one level of the explicit traversal stack.
type exportFrame struct {
	tree     Tree
	children []Child
	entries  []ChildEntry
	next     int
}

// exportTree emits the tree in post-order: every child before the node
// that names it, deduplicated on sub-tree hash.
func (e *Engine) exportTree(ctx context.Context, fw *frameWriter, root Tree) (int, int, error) {
	visited := map[string]struct{}{}
	nodes, blobs := 0, 0
	interval := e.ProgressInterval.Get()
	lastProgress := time.Now()

	open := func(t Tree) (*exportFrame, error) {
		children, err := t.List(ctx)
		if err != nil {
			return nil, err
		}
		// the adapter does not guarantee order, the stream does
		sort.Slice(children, func(i, j int) bool {
			return children[i].Name < children[j].Name
		})
		return &exportFrame{
			tree:     t,
			children: children,
			entries:  make([]ChildEntry, 0, len(children)),
		}, nil
	}

	frame, err := open(root)
	if err != nil {
		return nodes, blobs, err
	}
	stack := []*exportFrame{frame}
	for len(stack) > 0 {
		if interval > 0 && time.Since(lastProgress) >= interval {
			e.log.Info("context export in progress",
				logging.Int("tree-nodes", nodes),
				logging.Int("blobs", blobs),
				logging.Int64("bytes", fw.bytesOut()),
			)
			lastProgress = time.Now()
		}
		f := stack[len(stack)-1]
		if f.next >= len(f.children) {
			if err := fw.writeFrame(encodeNode(f.entries)); err != nil {
				return nodes, blobs, err
			}
			metrics.TreeNodeExportedInc()
			nodes++
			stack = stack[:len(stack)-1]
			continue
		}
		c := f.children[f.next]
		f.next++
		child, err := f.tree.SubTree(ctx, c.Name)
		if err != nil {
			return nodes, blobs, err
		}
		if child == nil {
			return nodes, blobs, errors.Errorf("enumerated child %q has no sub-tree", c.Name)
		}
		h, err := child.Hash(ctx)
		if err != nil {
			return nodes, blobs, err
		}
		f.entries = append(f.entries, ChildEntry{Name: c.Name, Hash: h})
		if _, ok := visited[h.Key()]; ok {
			continue
		}
		visited[h.Key()] = struct{}{}
		if c.Kind == KindContents {
			content, err := child.Content(ctx)
			if err != nil {
				return nodes, blobs, err
			}
			if content == nil {
				return nodes, blobs, errors.Errorf("child %q listed as contents has none", c.Name)
			}
			if err := fw.writeFrame(encodeBlob(content)); err != nil {
				return nodes, blobs, err
			}
			metrics.BlobExportedInc()
			blobs++
			continue
		}
		nf, err := open(child)
		if err != nil {
			return nodes, blobs, err
		}
		stack = append(stack, nf)
	}
	return nodes, blobs, nil
}

// exportHistory walks the predecessor chain backwards from the caboose
// header, emitting one pruned block per step. Protocol activations are
// collected and returned in encounter order for the caller to emit after
// the walk.
func (e *Engine) exportHistory(ctx context.Context, fw *frameWriter, head *types.BlockHeader, iter PrunedIterator) ([]*types.ProtocolData, error) {
	if iter == nil {
		return nil, nil
	}
	var protos []*types.ProtocolData
	current := head
	count := 0
	for {
		pruned, pdata, err := iter(ctx, current)
		if err != nil {
			return nil, err
		}
		if pdata != nil {
			protos = append(protos, pdata)
		}
		if pruned == nil {
			break
		}
		payload, err := encodeProot(pruned)
		if err != nil {
			return nil, err
		}
		if err := fw.writeFrame(payload); err != nil {
			return nil, err
		}
		count++
		current = pruned.Header
	}
	e.log.Debug("block history exported",
		logging.Int("pruned-blocks", count),
		logging.Int("protocol-activations", len(protos)),
	)
	return protos, nil
}
