package snapshot

import (
	"context"

	"github.com/CraigFe/tezos/types"
)

// ChildKind tags a directory entry as holding contents or a subtree.
type ChildKind int

const (
	KindContents ChildKind = iota
	KindNode
)

func (k ChildKind) String() string {
	if k == KindContents {
		return "contents"
	}
	return "node"
}

// Child is a directory entry as enumerated by a tree. The adapter does not
// guarantee any ordering.
type Child struct {
	Name string
	Kind ChildKind
}

// ChildEntry is a directory entry paired with the hash of its target, as
// carried by node commands on the wire.
type ChildEntry struct {
	Name string
	Hash types.Hash
}

// Store abstracts the Merkle context store the engine runs against.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/store_mock.go -package mocks github.com/CraigFe/tezos/snapshot Store,Context,Tree,Batch
type Store interface {
	// GetContext fetches the context attached to a block header, or
	// nil when the block has none.
	GetContext(ctx context.Context, header *types.BlockHeader) (Context, error)
	// NewContext returns an empty context to restore into.
	NewContext() Context
	// UpdateContext replaces the root tree of a context.
	UpdateContext(c Context, root Tree) Context
	// Batch runs fn with a write batch. Resources held by the batch are
	// released on every exit path; the batch is written through only
	// when fn returns nil.
	Batch(ctx context.Context, fn func(Batch) error) error
	// Commit persists a context and links it to a block header. It
	// returns nil when the header does not match the context root.
	Commit(ctx context.Context, info *types.CommitInfo, parents []types.CommitHash, c Context, header *types.BlockHeader) (*types.BlockHeader, error)
}

// Context is a (tree, commit info, parents) triple attached to a block.
type Context interface {
	Tree() Tree
	Info() *types.CommitInfo
	Parents() []types.CommitHash
}

// Tree is a node of the Merkle DAG, either an interior node with named
// children or a leaf holding contents.
type Tree interface {
	// Hash returns the content hash of the tree.
	Hash(ctx context.Context) (types.Hash, error)
	// List enumerates the direct children, in no particular order.
	List(ctx context.Context) ([]Child, error)
	// SubTree resolves a child by path, or nil when absent.
	SubTree(ctx context.Context, key ...string) (Tree, error)
	// Content returns the leaf payload, or nil for an interior node.
	Content(ctx context.Context) ([]byte, error)
}

// Batch is a scoped write batch on the store.
type Batch interface {
	// AddBlob installs a leaf and returns its tree handle.
	AddBlob(ctx context.Context, data []byte) (Tree, error)
	// AddNode installs an interior node from child hashes. It returns
	// nil when any referenced hash is unknown to the batch.
	AddNode(ctx context.Context, children []ChildEntry) (Tree, error)
}

// PrunedIterator walks the predecessor chain for the history phase of an
// export. Given a header it returns the predecessor in pruned form (nil at
// the tail of the chain) and any protocol activation at that step.
type PrunedIterator func(ctx context.Context, header *types.BlockHeader) (*types.PrunedBlock, *types.ProtocolData, error)

// PrunedBlockEntry pairs a pruned block with its block hash, as handed to
// the persistence callback during import.
type PrunedBlockEntry struct {
	Hash  types.Hash
	Block *types.PrunedBlock
}

// StorePrunedBlocksFn persists a chunk of restored pruned blocks in the
// order they are handed in.
type StorePrunedBlocksFn func(ctx context.Context, chunk []PrunedBlockEntry) error

// ValidateBlockFn checks a restored pruned block against the header of its
// immediate successor (nil for the first block seen). An error aborts the
// import.
type ValidateBlockFn func(pred *types.BlockHeader, hash types.Hash, block *types.PrunedBlock) error
