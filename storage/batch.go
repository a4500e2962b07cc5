package storage

import (
	"context"
	"fmt"
	"sort"

	dbm "github.com/tendermint/tm-db"

	"github.com/CraigFe/tezos/snapshot"
	"github.com/CraigFe/tezos/types"
)

// writeBatch stages node records in memory so that later AddNode calls in
// the same batch can resolve hashes installed earlier, and mirrors every
// record into a tm-db batch for the final write-through.
type writeBatch struct {
	store  *Store
	batch  dbm.Batch
	staged map[string][]byte
}

func (b *writeBatch) loadNode(hash types.Hash) ([]byte, error) {
	if rec, ok := b.staged[hash.Key()]; ok {
		return rec, nil
	}
	return b.store.loadNode(hash)
}

func (b *writeBatch) install(hash types.Hash, rec []byte) error {
	if _, ok := b.staged[hash.Key()]; ok {
		return nil
	}
	if err := b.batch.Set(nodeKey(hash), rec); err != nil {
		return err
	}
	b.staged[hash.Key()] = rec
	return nil
}

// AddBlob installs a leaf and returns its handle.
func (b *writeBatch) AddBlob(_ context.Context, data []byte) (snapshot.Tree, error) {
	rec := encodeBlobRec(data)
	hash := types.HashBytes(rec)
	if err := b.install(hash, rec); err != nil {
		return nil, err
	}
	return &tree{src: b, hash: hash, rec: rec}, nil
}

// AddNode installs an interior node. Every referenced hash must already be
// known to the batch or the store; otherwise nil is returned. Entries are
// canonicalized to name order so the node hash does not depend on the
// order the caller presents them in.
func (b *writeBatch) AddNode(_ context.Context, children []snapshot.ChildEntry) (snapshot.Tree, error) {
	entries := make([]dirEntry, 0, len(children))
	for _, c := range children {
		childRec, err := b.loadNode(c.Hash)
		if err != nil {
			return nil, err
		}
		if childRec == nil {
			return nil, nil
		}
		entries = append(entries, dirEntry{kind: childRec[0], name: c.Name, hash: c.Hash})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].name == entries[i-1].name {
			return nil, fmt.Errorf("duplicate step %q in node", entries[i].name)
		}
	}
	rec := encodeDirRec(entries)
	hash := types.HashBytes(rec)
	if err := b.install(hash, rec); err != nil {
		return nil, err
	}
	return &tree{src: b, hash: hash, rec: rec}, nil
}
