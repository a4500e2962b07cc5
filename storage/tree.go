package storage

import (
	"context"
	"fmt"

	"github.com/CraigFe/tezos/libs/bincodec"
	"github.com/CraigFe/tezos/snapshot"
	"github.com/CraigFe/tezos/types"
)

// tree is a handle on one node record. Records are immutable, so the
// handle carries its own bytes and only goes back to the source to
// resolve children.
type tree struct {
	src  nodeSource
	hash types.Hash
	rec  []byte
}

// dirEntry is one decoded child of an interior node record. Records keep
// entries in canonical name order.
type dirEntry struct {
	kind byte
	name string
	hash types.Hash
}

func (t *tree) Hash(_ context.Context) (types.Hash, error) {
	return t.hash, nil
}

func (t *tree) Content(_ context.Context) ([]byte, error) {
	if len(t.rec) == 0 || t.rec[0] != recBlob {
		return nil, nil
	}
	return t.rec[1:], nil
}

func (t *tree) List(_ context.Context) ([]snapshot.Child, error) {
	if len(t.rec) == 0 || t.rec[0] != recDir {
		return nil, nil
	}
	entries, err := decodeDir(t.rec)
	if err != nil {
		return nil, err
	}
	children := make([]snapshot.Child, 0, len(entries))
	for _, e := range entries {
		kind := snapshot.KindContents
		if e.kind == recDir {
			kind = snapshot.KindNode
		}
		children = append(children, snapshot.Child{Name: e.name, Kind: kind})
	}
	return children, nil
}

func (t *tree) SubTree(_ context.Context, key ...string) (snapshot.Tree, error) {
	current := t
	for _, step := range key {
		if len(current.rec) == 0 || current.rec[0] != recDir {
			return nil, nil
		}
		entries, err := decodeDir(current.rec)
		if err != nil {
			return nil, err
		}
		var next *dirEntry
		for i := range entries {
			if entries[i].name == step {
				next = &entries[i]
				break
			}
		}
		if next == nil {
			return nil, nil
		}
		rec, err := t.src.loadNode(next.hash)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("node %s references unknown child %s", current.hash, next.hash)
		}
		current = &tree{src: t.src, hash: next.hash, rec: rec}
	}
	return current, nil
}

// encodeBlobRec builds a leaf record.
func encodeBlobRec(data []byte) []byte {
	rec := make([]byte, 0, len(data)+1)
	rec = append(rec, recBlob)
	return append(rec, data...)
}

// encodeDirRec builds an interior record from resolved entries, preserving
// the order given.
func encodeDirRec(entries []dirEntry) []byte {
	rec := bincodec.AppendUint32([]byte{recDir}, uint32(len(entries)))
	for _, e := range entries {
		rec = bincodec.AppendByte(rec, e.kind)
		rec = bincodec.AppendString(rec, e.name)
		rec = bincodec.AppendBytes(rec, e.hash)
	}
	return rec
}

func decodeDir(rec []byte) ([]dirEntry, error) {
	r := bincodec.NewReader(rec[1:])
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	entries := make([]dirEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		kind, err := r.Byte()
		if err != nil {
			return nil, err
		}
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		hash, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		entries = append(entries, dirEntry{kind: kind, name: name, hash: hash})
	}
	return entries, nil
}
