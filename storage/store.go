// Package storage implements a content-addressed Merkle context store on
// top of a tm-db backend. Tree nodes are serialized records keyed by their
// BLAKE3 hash; commits link a block header to a root node.
package storage

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	dbm "github.com/tendermint/tm-db"

	"github.com/CraigFe/tezos/libs/bincodec"
	"github.com/CraigFe/tezos/logging"
	"github.com/CraigFe/tezos/snapshot"
	"github.com/CraigFe/tezos/types"
)

// Node record kinds, first byte of every node record.
const (
	recBlob = 'b'
	recDir  = 'd'
)

var (
	nodeKeyPrefix   = []byte("node/")
	commitKeyPrefix = []byte("commit/")
)

func nodeKey(h types.Hash) []byte {
	return append(append([]byte{}, nodeKeyPrefix...), h...)
}

func commitKey(h types.Hash) []byte {
	return append(append([]byte{}, commitKeyPrefix...), h...)
}

// nodeSource resolves a node record by hash, nil when unknown.
type nodeSource interface {
	loadNode(hash types.Hash) ([]byte, error)
}

// Store is a context store over a tm-db backend. It implements the store
// adapter the snapshot engine runs against.
type Store struct {
	Config

	log *logging.Logger
	db  dbm.DB
}

// New opens a context store with the backend selected by the config.
func New(log *logging.Logger, cfg Config) (*Store, error) {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		log.Error("Failed to open context database", logging.Error(err))
		return nil, err
	}
	return &Store{
		Config: cfg,
		log:    log,
		db:     db,
	}, nil
}

func openDB(cfg Config) (dbm.DB, error) {
	if cfg.Storage == memDB {
		return dbm.NewMemDB(), nil
	}
	adapter, err := dbm.NewGoLevelDBWithOpts(
		dbName, cfg.DBPath,
		&opt.Options{
			Filter:          filter.NewBloomFilter(10),
			BlockCacher:     opt.NoCacher,
			OpenFilesCacher: opt.NoCacher,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize LevelDB adapter: %w", err)
	}
	return adapter, nil
}

func (s *Store) ReloadConf(cfg Config) {
	s.log.Info("reloading configuration")
	if s.log.GetLevel() != cfg.Level.Get() {
		s.log.Info("updating log level",
			logging.String("old", s.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		s.log.SetLevel(cfg.Level.Get())
	}
	s.Config = cfg
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) loadNode(hash types.Hash) ([]byte, error) {
	return s.db.Get(nodeKey(hash))
}

// GetContext returns the context committed for the given block header, or
// nil when the block has none.
func (s *Store) GetContext(_ context.Context, header *types.BlockHeader) (snapshot.Context, error) {
	value, err := s.db.Get(commitKey(header.Hash()))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	rootHash, info, parents, err := decodeCommit(value)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadNode(rootHash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("commit references unknown root node %s", rootHash)
	}
	return &ctxRecord{
		root:    &tree{src: s, hash: rootHash, rec: rec},
		info:    info,
		parents: parents,
	}, nil
}

// NewContext returns an empty context to restore into.
func (s *Store) NewContext() snapshot.Context {
	return &ctxRecord{}
}

// UpdateContext replaces the root tree of a context.
func (s *Store) UpdateContext(c snapshot.Context, root snapshot.Tree) snapshot.Context {
	return &ctxRecord{
		root:    root,
		info:    c.Info(),
		parents: c.Parents(),
	}
}

// Batch runs fn with a write batch. The underlying tm-db batch is closed
// on every exit path and written through only when fn succeeds.
func (s *Store) Batch(_ context.Context, fn func(snapshot.Batch) error) error {
	b := &writeBatch{
		store:  s,
		batch:  s.db.NewBatch(),
		staged: map[string][]byte{},
	}
	defer b.batch.Close()
	if err := fn(b); err != nil {
		return err
	}
	return b.batch.Write()
}

// Commit persists the context and links it to the block header. It returns
// nil when the header's context hash does not match the context root.
func (s *Store) Commit(ctx context.Context, info *types.CommitInfo, parents []types.CommitHash, c snapshot.Context, header *types.BlockHeader) (*types.BlockHeader, error) {
	if c == nil || c.Tree() == nil {
		return nil, nil
	}
	rootHash, err := c.Tree().Hash(ctx)
	if err != nil {
		return nil, err
	}
	if !header.ContextHash.Equal(rootHash) {
		s.log.Debug("context hash mismatch on commit",
			logging.String("header-context-hash", header.ContextHash.String()),
			logging.String("root-hash", rootHash.String()),
		)
		return nil, nil
	}
	record := encodeCommit(rootHash, info, parents)
	if err := s.db.SetSync(commitKey(header.Hash()), record); err != nil {
		return nil, err
	}
	return header, nil
}

// ctxRecord is a (tree, info, parents) triple.
type ctxRecord struct {
	root    snapshot.Tree
	info    *types.CommitInfo
	parents []types.CommitHash
}

func (c *ctxRecord) Tree() snapshot.Tree {
	return c.root
}

func (c *ctxRecord) Info() *types.CommitInfo {
	return c.info
}

func (c *ctxRecord) Parents() []types.CommitHash {
	return c.parents
}

func encodeCommit(rootHash types.Hash, info *types.CommitInfo, parents []types.CommitHash) []byte {
	b := bincodec.AppendBytes(nil, rootHash)
	infoBytes, _ := info.MarshalBinary()
	b = bincodec.AppendBytes(b, infoBytes)
	b = bincodec.AppendUint32(b, uint32(len(parents)))
	for _, p := range parents {
		b = bincodec.AppendBytes(b, p)
	}
	return b
}

func decodeCommit(value []byte) (types.Hash, *types.CommitInfo, []types.CommitHash, error) {
	r := bincodec.NewReader(value)
	rootHash, err := r.Bytes()
	if err != nil {
		return nil, nil, nil, err
	}
	infoBytes, err := r.Bytes()
	if err != nil {
		return nil, nil, nil, err
	}
	info := &types.CommitInfo{}
	if err := info.UnmarshalBinary(infoBytes); err != nil {
		return nil, nil, nil, err
	}
	n, err := r.Uint32()
	if err != nil {
		return nil, nil, nil, err
	}
	parents := make([]types.CommitHash, 0, n)
	for i := uint32(0); i < n; i++ {
		p, err := r.Bytes()
		if err != nil {
			return nil, nil, nil, err
		}
		parents = append(parents, types.CommitHash(p))
	}
	return rootHash, info, parents, nil
}
