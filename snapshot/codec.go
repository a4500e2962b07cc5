package snapshot

import (
	"github.com/CraigFe/tezos/libs/bincodec"
	"github.com/CraigFe/tezos/types"
)

// Command tags, single ASCII bytes on the wire. Unknown tags are a fatal
// decoding error.
const (
	tagRoot  = 'r'
	tagNode  = 'd'
	tagBlob  = 'b'
	tagProot = 'p'
	tagLoot  = 'l'
	tagEnd   = 'e'
)

// commandRoot closes the tree section: the block header the context is
// attached to, the commit metadata, and the caboose block data.
type commandRoot struct {
	Header  *types.BlockHeader
	Info    *types.CommitInfo
	Parents []types.CommitHash
	Data    *types.BlockData
}

// commandNode is one interior tree node, children sorted ascending by name.
type commandNode struct {
	Children []ChildEntry
}

// commandBlob is one leaf payload.
type commandBlob struct {
	Data []byte
}

// commandProot is one pruned block of the history section.
type commandProot struct {
	Block *types.PrunedBlock
}

// commandLoot is one protocol activation record.
type commandLoot struct {
	Data *types.ProtocolData
}

// commandEnd is the end marker.
type commandEnd struct{}

func encodeRoot(c commandRoot) ([]byte, error) {
	b := []byte{tagRoot}
	header, err := c.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b = bincodec.AppendBytes(b, header)
	info, err := c.Info.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b = bincodec.AppendBytes(b, info)
	b = bincodec.AppendUint32(b, uint32(len(c.Parents)))
	for _, p := range c.Parents {
		b = bincodec.AppendBytes(b, p)
	}
	data, err := c.Data.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b = bincodec.AppendBytes(b, data)
	return b, nil
}

func encodeNode(children []ChildEntry) []byte {
	b := []byte{tagNode}
	b = bincodec.AppendUint32(b, uint32(len(children)))
	for _, c := range children {
		b = bincodec.AppendString(b, c.Name)
		b = bincodec.AppendBytes(b, c.Hash)
	}
	return b
}

func encodeBlob(data []byte) []byte {
	b := []byte{tagBlob}
	return bincodec.AppendBytes(b, data)
}

func encodeProot(block *types.PrunedBlock) ([]byte, error) {
	data, err := block.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := []byte{tagProot}
	return bincodec.AppendBytes(b, data), nil
}

func encodeLoot(pd *types.ProtocolData) ([]byte, error) {
	data, err := pd.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b := []byte{tagLoot}
	return bincodec.AppendBytes(b, data), nil
}

func encodeEnd() []byte {
	return []byte{tagEnd}
}

// decodeCommand parses one frame payload. Any structural problem in the
// bytes maps to ErrInconsistentSnapshotFile.
func decodeCommand(payload []byte) (interface{}, error) {
	if len(payload) == 0 {
		return nil, types.ErrInconsistentSnapshotFile
	}
	r := bincodec.NewReader(payload[1:])
	switch payload[0] {
	case tagRoot:
		cmd, err := decodeRoot(r)
		if err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		return cmd, nil
	case tagNode:
		cmd, err := decodeNode(r)
		if err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		return cmd, nil
	case tagBlob:
		data, err := r.Bytes()
		if err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		return commandBlob{Data: data}, nil
	case tagProot:
		data, err := r.Bytes()
		if err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		block := &types.PrunedBlock{}
		if err := block.UnmarshalBinary(data); err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		return commandProot{Block: block}, nil
	case tagLoot:
		data, err := r.Bytes()
		if err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		pd := &types.ProtocolData{}
		if err := pd.UnmarshalBinary(data); err != nil {
			return nil, types.ErrInconsistentSnapshotFile
		}
		return commandLoot{Data: pd}, nil
	case tagEnd:
		return commandEnd{}, nil
	}
	return nil, types.ErrInconsistentSnapshotFile
}

func decodeRoot(r *bincodec.Reader) (commandRoot, error) {
	var cmd commandRoot
	headerBytes, err := r.Bytes()
	if err != nil {
		return cmd, err
	}
	cmd.Header = &types.BlockHeader{}
	if err := cmd.Header.UnmarshalBinary(headerBytes); err != nil {
		return cmd, err
	}
	infoBytes, err := r.Bytes()
	if err != nil {
		return cmd, err
	}
	cmd.Info = &types.CommitInfo{}
	if err := cmd.Info.UnmarshalBinary(infoBytes); err != nil {
		return cmd, err
	}
	n, err := r.Uint32()
	if err != nil {
		return cmd, err
	}
	cmd.Parents = make([]types.CommitHash, 0, n)
	for i := uint32(0); i < n; i++ {
		p, err := r.Bytes()
		if err != nil {
			return cmd, err
		}
		cmd.Parents = append(cmd.Parents, types.CommitHash(p))
	}
	dataBytes, err := r.Bytes()
	if err != nil {
		return cmd, err
	}
	cmd.Data = &types.BlockData{}
	if err := cmd.Data.UnmarshalBinary(dataBytes); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func decodeNode(r *bincodec.Reader) (commandNode, error) {
	var cmd commandNode
	n, err := r.Uint32()
	if err != nil {
		return cmd, err
	}
	cmd.Children = make([]ChildEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		name, err := r.String()
		if err != nil {
			return cmd, err
		}
		hash, err := r.Bytes()
		if err != nil {
			return cmd, err
		}
		cmd.Children = append(cmd.Children, ChildEntry{Name: name, Hash: hash})
	}
	return cmd, nil
}
