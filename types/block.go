package types

import (
	"github.com/CraigFe/tezos/libs/bincodec"
)

// BlockHeader is the shell header of a block. Its hash is derived from the
// marshaled form and is used for predecessor linkage.
type BlockHeader struct {
	Level          int64
	Proto          uint32
	Predecessor    Hash
	Timestamp      int64
	OperationsHash Hash
	Fitness        [][]byte
	ContextHash    Hash
	Data           []byte
}

// Hash returns the block hash of the header.
func (h *BlockHeader) Hash() Hash {
	data, _ := h.MarshalBinary()
	return HashBytes(data)
}

func (h *BlockHeader) MarshalBinary() ([]byte, error) {
	b := bincodec.AppendUint64(nil, uint64(h.Level))
	b = bincodec.AppendUint32(b, h.Proto)
	b = bincodec.AppendBytes(b, h.Predecessor)
	b = bincodec.AppendUint64(b, uint64(h.Timestamp))
	b = bincodec.AppendBytes(b, h.OperationsHash)
	b = bincodec.AppendUint32(b, uint32(len(h.Fitness)))
	for _, f := range h.Fitness {
		b = bincodec.AppendBytes(b, f)
	}
	b = bincodec.AppendBytes(b, h.ContextHash)
	b = bincodec.AppendBytes(b, h.Data)
	return b, nil
}

func (h *BlockHeader) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	return h.decode(r)
}

func (h *BlockHeader) decode(r *bincodec.Reader) error {
	level, err := r.Uint64()
	if err != nil {
		return err
	}
	h.Level = int64(level)
	if h.Proto, err = r.Uint32(); err != nil {
		return err
	}
	pred, err := r.Bytes()
	if err != nil {
		return err
	}
	h.Predecessor = pred
	ts, err := r.Uint64()
	if err != nil {
		return err
	}
	h.Timestamp = int64(ts)
	ops, err := r.Bytes()
	if err != nil {
		return err
	}
	h.OperationsHash = ops
	n, err := r.Uint32()
	if err != nil {
		return err
	}
	h.Fitness = make([][]byte, 0, n)
	for i := uint32(0); i < n; i++ {
		f, err := r.Bytes()
		if err != nil {
			return err
		}
		h.Fitness = append(h.Fitness, f)
	}
	ch, err := r.Bytes()
	if err != nil {
		return err
	}
	h.ContextHash = ch
	if h.Data, err = r.Bytes(); err != nil {
		return err
	}
	return nil
}

func appendHeader(b []byte, h *BlockHeader) []byte {
	data, _ := h.MarshalBinary()
	return bincodec.AppendBytes(b, data)
}

func decodeHeader(r *bincodec.Reader) (*BlockHeader, error) {
	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	h := &BlockHeader{}
	if err := h.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return h, nil
}

// PrunedBlock is a block whose operations have been discarded, keeping the
// header and the hashes needed to verify it.
type PrunedBlock struct {
	Header          *BlockHeader
	OperationHashes []Hash
}

func (p *PrunedBlock) MarshalBinary() ([]byte, error) {
	b := appendHeader(nil, p.Header)
	b = bincodec.AppendUint32(b, uint32(len(p.OperationHashes)))
	for _, oh := range p.OperationHashes {
		b = bincodec.AppendBytes(b, oh)
	}
	return b, nil
}

func (p *PrunedBlock) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	return p.decode(r)
}

func (p *PrunedBlock) decode(r *bincodec.Reader) error {
	header, err := decodeHeader(r)
	if err != nil {
		return err
	}
	p.Header = header
	n, err := r.Uint32()
	if err != nil {
		return err
	}
	p.OperationHashes = make([]Hash, 0, n)
	for i := uint32(0); i < n; i++ {
		oh, err := r.Bytes()
		if err != nil {
			return err
		}
		p.OperationHashes = append(p.OperationHashes, oh)
	}
	return nil
}

// BlockData is the caboose block: its header plus the full operations
// payload.
type BlockData struct {
	Header     *BlockHeader
	Operations [][]byte
}

func (d *BlockData) MarshalBinary() ([]byte, error) {
	b := appendHeader(nil, d.Header)
	b = bincodec.AppendUint32(b, uint32(len(d.Operations)))
	for _, op := range d.Operations {
		b = bincodec.AppendBytes(b, op)
	}
	return b, nil
}

func (d *BlockData) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	return d.decode(r)
}

func (d *BlockData) decode(r *bincodec.Reader) error {
	header, err := decodeHeader(r)
	if err != nil {
		return err
	}
	d.Header = header
	n, err := r.Uint32()
	if err != nil {
		return err
	}
	d.Operations = make([][]byte, 0, n)
	for i := uint32(0); i < n; i++ {
		op, err := r.Bytes()
		if err != nil {
			return err
		}
		d.Operations = append(d.Operations, op)
	}
	return nil
}

// ProtocolData describes a protocol activation at some level of the chain.
type ProtocolData struct {
	Level    int64
	Protocol Hash
	Payload  []byte
}

func (p *ProtocolData) MarshalBinary() ([]byte, error) {
	b := bincodec.AppendUint64(nil, uint64(p.Level))
	b = bincodec.AppendBytes(b, p.Protocol)
	b = bincodec.AppendBytes(b, p.Payload)
	return b, nil
}

func (p *ProtocolData) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	level, err := r.Uint64()
	if err != nil {
		return err
	}
	p.Level = int64(level)
	proto, err := r.Bytes()
	if err != nil {
		return err
	}
	p.Protocol = proto
	if p.Payload, err = r.Bytes(); err != nil {
		return err
	}
	return nil
}

// CommitInfo is the metadata attached to a context commit.
type CommitInfo struct {
	Author  string
	Message string
	Date    int64
}

func (c *CommitInfo) MarshalBinary() ([]byte, error) {
	b := bincodec.AppendString(nil, c.Author)
	b = bincodec.AppendString(b, c.Message)
	b = bincodec.AppendUint64(b, uint64(c.Date))
	return b, nil
}

func (c *CommitInfo) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	var err error
	if c.Author, err = r.String(); err != nil {
		return err
	}
	if c.Message, err = r.String(); err != nil {
		return err
	}
	date, err := r.Uint64()
	if err != nil {
		return err
	}
	c.Date = int64(date)
	return nil
}
