package densemap

import "encoding/binary"

type bucketState uint8

const (
	bucketEmpty bucketState = iota
	bucketDeleted
	bucketOccupied
)

// probeIndex is the sparse half of the table: a power-of-two array of
// buckets, each either empty, deleted or holding a dense slot number.
//
// Entries are indexStride bytes wide and stored little-endian. The all-ones
// value of that width marks an empty bucket, one less marks a deleted one.
type probeIndex struct {
	buckets  []byte
	stride   uint64
	mask     uint64
	hashMask uint64
}

func newProbeIndex(buckets []byte, l layout) probeIndex {
	p := probeIndex{
		buckets:  buckets[:l.indexSize()],
		stride:   l.indexStride,
		mask:     l.indexMask,
		hashMask: l.indexCapacity - 1,
	}
	p.clear()

	return p
}

func (p *probeIndex) len() uint64 {
	return p.hashMask + 1
}

func (p *probeIndex) empty() uint64 {
	return p.mask
}

func (p *probeIndex) deleted() uint64 {
	return p.mask - 1
}

func (p *probeIndex) state(v uint64) bucketState {
	switch v {
	case p.mask:
		return bucketEmpty
	case p.mask - 1:
		return bucketDeleted
	default:
		return bucketOccupied
	}
}

func (p *probeIndex) load(bucket uint64) uint64 {
	b := p.buckets[bucket*p.stride:]

	switch p.stride {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func (p *probeIndex) store(bucket, v uint64) {
	b := p.buckets[bucket*p.stride:]

	switch p.stride {
	case 1:
		b[0] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, v)
	}
}

// clear marks every bucket empty. All-ones bytes read as the empty sentinel
// whatever the stride is.
func (p *probeIndex) clear() {
	for i := range p.buckets {
		p.buckets[i] = 0xFF
	}
}
