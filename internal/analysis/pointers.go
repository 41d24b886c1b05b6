package analysis

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring/v2"
)

// PointerTable counts every aligned 32-bit word of an image. The words are
// taken as absolute addresses that have not been relocated.
type PointerTable struct {
	counts map[uint32]uint32
	values *roaring.Bitmap
	total  uint64
}

// ExtractPointers reads buf as consecutive non-overlapping words starting at
// offset 0. Trailing bytes that do not fill a word are ignored.
func ExtractPointers(buf []byte, order binary.ByteOrder) *PointerTable {
	words := len(buf) / WordSize
	pt := &PointerTable{
		counts: make(map[uint32]uint32, min(words, 1<<16)),
		values: roaring.New(),
		total:  uint64(words),
	}

	for off := 0; off+WordSize <= len(buf); off += WordSize {
		v := order.Uint32(buf[off:])
		if pt.counts[v] == 0 {
			pt.values.Add(v)
		}
		pt.counts[v]++
	}
	pt.values.RunOptimize()
	return pt
}

// Len returns the number of distinct word values.
func (pt *PointerTable) Len() int { return len(pt.counts) }

// Total returns the number of words scanned.
func (pt *PointerTable) Total() uint64 { return pt.total }

// Count returns how many times v occurs, or 0.
func (pt *PointerTable) Count(v uint32) uint32 {
	if !pt.values.Contains(v) {
		return 0
	}
	return pt.counts[v]
}

// Contains reports whether v occurs at least once.
func (pt *PointerTable) Contains(v uint32) bool { return pt.values.Contains(v) }

// Entries returns the table sorted by value.
func (pt *PointerTable) Entries() []PointerEntry {
	out := make([]PointerEntry, 0, len(pt.counts))
	it := pt.values.Iterator()
	for it.HasNext() {
		v := it.Next()
		out = append(out, PointerEntry{Value: v, Count: pt.counts[v]})
	}
	return out
}

// Values returns the distinct word values in ascending order.
func (pt *PointerTable) Values() []uint32 {
	return pt.values.ToArray()
}
