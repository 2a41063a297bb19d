package engine

import "unsafe"

// DefaultPawnCacheSizeMB is the pawn structure cache budget.
const DefaultPawnCacheSizeMB = 4

type pawnEntry struct {
	hash  uint32
	mg    int16
	eg    int16
	valid bool
}

// PawnCache memoises pawn structure scores by pawn key.
type PawnCache struct {
	table []pawnEntry
	size  uint32
}

func NewPawnCache(sizeMB int) *PawnCache {
	if sizeMB < 1 {
		sizeMB = 1
	}
	size := uint32(uint64(sizeMB) * 1024 * 1024 / uint64(unsafe.Sizeof(pawnEntry{})))
	return &PawnCache{
		table: make([]pawnEntry, size),
		size:  size,
	}
}

func (c *PawnCache) Get(hash uint32) (mg, eg int, ok bool) {
	e := c.table[hash%c.size]
	if !e.valid || e.hash != hash {
		return 0, 0, false
	}
	return int(e.mg), int(e.eg), true
}

func (c *PawnCache) Set(hash uint32, mg, eg int) {
	c.table[hash%c.size] = pawnEntry{hash: hash, mg: int16(mg), eg: int16(eg), valid: true}
}

func (c *PawnCache) Clear() {
	clear(c.table)
}
