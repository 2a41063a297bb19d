package engine

import (
	"unsafe"

	"github.com/daystram/snail/board"
)

// DefaultHashSizeMB is the default transposition table budget.
const DefaultHashSizeMB = 85

type EntryType uint8

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeExact:
		return "exact"
	case EntryTypeLowerBound:
		return "lower"
	case EntryTypeUpperBound:
		return "upper"
	default:
		return "unknown"
	}
}

type entry struct {
	hash  uint64
	mv    board.Move
	score int16
	eval  int16
	depth uint8
	typ   EntryType
}

// TranspositionTable is a single-writer, always-replace position cache indexed by key modulo capacity.
type TranspositionTable struct {
	table []entry
	size  uint64

	// stats
	hits   int
	misses int
	writes int
}

func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	size := uint64(sizeMB) * 1024 * 1024 / uint64(unsafe.Sizeof(entry{}))
	return &TranspositionTable{
		table: make([]entry, size),
		size:  size,
	}
}

// Set stores a search result. Mate scores are made relative to this node so they
// stay valid when the position is reached at another ply.
func (t *TranspositionTable) Set(hash uint64, typ EntryType, mv board.Move, score, eval int, depth uint8, ply int) {
	if score < -MateScore {
		score -= ply
	} else if score > MateScore {
		score += ply
	}
	t.writes++
	t.table[hash%t.size] = entry{
		hash:  hash,
		mv:    mv,
		score: int16(score),
		eval:  int16(eval),
		depth: depth,
		typ:   typ,
	}
}

// Get returns the stored entry for hash with its mate score rebased to ply.
func (t *TranspositionTable) Get(hash uint64, ply int) (Entry, bool) {
	e := t.table[hash%t.size]
	if e.typ == EntryTypeUnknown || e.hash != hash {
		t.misses++
		return Entry{}, false
	}
	t.hits++
	score := int(e.score)
	if score < -MateScore {
		score += ply
	} else if score > MateScore {
		score -= ply
	}
	return Entry{
		Type:  e.typ,
		Move:  e.mv,
		Score: score,
		Eval:  int(e.eval),
		Depth: e.depth,
	}, true
}

// Entry is a transposition table record returned by Get.
type Entry struct {
	Type  EntryType
	Move  board.Move
	Score int
	Eval  int
	Depth uint8
}

func (t *TranspositionTable) Clear() {
	clear(t.table)
	t.ResetStats()
}

func (t *TranspositionTable) Size() uint64 {
	return t.size
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.hits, t.misses, t.writes
}
