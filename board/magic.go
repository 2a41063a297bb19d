package board

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/daystram/snail/position"
)

// DefaultMagicAttempts bounds the candidate draws per square.
const DefaultMagicAttempts = 200_000_000

var (
	ErrMagicNotFound = errors.New("magic not found")
)

// MagicEntry maps a relevant-occupancy subset of one square to its slot in the shared attack table.
type MagicEntry struct {
	Mask   Bitmap
	Magic  uint64
	Shift  uint8
	Offset uint32
}

func newMagicEntry(p Piece, pos position.Pos, magic uint64) MagicEntry {
	if p == PieceRook {
		return MagicEntry{
			Mask:   relevantMask(PieceRook, pos),
			Magic:  magic,
			Shift:  64 - rookIndexBits,
			Offset: rookTableOffset + uint32(pos)*(1<<rookIndexBits),
		}
	}
	return MagicEntry{
		Mask:   relevantMask(PieceBishop, pos),
		Magic:  magic,
		Shift:  64 - bishopIndexBits,
		Offset: bishopTableOffset + uint32(pos)*(1<<bishopIndexBits),
	}
}

func (m MagicEntry) Index(occupied Bitmap) int {
	return int(m.Offset) + int(uint64(occupied&m.Mask)*m.Magic>>m.Shift)
}

// FindMagic searches for a multiplier that maps every occupancy subset of the square's
// relevant mask into its slot range without destructive collisions. Subsets with equal
// attack sets may share a slot.
func FindMagic(p Piece, pos position.Pos, r *PseudoRand, attempts int) (MagicEntry, error) {
	if p != PieceBishop && p != PieceRook {
		return MagicEntry{}, fmt.Errorf("%w: %s is not a slider", ErrMagicNotFound, p)
	}
	entry := newMagicEntry(p, pos, 0)

	var occupancies, attacks []Bitmap
	forEachSubset(entry.Mask, func(occupied Bitmap) {
		occupancies = append(occupancies, occupied)
		attacks = append(attacks, rayAttacks(p, pos, occupied))
	})

	used := make([]Bitmap, 1<<(64-entry.Shift))
	for k := 0; k < attempts; k++ {
		magic := r.SparseUint64()
		if bits.OnesCount64((uint64(entry.Mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}
		for i := range used {
			used[i] = 0
		}
		entry.Magic = magic
		ok := true
		for i, occupied := range occupancies {
			j := entry.Index(occupied) - int(entry.Offset)
			if used[j] == 0 {
				used[j] = attacks[i]
			} else if used[j] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return entry, nil
		}
	}
	return MagicEntry{}, fmt.Errorf("%w: %s on %s after %d attempts", ErrMagicNotFound, p, pos, attempts)
}

// FindMagics runs FindMagic for every square concurrently. Each square draws from its
// own generator seeded from seed, so results are reproducible.
func FindMagics(p Piece, seed uint32, attempts int) ([TotalCells]MagicEntry, error) {
	var (
		entries [TotalCells]MagicEntry
		errs    [TotalCells]error
		wg      sync.WaitGroup
	)
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		wg.Add(1)
		go func(pos position.Pos) {
			defer wg.Done()
			r := NewPseudoRand(seed + uint32(pos))
			entries[pos], errs[pos] = FindMagic(p, pos, r, attempts)
		}(pos)
	}
	wg.Wait()
	return entries, errors.Join(errs[:]...)
}
