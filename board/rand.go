package board

// DefaultSeed seeds the Zobrist keys and the magic search.
const DefaultSeed uint32 = 1804289383

// PseudoRand is a xorshift32 generator. Zero state is invalid, seed must be non-zero.
type PseudoRand struct {
	s uint32
}

func NewPseudoRand(seed uint32) *PseudoRand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &PseudoRand{s: seed}
}

func (r *PseudoRand) Uint32() uint32 {
	r.s ^= r.s << 13
	r.s ^= r.s << 17
	r.s ^= r.s >> 5
	return r.s
}

// Uint64 joins the low 16 bits of four consecutive draws.
func (r *PseudoRand) Uint64() uint64 {
	n1 := uint64(r.Uint32() & 0xFFFF)
	n2 := uint64(r.Uint32() & 0xFFFF)
	n3 := uint64(r.Uint32() & 0xFFFF)
	n4 := uint64(r.Uint32() & 0xFFFF)
	return n1 | n2<<16 | n3<<32 | n4<<48
}

// SparseUint64 returns a value with few bits set, a good magic candidate.
func (r *PseudoRand) SparseUint64() uint64 {
	//nolint:staticcheck // SA4000 intentional
	return r.Uint64() & r.Uint64() & r.Uint64()
}
