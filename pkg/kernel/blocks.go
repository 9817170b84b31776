package kernel

import (
	"github.com/ipfs/go-cid"
)

// maxBlockRegistryEntries bounds the arena; this is the capacity named in
// spec §3 invariant 3. It is generous enough that no well-behaved actor
// invocation should ever hit it in a single call.
const maxBlockRegistryEntries = 1024

// Block is an immutable, content-addressable byte buffer plus the set of
// CIDs its IPLD links reference. Equality is by CID, not by value; two
// Blocks with identical bytes but reached through different paths are
// still the same block once hashed.
type Block struct {
	codec    uint64
	data     []byte
	children map[cid.Cid]struct{}
}

// NewBlock wraps codec/data/children into an immutable Block. children is
// taken by reference, not copied: callers must not mutate it afterward.
func NewBlock(codec uint64, data []byte, children map[cid.Cid]struct{}) *Block {
	return &Block{codec: codec, data: data, children: children}
}

func (b *Block) Codec() uint64 { return b.codec }
func (b *Block) Data() []byte  { return b.data }
func (b *Block) Size() uint32  { return uint32(len(b.data)) }

func (b *Block) Stat() BlockStat {
	return BlockStat{Codec: b.codec, Size: b.Size()}
}

// BlockRegistry is the kernel's private, per-invocation block table: a
// handle->block arena plus the set of CIDs this invocation is allowed to
// open or link to (the "reachable set", spec §3/§9). It is never shared
// between kernels; crossing an invocation boundary is always by copying
// bytes into a fresh registry.
type BlockRegistry struct {
	blocks    []*Block // index 0 unused; handles are 1-based
	reachable map[cid.Cid]struct{}
}

// NewBlockRegistry returns an empty registry. seed, if non-nil, is
// inserted as handle 1 and marked reachable under seedCID — this is how
// the CallManager preloads method parameters before constructing a
// kernel (spec §3 "Lifecycle").
func NewBlockRegistry(seed *Block, seedCID cid.Cid) *BlockRegistry {
	r := &BlockRegistry{
		blocks:    make([]*Block, 1, 8),
		reachable: make(map[cid.Cid]struct{}, 8),
	}
	if seed != nil {
		r.blocks = append(r.blocks, seed)
		r.reachable[seedCID] = struct{}{}
	}
	return r
}

func (r *BlockRegistry) IsFull() bool {
	return len(r.blocks)-1 >= maxBlockRegistryEntries
}

func (r *BlockRegistry) IsReachable(c cid.Cid) bool {
	_, ok := r.reachable[c]
	return ok
}

func (r *BlockRegistry) MarkReachable(c cid.Cid) {
	r.reachable[c] = struct{}{}
}

// Get resolves a handle to its Block. 0 and out-of-range handles are
// reported as NotFound, never as a Go panic or nil dereference.
func (r *BlockRegistry) Get(id BlockId) (*Block, *SyscallError) {
	if id == NoDataBlockID || int(id) >= len(r.blocks) {
		return nil, syscallErr(ErrNotFound, "block handle %d not found", id)
	}
	return r.blocks[id], nil
}

func (r *BlockRegistry) Stat(id BlockId) (BlockStat, *SyscallError) {
	b, err := r.Get(id)
	if err != nil {
		return BlockStat{}, err
	}
	return b.Stat(), nil
}

// put appends block unconditionally and returns its new handle, or
// LimitExceeded if the registry is at capacity. Callers are responsible
// for any reachability precondition.
func (r *BlockRegistry) put(b *Block) (BlockId, *SyscallError) {
	if r.IsFull() {
		return NoDataBlockID, syscallErr(ErrLimitExceeded, "block registry is full")
	}
	r.blocks = append(r.blocks, b)
	return BlockId(len(r.blocks) - 1), nil
}

// PutReachable registers b without checking its children's reachability:
// used when b arrived via block_open or as a send/upgrade return value, where the
// block's own provenance already established reachability (invariant 1).
func (r *BlockRegistry) PutReachable(b *Block) (BlockId, *SyscallError) {
	return r.put(b)
}

// PutCheckReachable registers b only if every one of its children is
// already in the reachable set (invariant 2, used by block_create).
func (r *BlockRegistry) PutCheckReachable(b *Block) (BlockId, *SyscallError) {
	for c := range b.children {
		if !r.IsReachable(c) {
			return NoDataBlockID, syscallErr(ErrNotFound, "block references unreachable child %s", c)
		}
	}
	return r.put(b)
}
