package kernel

import (
	"math"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
	"github.com/filecoin-project/go-fvm-kernel/pkg/ipld"
)

// BlockOpen loads the block named by c from the blockstore into this
// invocation's registry, provided c is in the reachable set (it was
// either passed in as a parameter or reached from another open block).
// It returns the new handle and the block's stat.
func (k *Kernel) BlockOpen(c cid.Cid) (BlockId, BlockStat, error) {
	timer, err := k.charge(k.callManager.PriceList().OnBlockOpenBase())
	if err != nil {
		return NoDataBlockID, BlockStat{}, err
	}
	defer timer.Stop()

	if !k.blocks.IsReachable(c) {
		return NoDataBlockID, BlockStat{}, notFoundf("block %s is not reachable in this invocation", c)
	}

	data, found, serr := k.callManager.Blockstore().Get(c)
	if serr != nil {
		return NoDataBlockID, BlockStat{}, fatalWrap(serr, "reading block from store")
	}
	if !found {
		// A reachable CID missing from the store is a store invariant
		// violation, not a guest-catchable error.
		return NoDataBlockID, BlockStat{}, fatalf("reachable block %s missing from store", c)
	}

	codec := c.Prefix().Codec
	numLinks, children, serr := k.scanLinks(codec, data)
	if serr != nil {
		return NoDataBlockID, BlockStat{}, serr
	}
	for child := range children {
		k.blocks.MarkReachable(child)
	}

	openTimer, err := k.charge(k.callManager.PriceList().OnBlockOpen(len(data), numLinks))
	if err != nil {
		return NoDataBlockID, BlockStat{}, err
	}
	defer openTimer.Stop()

	blk := NewBlock(codec, data, children)
	id, serr2 := k.blocks.PutReachable(blk)
	if serr2 != nil {
		return NoDataBlockID, BlockStat{}, serr2
	}
	return id, blk.Stat(), nil
}

// BlockCreate registers a new in-memory block under codec, rejecting it
// unless every CID it links to is already reachable in this invocation
// (invariant: an actor cannot manufacture reachability for a block it
// never actually opened or was handed).
func (k *Kernel) BlockCreate(codec uint64, data []byte) (BlockId, error) {
	if len(data) > MaxBlockSize {
		return NoDataBlockID, illegalArgf("block of %d bytes exceeds maximum size %d", len(data), MaxBlockSize)
	}
	if !ipld.AllowedCodecs[codec] {
		return NoDataBlockID, syscallErr(ErrIllegalCodec, "codec %#x is not accepted by block_create", codec)
	}

	numLinks, children, serr := k.scanLinks(codec, data)
	if serr != nil {
		return NoDataBlockID, serr
	}

	timer, err := k.charge(k.callManager.PriceList().OnBlockCreate(len(data), numLinks))
	if err != nil {
		return NoDataBlockID, err
	}
	defer timer.Stop()

	blk := NewBlock(codec, data, children)
	id, serr2 := k.blocks.PutCheckReachable(blk)
	if serr2 != nil {
		return NoDataBlockID, serr2
	}
	return id, nil
}

// BlockLink commits the block at handle id to the blockstore under a CID
// computed with the given multihash code, and marks that CID reachable
// for the remainder of this invocation so it may subsequently be
// returned or passed to set_root. Only Blake2b-256 is accepted.
func (k *Kernel) BlockLink(id BlockId, hashCode uint64) (cid.Cid, error) {
	if hashCode != Blake2b256 {
		return cid.Undef, illegalArgf("block_link only accepts multihash code %#x, got %#x", Blake2b256, hashCode)
	}
	blk, serr := k.blocks.Get(id)
	if serr != nil {
		return cid.Undef, serr
	}

	timer, err := k.charge(k.callManager.PriceList().OnBlockLink(hashCode, len(blk.Data())))
	if err != nil {
		return cid.Undef, err
	}
	defer timer.Stop()

	mh, herr := multihash.Sum(blk.Data(), multihash.BLAKE2B_MIN+31, -1)
	if herr != nil {
		return cid.Undef, fatalWrap(herr, "hashing block for block_link")
	}
	c := cid.NewCidV1(blk.Codec(), mh)

	if perr := k.callManager.Blockstore().PutKeyed(c, blk.Data()); perr != nil {
		return cid.Undef, fatalWrap(perr, "writing linked block to store")
	}
	k.blocks.MarkReachable(c)
	return c, nil
}

// BlockRead copies to_read = min(len(data)-offset, len(buf)) bytes of the
// block at handle id, starting at offset, into buf, and returns
// len(data) - end where end = offset + len(buf). The return value is a
// signed over/under-read indicator, not a byte count: it is negative
// when the read extends past the block's end, zero when it lands
// exactly on it, and positive when bytes remain unread. offset beyond
// the block's length is not an error; to_read simply saturates at zero.
func (k *Kernel) BlockRead(id BlockId, offset uint32, buf []byte) (int32, error) {
	blk, serr := k.blocks.Get(id)
	if serr != nil {
		return 0, serr
	}

	end := int64(offset) + int64(len(buf))
	if end > math.MaxInt32 || end < math.MinInt32 {
		return 0, illegalArgf("block_read offset+len overflows i32: offset=%d len=%d", offset, len(buf))
	}

	data := blk.Data()
	remaining := int64(len(data)) - int64(offset)
	if remaining < 0 {
		remaining = 0
	}
	toRead := remaining
	if toRead > int64(len(buf)) {
		toRead = int64(len(buf))
	}

	timer, err := k.charge(k.callManager.PriceList().OnBlockRead(int(toRead)))
	if err != nil {
		return 0, err
	}
	defer timer.Stop()

	if toRead > 0 {
		copy(buf, data[offset:int64(offset)+toRead])
	}
	return int32(int64(len(data)) - end), nil
}

// BlockStat returns the codec and size of the block at handle id, without
// copying its bytes.
func (k *Kernel) BlockStat(id BlockId) (BlockStat, error) {
	timer, err := k.charge(k.callManager.PriceList().OnBlockStat())
	if err != nil {
		return BlockStat{}, err
	}
	defer timer.Stop()

	stat, serr := k.blocks.Stat(id)
	if serr != nil {
		return BlockStat{}, serr
	}
	return stat, nil
}

// scanLinks is the shared OnBlockScanLink-metered wrapper around
// ipld.ScanForReachableLinks, used by both BlockOpen and BlockCreate.
func (k *Kernel) scanLinks(codec uint64, data []byte) (int, map[cid.Cid]struct{}, error) {
	children, serr := ipld.ScanForReachableLinks(codec, data, func() error {
		timer, err := k.charge(k.callManager.PriceList().OnBlockScanLink())
		if err != nil {
			return err
		}
		timer.Stop()
		return nil
	})
	if serr != nil {
		if _, outOfGas := serr.(*gas.OutOfGasError); outOfGas {
			return 0, nil, serr
		}
		return 0, nil, illegalArgf("scanning block links: %s", serr)
	}
	return len(children), children, nil
}
