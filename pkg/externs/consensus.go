package externs

import (
	"bytes"

	"github.com/filecoin-project/go-state-types/abi"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("externs")

// BlockHeader is the minimal slice of a chain block header the fault
// checks need. A real deployment decodes this from the node's own block
// header CBOR via BlockDecoder; this type exists so the fault-detection
// algorithm below does not depend on any one chain client's types.
type BlockHeader struct {
	HeaderCid     Cid
	Miner         abi.ActorID
	Height        abi.ChainEpoch
	Parents       []Cid
	Signature     []byte
	SignatureData []byte // the exact bytes the signature was produced over
}

// Cid is a small value type standing in for the block store's CID, kept
// local so this package does not need to depend on a specific chain
// client's header codec to express the fault-detection algorithm.
type Cid struct{ Bytes [36]byte }

func (a Cid) Equals(b Cid) bool { return bytes.Equal(a.Bytes[:], b.Bytes[:]) }

func parentsEqual(a, b []Cid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func parentsContain(parents []Cid, c Cid) bool {
	for _, p := range parents {
		if p.Equals(c) {
			return true
		}
	}
	return false
}

// BlockDecoder turns raw bytes into a BlockHeader; a real deployment
// plugs in its chain client's own header codec here.
type BlockDecoder func(raw []byte) (*BlockHeader, error)

// WorkerKeyLookback resolves, for the given miner at the given height,
// a function that verifies a signature was produced by that miner's
// worker key at that lookback — the part of fault verification that
// necessarily reaches back into state-tree history.
type WorkerKeyLookback func(minerID abi.ActorID, height abi.ChainEpoch) (verify func(sig, data []byte) error, err error)

// DefaultConsensusFaultVerifier implements ConsensusFaultVerifier by
// replaying the exact decision tree venus's FvmExtern.VerifyConsensusFault
// runs before handing a fault to the FFI kernel: cheap structural checks
// first, signature verification only once a fault shape is plausible.
// Grounded on other_examples/ef797f29_0x5459-venus__pkg-vm-fvm.go.go.
type DefaultConsensusFaultVerifier struct {
	Decode    BlockDecoder
	WorkerKey WorkerKeyLookback
}

func (x *DefaultConsensusFaultVerifier) VerifyConsensusFault(a, b, extra []byte) (*ConsensusFault, int64, error) {
	var totalGas int64
	ret := &ConsensusFault{Type: ConsensusFaultNone}

	// (0) cheap preliminary checks. Block syntax is not validated beyond
	// decodability: any validly signed block is accepted pursuant to the
	// conditions below, whether or not it could ever have landed on a
	// real chain.
	blockA, err := x.Decode(a)
	if err != nil {
		log.Infof("invalid consensus fault: cannot decode first block header: %s", err)
		return ret, totalGas, nil
	}
	blockB, err := x.Decode(b)
	if err != nil {
		log.Infof("invalid consensus fault: cannot decode second block header: %s", err)
		return ret, totalGas, nil
	}

	if blockA.HeaderCid.Equals(blockB.HeaderCid) {
		log.Info("invalid consensus fault: submitted blocks are the same")
		return ret, totalGas, nil
	}

	// (1) conditions necessary to any consensus fault.
	if blockA.Miner != blockB.Miner {
		log.Info("invalid consensus fault: blocks not mined by the same miner")
		return ret, totalGas, nil
	}
	if blockB.Height < blockA.Height {
		log.Info("invalid consensus fault: first block must not be of higher height than second")
		return ret, totalGas, nil
	}
	ret.Epoch = blockB.Height

	// (2) the faults themselves.
	faultType := ConsensusFaultNone
	if blockA.Height == blockB.Height {
		faultType = ConsensusFaultDoubleForkMining
	}
	if parentsEqual(blockA.Parents, blockB.Parents) && blockA.Height != blockB.Height {
		faultType = ConsensusFaultTimeOffsetMining
	}
	if len(extra) > 0 {
		blockC, err := x.Decode(extra)
		if err != nil {
			log.Infof("invalid consensus fault: cannot decode extra: %s", err)
			return ret, totalGas, nil
		}
		// B must be A's parent-grinding target: A and C are siblings,
		// B was mined omitting A from its tipset despite including C.
		if parentsEqual(blockA.Parents, blockC.Parents) && blockA.Height == blockC.Height &&
			parentsContain(blockB.Parents, blockC.HeaderCid) && !parentsContain(blockB.Parents, blockA.HeaderCid) {
			faultType = ConsensusFaultParentGrinding
		}
	}

	if faultType == ConsensusFaultNone {
		log.Info("invalid consensus fault: no fault detected")
		return ret, totalGas, nil
	}

	// (3) expensive final checks: only reached once a fault is plausible.
	gasA, err := x.verifyBlockSig(blockA)
	totalGas += gasA
	if err != nil {
		log.Infof("invalid consensus fault: cannot verify first block sig: %s", err)
		return ret, totalGas, nil
	}
	gasB, err := x.verifyBlockSig(blockB)
	totalGas += gasB
	if err != nil {
		log.Infof("invalid consensus fault: cannot verify second block sig: %s", err)
		return ret, totalGas, nil
	}

	ret.Type = faultType
	ret.Target = blockA.Miner
	return ret, totalGas, nil
}

func (x *DefaultConsensusFaultVerifier) verifyBlockSig(blk *BlockHeader) (int64, error) {
	verify, err := x.WorkerKey(blk.Miner, blk.Height)
	if err != nil {
		return 0, err
	}
	return 0, verify(blk.Signature, blk.SignatureData)
}

var _ ConsensusFaultVerifier = (*DefaultConsensusFaultVerifier)(nil)
