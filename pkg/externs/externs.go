// Package externs defines the chain-level collaborators the kernel calls
// out to but does not implement itself: consensus-fault verification,
// randomness, and tipset CID lookup (spec §6). These are the kernel's
// only window onto chain state outside the block store and state tree.
package externs

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// RandomnessLength is the fixed size of a randomness draw.
const RandomnessLength = 32

// Randomness draws verifiable randomness from tickets or the drand beacon,
// looking back from the current epoch.
type Randomness interface {
	GetChainRandomness(epoch abi.ChainEpoch) ([RandomnessLength]byte, error)
	GetBeaconRandomness(epoch abi.ChainEpoch) ([RandomnessLength]byte, error)
}

// ConsensusFaultType classifies the kind of fault VerifyConsensusFault
// found, mirroring fvm_shared::consensus::ConsensusFaultType.
type ConsensusFaultType int

const (
	ConsensusFaultNone ConsensusFaultType = iota
	ConsensusFaultDoubleForkMining
	ConsensusFaultParentGrinding
	ConsensusFaultTimeOffsetMining
)

// ConsensusFault is the (possibly empty) result of a fault check.
type ConsensusFault struct {
	Target abi.ActorID
	Epoch  abi.ChainEpoch
	Type   ConsensusFaultType
}

// ConsensusFaultVerifier checks two (and optionally a third, "witness")
// block headers for a consensus fault. It reports gas spent on the
// (expensive) signature checks alongside any error, since those checks
// run even on a fault that is ultimately rejected — grounding: venus's
// FvmExtern.VerifyConsensusFault / VerifyBlockSig
// (other_examples/ef797f29_0x5459-venus__pkg-vm-fvm.go.go).
type ConsensusFaultVerifier interface {
	VerifyConsensusFault(h1, h2, extra []byte) (*ConsensusFault, int64, error)
}

// TipsetCIDProvider resolves the tipset CID at a past epoch.
type TipsetCIDProvider interface {
	GetTipsetCID(epoch abi.ChainEpoch) (cid.Cid, error)
}

// Externs bundles everything the kernel needs from the chain.
type Externs interface {
	Randomness
	ConsensusFaultVerifier
	TipsetCIDProvider
}
