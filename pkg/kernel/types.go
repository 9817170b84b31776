package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
)

// NoDataBlockID is the reserved handle meaning "no block" / "no params".
const NoDataBlockID BlockId = 0

// InitActorID is the well-known ID of the Init actor, the only caller
// permitted to invoke ActorOps.CreateActor.
const InitActorID abi.ActorID = 1

// BurntFundsActorID is the well-known actor that absorbs self-destruct
// residual balance.
const BurntFundsActorID abi.ActorID = 99

// Blake2b256 is the only multihash code accepted by block_link.
const Blake2b256 uint64 = 0xb220

// MaxBlockSize bounds a single block_create payload (1 MiB by convention).
const MaxBlockSize = 1 << 20

// BlockId is a small opaque non-negative block handle. 0 is reserved.
type BlockId uint32

// BlockStat describes a registered block without exposing its bytes.
type BlockStat struct {
	Codec uint64
	Size  uint32
}

// CallResult is what a cross-actor call (Send, UpgradeActor) reports back
// to the caller: where its return value landed in the local registry, its
// stat, and the callee's exit code.
type CallResult struct {
	BlockID   BlockId
	BlockStat BlockStat
	ExitCode  exitcode.ExitCode
}

// MessageContext is the immutable per-call record MessageOps exposes.
type MessageContext struct {
	Caller        abi.ActorID
	Origin        abi.ActorID
	Receiver      abi.ActorID
	MethodNumber  abi.MethodNum
	ValueReceived abi.TokenAmount
	GasPremium    abi.TokenAmount
	ReadOnly      bool
	Nonce         uint64
}

// NetworkContext is the immutable chain-context record NetworkOps exposes.
type NetworkContext struct {
	ChainID        uint64
	Epoch          abi.ChainEpoch
	Timestamp      uint64
	BaseFee        big.Int
	NetworkVersion uint64
}

// SendFlags carries the out-of-band bits a guest may set on a Send.
type SendFlags struct {
	ReadOnly bool
}

// Entrypoint names the function an invoked actor is dispatched to: either
// a normal method call, or the special upgrade entrypoint that receives
// the old code CID.
type Entrypoint struct {
	// IsUpgrade is false for a normal method dispatch (Method is
	// meaningful) and true for an upgrade entrypoint (OldCodeCID is
	// populated), mirroring the Rust Entrypoint enum.
	IsUpgrade  bool
	Method     abi.MethodNum
	OldCodeCID cid.Cid
}

const (
	invokeFuncName  = "Invoke"
	upgradeFuncName = "Upgrade"
)

// CallStackFrame is one ancestor of the current invocation, as tracked by
// the CallManager. The kernel only inspects this list (for the upgrade
// re-entry rule); it never builds it.
type CallStackFrame struct {
	ActorID    abi.ActorID
	Entrypoint string
}

// ActorState is the CallManager-owned, kernel-visible view of an actor.
type ActorState struct {
	CodeCID          cid.Cid
	StateCID         cid.Cid
	Balance          abi.TokenAmount
	Sequence         uint64
	DelegatedAddress *address.Address
}
