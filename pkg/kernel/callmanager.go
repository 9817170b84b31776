package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/go-fvm-kernel/pkg/events"
	"github.com/filecoin-project/go-fvm-kernel/pkg/externs"
	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
	"github.com/filecoin-project/go-fvm-kernel/pkg/proofs"
)

// NetworkConfig is the static, per-machine network identity the kernel
// reports through NetworkOps.
type NetworkConfig struct {
	ChainID        uint64
	NetworkVersion uint64
	ActorDebugging bool
}

// MachineContext is the snapshot of chain state a machine was built with.
type MachineContext struct {
	Epoch        abi.ChainEpoch
	Timestamp    uint64
	BaseFee      big.Int
	MaxBlockSize int
	CircSupply   abi.TokenAmount
	Network      NetworkConfig
}

// Blockstore is the persistent content-addressed store the kernel reads
// opened blocks from and writes linked blocks to. A missing reachable
// block indicates store corruption and is always fatal to the kernel.
type Blockstore interface {
	Get(c cid.Cid) ([]byte, bool, error)
	PutKeyed(c cid.Cid, data []byte) error
}

// ManifestLookup maps between a builtin actor's numeric type and its code
// CID, as published in the network's actor manifest.
type ManifestLookup interface {
	IDByCode(code cid.Cid) uint32
	CodeByID(id uint32) (cid.Cid, bool)
}

// Machine is the per-execution machine a CallManager runs atop.
type Machine interface {
	MachineID() string
	Context() MachineContext
	BuiltinActors() ManifestLookup

	// Preload asks the (out-of-scope) execution engine to precompile and
	// cache the actor code named by each CID, returning the total bytes
	// loaded. Only meaningful when Features.M2Native is set.
	Preload(bs Blockstore, codes []cid.Cid) (int, error)
}

// Limiter is the resource limiter LimiterOps exposes to the execution
// engine; the kernel never interprets it, only forwards it.
type Limiter interface {
	// Reset clears any per-invocation accounting the engine tracked.
	Reset()
}

// InvocationResult is what CallActor and a transaction both resolve to:
// the callee's exit code, and an optional returned block.
type InvocationResult struct {
	ExitCode exitcode.ExitCode
	Value    *Block
}

// CallManager is the cross-actor state and gas machinery a kernel is
// constructed atop for a single invocation; it is exclusively owned by
// whichever kernel is currently executing, and is handed to a child
// kernel for the duration of a Send or UpgradeActor (spec §5). This
// interface fixes only the surface the kernel consumes (spec §6) — the
// concrete implementation (state tree, WASM engine coordination, …) is
// out of scope for this module.
type CallManager interface {
	Machine() Machine
	Context() MachineContext
	Blockstore() Blockstore
	Externs() externs.Externs
	Verifier() proofs.Verifier
	GasTracker() *gas.Tracker
	PriceList() gas.PriceList

	Origin() abi.ActorID
	Nonce() uint64
	GasPremium() abi.TokenAmount
	InvocationCount() uint64
	GetCallStack() []CallStackFrame

	GetActor(id abi.ActorID) (*ActorState, bool, error)
	SetActor(id abi.ActorID, st ActorState) error
	DeleteActor(id abi.ActorID) error
	CreateActor(codeCID cid.Cid, actorID abi.ActorID, delegated *address.Address) error
	Transfer(from, to abi.ActorID, amount abi.TokenAmount) error
	ResolveAddress(addr address.Address) (abi.ActorID, bool, error)
	NextActorAddress() address.Address

	// CallActor re-enters the VM synchronously for a Send or an upgrade
	// entrypoint invocation. gasLimit is nil when the caller does not
	// want to override the ambient budget.
	CallActor(from abi.ActorID, to address.Address, ep Entrypoint, params *Block, value abi.TokenAmount, gasLimit *gas.Gas, readOnly bool) (InvocationResult, error)

	// WithTransaction runs fn; on any returned error or non-Ok exit code
	// the implementation must have rolled back every actor-state and
	// balance change fn made.
	WithTransaction(fn func(CallManager) (InvocationResult, error)) (InvocationResult, error)

	AppendEvent(evt events.StampedEvent)

	LimiterMut() Limiter
}
