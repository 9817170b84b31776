// Package kernel implements the per-invocation syscall façade an actor
// uses to read/write blocks, send messages, manage its own state root,
// hash and verify signatures/proofs, query chain context, draw
// randomness, and emit events. One Kernel is constructed per actor call
// by a CallManager and destructured back into (CallManager, BlockRegistry)
// when the call returns (spec §3 "Lifecycle").
package kernel

import (
	"github.com/filecoin-project/go-state-types/abi"
	logging "github.com/ipfs/go-log/v2"

	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
)

var vmlog = logging.Logger("kernel")

// Kernel is the default kernel implementation: the object every operation
// group in this package is a method set on. It holds no state besides
// what the CallManager lent it and its own private BlockRegistry.
type Kernel struct {
	caller        abi.ActorID
	receiver      abi.ActorID
	method        abi.MethodNum
	valueReceived abi.TokenAmount
	readOnly      bool

	// callManager is exclusively owned by this kernel for as long as it
	// is executing; Send and UpgradeActor temporarily hand it to a child
	// kernel and reclaim it on return (spec §5).
	callManager CallManager
	blocks      *BlockRegistry
	features    Features
}

// Features gates optional kernel behavior that upstream networks enable
// one at a time rather than compiling in or out, mirroring the Rust
// kernel's Cargo feature flags (e.g. "m2-native") with a plain struct
// since Go has no first-class conditional compilation for this shape.
type Features struct {
	// M2Native enables InstallActor, letting an init-like actor register
	// user-supplied native actor code outside the builtin manifest.
	M2Native bool
}

// New constructs a kernel for one invocation. blocks must already have
// the call's parameters preloaded (conventionally at handle 1) by the
// CallManager.
func New(cm CallManager, blocks *BlockRegistry, caller, receiver abi.ActorID, method abi.MethodNum, valueReceived abi.TokenAmount, readOnly bool, features Features) *Kernel {
	return &Kernel{
		caller:        caller,
		receiver:      receiver,
		method:        method,
		valueReceived: valueReceived,
		readOnly:      readOnly,
		callManager:   cm,
		blocks:        blocks,
		features:      features,
	}
}

// IntoParts destructures the kernel back into its borrowed CallManager and
// its BlockRegistry, at the end of the invocation.
func (k *Kernel) IntoParts() (CallManager, *BlockRegistry) {
	return k.callManager, k.blocks
}

func (k *Kernel) Machine() Machine { return k.callManager.Machine() }

// charge deducts c from the call stack's shared gas budget and starts a
// timer for the caller to Stop when the priced operation finishes. The
// returned error, when non-nil, is always a *gas.OutOfGasError: gas
// exhaustion aborts the whole message rather than being classified as a
// SyscallError the guest could catch (spec §7).
func (k *Kernel) charge(c gas.Charge) (*gas.Timer, error) {
	return k.callManager.GasTracker().Charge(c)
}

// ReadOnly reports this invocation's (monotone) read-only flag.
func (k *Kernel) ReadOnly() bool { return k.readOnly }

// getSelf returns the invoked actor's state, or nil if it has been
// deleted (not an error in itself; callers decide whether that matters).
func (k *Kernel) getSelf() (*ActorState, error) {
	st, found, err := k.callManager.GetActor(k.receiver)
	if err != nil {
		return nil, fatalWrap(err, "loading self actor state")
	}
	if !found {
		return nil, nil
	}
	return st, nil
}

// panicBarrier runs fn and converts any panic it raises into a classified
// IllegalArgument error, logging the panic message. Native cryptographic
// libraries are not crash-safe on adversarial input; without this,
// a crafted input could produce undefined host-side behavior that
// diverges across implementations (spec §4.5, §9).
func panicBarrier[R any](context string, fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			vmlog.Errorw("caught panic in kernel native call", "context", context, "panic", r)
			err = syscallErr(ErrIllegalArgument, "caught panic while %s: %v", context, r)
		}
	}()
	return fn()
}

func illegalArgf(format string, args ...interface{}) *SyscallError {
	return syscallErr(ErrIllegalArgument, format, args...)
}

func notFoundf(format string, args ...interface{}) *SyscallError {
	return syscallErr(ErrNotFound, format, args...)
}

func readOnlyErr(op string) *SyscallError {
	return syscallErr(ErrReadOnly, "cannot %s while read-only", op)
}
