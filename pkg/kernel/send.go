package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
)

// Send performs a synchronous cross-actor call: the kernel's sole way to
// invoke another actor. It runs inside a transaction so that any state
// and balance changes are rolled back together if the callee (or
// anything it in turn calls) aborts.
func (k *Kernel) Send(recipient address.Address, method abi.MethodNum, paramsID BlockId, value abi.TokenAmount, gasLimit *gas.Gas, flags SendFlags) (CallResult, error) {
	from := k.receiver
	readOnly := k.readOnly || flags.ReadOnly

	if readOnly && !value.IsZero() {
		return CallResult{}, readOnlyErr("transfer value")
	}

	var params *Block
	if paramsID != NoDataBlockID {
		blk, serr := k.blocks.Get(paramsID)
		if serr != nil {
			return CallResult{}, serr
		}
		params = blk
	}

	if k.blocks.IsFull() {
		return CallResult{}, syscallErr(ErrLimitExceeded, "cannot store return block")
	}

	result, err := k.callManager.WithTransaction(func(cm CallManager) (InvocationResult, error) {
		return cm.CallActor(from, recipient, Entrypoint{Method: method}, params, value, gasLimit, readOnly)
	})
	if err != nil {
		return CallResult{}, err
	}

	if result.Value == nil {
		return CallResult{BlockID: NoDataBlockID, BlockStat: BlockStat{}, ExitCode: result.ExitCode}, nil
	}

	stat := result.Value.Stat()
	id, serr := k.blocks.PutReachable(result.Value)
	if serr != nil {
		// The callee already validated this block; failing to re-store
		// it here means our own registry bookkeeping is broken.
		return CallResult{}, fatalWrap(serr, "failed to store a valid return value")
	}
	return CallResult{BlockID: id, BlockStat: stat, ExitCode: result.ExitCode}, nil
}
