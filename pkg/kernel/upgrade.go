package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// UpgradeActor replaces the invoked actor's code with newCodeCID and
// re-enters it at the upgrade entrypoint, inside a transaction: if the
// upgrade entrypoint (or anything it calls) aborts, the code-CID change
// is rolled back along with everything else. An actor already upgrading
// on the call stack may recursively upgrade again, but no actor may
// upgrade while any other actor is between it and the top of the stack —
// this prevents an upgrade from being used to smuggle a delayed handoff
// of control back to an unrelated caller.
func (k *Kernel) UpgradeActor(newCodeCID cid.Cid, paramsID BlockId) (CallResult, error) {
	if k.readOnly {
		return CallResult{}, readOnlyErr("upgrade_actor")
	}

	if err := k.checkUpgradeReentry(); err != nil {
		return CallResult{}, err
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
		st, found, gerr := cm.GetActor(k.receiver)
		if gerr != nil {
			return InvocationResult{}, fatalWrap(gerr, "loading self actor state")
		}
		if !found {
			return InvocationResult{}, syscallErr(ErrIllegalOperation, "actor deleted")
		}
		oldCodeCID := st.CodeCID

		updated := *st
		updated.CodeCID = newCodeCID
		updated.DelegatedAddress = nil
		if serr := cm.SetActor(k.receiver, updated); serr != nil {
			return InvocationResult{}, fatalWrap(serr, "persisting new code cid")
		}

		receiverAddr, aerr := address.NewIDAddress(uint64(k.receiver))
		if aerr != nil {
			return InvocationResult{}, fatalWrap(aerr, "forming self address for upgrade entrypoint")
		}
		return cm.CallActor(k.caller, receiverAddr, Entrypoint{
			IsUpgrade:  true,
			OldCodeCID: oldCodeCID,
		}, params, abi.NewTokenAmount(0), nil, false)
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
		return CallResult{}, fatalWrap(serr, "failed to store a valid return value")
	}
	return CallResult{BlockID: id, BlockStat: stat, ExitCode: result.ExitCode}, nil
}

// checkUpgradeReentry enforces the upgrade re-entry rule: find this
// actor's first appearance on the call stack under a normal Invoke entry;
// everything after that point must also be this same actor upgrading,
// never a different actor or a non-upgrade call.
func (k *Kernel) checkUpgradeReentry() error {
	stack := k.callManager.GetCallStack()
	position := -1
	for i, frame := range stack {
		if frame.ActorID == k.receiver && frame.Entrypoint == invokeFuncName {
			position = i
			break
		}
	}
	if position < 0 {
		return nil
	}
	for _, frame := range stack[position+1:] {
		if frame.ActorID != k.receiver || frame.Entrypoint != upgradeFuncName {
			return syscallErr(ErrForbidden, "calling upgrade on actor already on call stack is forbidden")
		}
	}
	return nil
}
