package kernel

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// Root returns the invoked actor's current state root CID. It fails,
// recoverably, if the actor has already been deleted earlier in this
// same invocation (e.g. by a nested call that somehow re-entered and
// self-destructed — the kernel does not otherwise prevent this).
func (k *Kernel) Root() (cid.Cid, error) {
	timer, err := k.charge(k.callManager.PriceList().OnGetRoot())
	if err != nil {
		return cid.Undef, err
	}
	defer timer.Stop()

	st, serr := k.getSelf()
	if serr != nil {
		return cid.Undef, serr
	}
	if st == nil {
		return cid.Undef, syscallErr(ErrIllegalOperation, "state root requested after actor deletion")
	}
	k.blocks.MarkReachable(st.StateCID)
	return st.StateCID, nil
}

// SetRoot updates the invoked actor's state root to newRoot, which must
// already be reachable in this invocation's block registry (it was
// returned by block_link or Root, or found as a child of a block_open'd
// block, earlier in the same call).
func (k *Kernel) SetRoot(newRoot cid.Cid) error {
	if k.readOnly {
		return readOnlyErr("set_root")
	}
	timer, err := k.charge(k.callManager.PriceList().OnSetRoot())
	if err != nil {
		return err
	}
	defer timer.Stop()

	if !k.blocks.IsReachable(newRoot) {
		return notFoundf("new root cid not reachable: %s", newRoot)
	}
	st, serr := k.getSelf()
	if serr != nil {
		return serr
	}
	if st == nil {
		return syscallErr(ErrIllegalOperation, "actor deleted")
	}
	updated := *st
	updated.StateCID = newRoot
	if perr := k.callManager.SetActor(k.receiver, updated); perr != nil {
		return fatalWrap(perr, "persisting new state root")
	}
	return nil
}

// CurrentBalance returns the invoked actor's balance, including any value
// attached to the currently executing call. A deleted actor has zero
// balance by convention rather than an error.
func (k *Kernel) CurrentBalance() (abi.TokenAmount, error) {
	timer, err := k.charge(k.callManager.PriceList().OnSelfBalance())
	if err != nil {
		return abi.NewTokenAmount(0), err
	}
	defer timer.Stop()

	st, serr := k.getSelf()
	if serr != nil {
		return abi.NewTokenAmount(0), serr
	}
	if st == nil {
		return abi.NewTokenAmount(0), nil
	}
	return st.Balance, nil
}

// SelfDestruct irrevocably deletes the invoked actor. If it still holds a
// balance, burnUnspent must be true or the call is rejected: the actor
// can't silently lose funds, and declining to specify a beneficiary here
// means a caller can never redirect a self-destructing actor's balance
// by surprise. Any remaining balance goes to the reserved burnt-funds
// actor. Idempotent against an already-deleted actor.
func (k *Kernel) SelfDestruct(burnUnspent bool) error {
	if k.readOnly {
		return readOnlyErr("self_destruct")
	}
	timer, err := k.charge(k.callManager.PriceList().OnDeleteActor())
	if err != nil {
		return err
	}
	defer timer.Stop()

	balance, berr := k.CurrentBalance()
	if berr != nil {
		return berr
	}
	if !balance.IsZero() {
		if !burnUnspent {
			return syscallErr(ErrIllegalOperation, "self-destruct with unspent funds")
		}
		if terr := k.callManager.Transfer(k.receiver, BurntFundsActorID, balance); terr != nil {
			return fatalWrap(terr, "burning residual balance on self_destruct")
		}
	}
	if derr := k.callManager.DeleteActor(k.receiver); derr != nil {
		return fatalWrap(derr, "deleting self-destructed actor")
	}
	return nil
}
