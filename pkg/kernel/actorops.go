package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
)

// ResolveAddress resolves addr to its ID-address form.
func (k *Kernel) ResolveAddress(addr address.Address) (abi.ActorID, error) {
	timer, err := k.charge(k.callManager.PriceList().OnResolveAddress())
	if err != nil {
		return 0, err
	}
	defer timer.Stop()

	id, found, rerr := k.callManager.ResolveAddress(addr)
	if rerr != nil {
		return 0, fatalWrap(rerr, "resolving address")
	}
	if !found {
		return 0, notFoundf("actor not found")
	}
	return id, nil
}

// GetActorCodeCID returns the code CID of the actor with the given ID.
func (k *Kernel) GetActorCodeCID(id abi.ActorID) (cid.Cid, error) {
	timer, err := k.charge(k.callManager.PriceList().OnGetActorCodeCID())
	if err != nil {
		return cid.Undef, err
	}
	defer timer.Stop()

	st, found, gerr := k.callManager.GetActor(id)
	if gerr != nil {
		return cid.Undef, fatalWrap(gerr, "loading actor")
	}
	if !found {
		return cid.Undef, notFoundf("actor not found")
	}
	return st.CodeCID, nil
}

// NextActorAddress previews the address that a subsequent CreateActor
// call from the Init actor will assign; it does not itself reserve it.
func (k *Kernel) NextActorAddress() (address.Address, error) {
	return k.callManager.NextActorAddress(), nil
}

// CreateActor installs a new actor at actorID under codeCID, restricted
// to the Init actor and forbidden while read-only.
func (k *Kernel) CreateActor(codeCID cid.Cid, actorID abi.ActorID, delegated *address.Address) error {
	if k.receiver != InitActorID {
		return syscallErr(ErrForbidden, "create_actor is restricted to the init actor, called by %d", k.receiver)
	}
	if k.readOnly {
		return readOnlyErr("create_actor")
	}
	timer, err := k.charge(k.callManager.PriceList().OnCreateActor())
	if err != nil {
		return err
	}
	defer timer.Stop()

	if cerr := k.callManager.CreateActor(codeCID, actorID, delegated); cerr != nil {
		return fatalWrap(cerr, "creating actor")
	}
	return nil
}

// GetBuiltinActorType maps a builtin actor's code CID to its manifest
// type number, or 0 if codeCID is not a recognized builtin.
func (k *Kernel) GetBuiltinActorType(codeCID cid.Cid) (uint32, error) {
	timer, err := k.charge(k.callManager.PriceList().OnGetBuiltinActorType())
	if err != nil {
		return 0, err
	}
	defer timer.Stop()

	return k.Machine().BuiltinActors().IDByCode(codeCID), nil
}

// GetCodeCidForType resolves a builtin actor manifest type number to its
// code CID.
func (k *Kernel) GetCodeCidForType(typ uint32) (cid.Cid, error) {
	timer, err := k.charge(k.callManager.PriceList().OnGetCodeCidForType())
	if err != nil {
		return cid.Undef, err
	}
	defer timer.Stop()

	c, found := k.Machine().BuiltinActors().CodeByID(typ)
	if !found {
		return cid.Undef, illegalArgf("unrecognized builtin actor type %d", typ)
	}
	return c, nil
}

// BalanceOf returns the balance of another actor by ID.
func (k *Kernel) BalanceOf(actorID abi.ActorID) (abi.TokenAmount, error) {
	timer, err := k.charge(k.callManager.PriceList().OnBalanceOf())
	if err != nil {
		return abi.NewTokenAmount(0), err
	}
	defer timer.Stop()

	st, found, gerr := k.callManager.GetActor(actorID)
	if gerr != nil {
		return abi.NewTokenAmount(0), fatalWrap(gerr, "loading actor")
	}
	if !found {
		return abi.NewTokenAmount(0), notFoundf("actor not found")
	}
	return st.Balance, nil
}

// LookupDelegatedAddress returns another actor's f4 delegated address, if
// it has one.
func (k *Kernel) LookupDelegatedAddress(actorID abi.ActorID) (*address.Address, error) {
	timer, err := k.charge(k.callManager.PriceList().OnLookupDelegatedAddress())
	if err != nil {
		return nil, err
	}
	defer timer.Stop()

	st, found, gerr := k.callManager.GetActor(actorID)
	if gerr != nil {
		return nil, fatalWrap(gerr, "loading actor")
	}
	if !found {
		return nil, notFoundf("actor not found")
	}
	return st.DelegatedAddress, nil
}
