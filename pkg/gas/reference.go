package gas

import "github.com/filecoin-project/go-state-types/proof"

// ReferencePriceList is a linear, not-for-consensus price table used by
// kernel tests and as documentation of the shape a real schedule fills
// in. Networks running this kernel for real must supply their own
// PriceList; this one exists only so the package is usable standalone.
type ReferencePriceList struct {
	PerByte    Gas
	PerLink    Gas
	Flat       Gas
	PerSigner  Gas
}

func NewReferencePriceList() *ReferencePriceList {
	return &ReferencePriceList{PerByte: 1, PerLink: 10, Flat: 100, PerSigner: 1000}
}

func (p *ReferencePriceList) flat(name string) Charge { return NewCharge(name, p.Flat) }

func (p *ReferencePriceList) OnGetRoot() Charge      { return p.flat("OnGetRoot") }
func (p *ReferencePriceList) OnSetRoot() Charge      { return p.flat("OnSetRoot") }
func (p *ReferencePriceList) OnSelfBalance() Charge  { return p.flat("OnSelfBalance") }
func (p *ReferencePriceList) OnDeleteActor() Charge  { return p.flat("OnDeleteActor") }

func (p *ReferencePriceList) OnBlockOpenBase() Charge { return p.flat("OnBlockOpenBase") }

func (p *ReferencePriceList) OnBlockOpen(size int, numLinks int) Charge {
	return NewCharge("OnBlockOpen", p.Flat+Gas(size)*p.PerByte+Gas(numLinks)*p.PerLink)
}

func (p *ReferencePriceList) OnBlockCreate(size int, numLinks int) Charge {
	return NewCharge("OnBlockCreate", p.Flat+Gas(size)*p.PerByte+Gas(numLinks)*p.PerLink)
}

func (p *ReferencePriceList) OnBlockLink(hashCode uint64, size int) Charge {
	return NewCharge("OnBlockLink", p.Flat+Gas(size)*p.PerByte)
}

func (p *ReferencePriceList) OnBlockRead(size int) Charge {
	return NewCharge("OnBlockRead", Gas(size)*p.PerByte)
}

func (p *ReferencePriceList) OnBlockStat() Charge     { return p.flat("OnBlockStat") }
func (p *ReferencePriceList) OnBlockScanLink() Charge { return NewCharge("OnBlockScanLink", p.PerLink) }

func (p *ReferencePriceList) OnMessageContext() Charge { return p.flat("OnMessageContext") }
func (p *ReferencePriceList) OnNetworkContext() Charge { return p.flat("OnNetworkContext") }

func (p *ReferencePriceList) OnTipsetCID(lookback int64) Charge {
	return NewCharge("OnTipsetCID", p.Flat+Gas(lookback)*p.PerByte)
}

func (p *ReferencePriceList) OnGetRandomness(lookback int64) Charge {
	return NewCharge("OnGetRandomness", p.Flat+Gas(lookback)*p.PerByte)
}

func (p *ReferencePriceList) OnHashing(hasher uint64, size int) Charge {
	return NewCharge("OnHashing", p.Flat+Gas(size)*p.PerByte)
}

func (p *ReferencePriceList) OnVerifyAggregateSignature(signers int, totalBytes int) Charge {
	return NewCharge("OnVerifyAggregateSignature", Gas(signers)*p.PerSigner+Gas(totalBytes)*p.PerByte)
}

func (p *ReferencePriceList) OnRecoverSecpPublicKey() Charge {
	return p.flat("OnRecoverSecpPublicKey")
}

func (p *ReferencePriceList) OnComputeUnsealedSectorCID(numPieces int) Charge {
	return NewCharge("OnComputeUnsealedSectorCID", p.Flat+Gas(numPieces)*p.PerSigner)
}

func (p *ReferencePriceList) OnVerifyPost(numProofs, numSectors int) Charge {
	return NewCharge("OnVerifyPost", p.Flat+Gas(numProofs+numSectors)*p.PerSigner)
}

func (p *ReferencePriceList) OnVerifyConsensusFault(h1Len, h2Len, extraLen int) Charge {
	return NewCharge("OnVerifyConsensusFault", p.Flat+Gas(h1Len+h2Len+extraLen)*p.PerByte)
}

func (p *ReferencePriceList) OnVerifySeal(info proof.SealVerifyInfo) Charge {
	return NewCharge("OnVerifySeal", p.Flat+Gas(len(info.Proof))*p.PerByte)
}

func (p *ReferencePriceList) OnVerifyAggregateSeals(numProofs int) Charge {
	return NewCharge("OnVerifyAggregateSeals", p.Flat+Gas(numProofs)*p.PerSigner)
}

func (p *ReferencePriceList) OnVerifyReplicaUpdate() Charge {
	return p.flat("OnVerifyReplicaUpdate")
}

func (p *ReferencePriceList) OnResolveAddress() Charge        { return p.flat("OnResolveAddress") }
func (p *ReferencePriceList) OnGetActorCodeCID() Charge       { return p.flat("OnGetActorCodeCID") }
func (p *ReferencePriceList) OnCreateActor() Charge           { return p.flat("OnCreateActor") }
func (p *ReferencePriceList) OnBalanceOf() Charge              { return p.flat("OnBalanceOf") }
func (p *ReferencePriceList) OnLookupDelegatedAddress() Charge { return p.flat("OnLookupDelegatedAddress") }
func (p *ReferencePriceList) OnGetBuiltinActorType() Charge    { return p.flat("OnGetBuiltinActorType") }
func (p *ReferencePriceList) OnGetCodeCidForType() Charge      { return p.flat("OnGetCodeCidForType") }

func (p *ReferencePriceList) OnInstallActor(size int) Charge {
	return NewCharge("OnInstallActor", p.Flat+Gas(size)*p.PerByte)
}

func (p *ReferencePriceList) OnActorEvent(entries, keysLen, valuesLen int) Charge {
	return NewCharge("OnActorEvent", p.Flat+Gas(entries)*p.PerLink+Gas(keysLen+valuesLen)*p.PerByte)
}

var _ PriceList = (*ReferencePriceList)(nil)
