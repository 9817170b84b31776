package gas

import "github.com/filecoin-project/go-state-types/proof"

// PriceList is the network-supplied cost table the kernel consults for
// every priced operation. The concrete numbers are a chain parameter
// (spec §1, "out of scope"); this interface only fixes their shape so the
// kernel can be built and tested against a price list without depending
// on any one network's schedule.
type PriceList interface {
	OnGetRoot() Charge
	OnSetRoot() Charge
	OnSelfBalance() Charge
	OnDeleteActor() Charge

	OnBlockOpenBase() Charge
	OnBlockOpen(size int, numLinks int) Charge
	OnBlockCreate(size int, numLinks int) Charge
	OnBlockLink(hashCode uint64, size int) Charge
	OnBlockRead(size int) Charge
	OnBlockStat() Charge
	OnBlockScanLink() Charge

	OnMessageContext() Charge
	OnNetworkContext() Charge
	OnTipsetCID(lookback int64) Charge

	OnGetRandomness(lookback int64) Charge

	OnHashing(hasher uint64, size int) Charge
	OnVerifyAggregateSignature(signers int, totalBytes int) Charge
	OnRecoverSecpPublicKey() Charge
	OnComputeUnsealedSectorCID(numPieces int) Charge
	OnVerifyPost(numProofs, numSectors int) Charge
	OnVerifyConsensusFault(h1Len, h2Len, extraLen int) Charge
	OnVerifySeal(info proof.SealVerifyInfo) Charge
	OnVerifyAggregateSeals(numProofs int) Charge
	OnVerifyReplicaUpdate() Charge

	OnResolveAddress() Charge
	OnGetActorCodeCID() Charge
	OnCreateActor() Charge
	OnBalanceOf() Charge
	OnLookupDelegatedAddress() Charge
	OnGetBuiltinActorType() Charge
	OnGetCodeCidForType() Charge
	OnInstallActor(size int) Charge

	OnActorEvent(entries, keysLen, valuesLen int) Charge
}
