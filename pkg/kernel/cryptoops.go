package kernel

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/herumi/bls-eth-go-binary/bls"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/proof"

	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
)

const (
	blsSigLen          = 96
	blsPubLen          = 48
	secpSigLen         = 65
	secpPubLen         = 65
	secpMessageHashLen = 32
)

// Hash computes the digest of data under the given multihash code,
// returning the raw digest bytes (never truncated, and not wrapped in a
// multihash envelope).
func (k *Kernel) Hash(code uint64, data []byte) ([]byte, error) {
	h, serr := newHasher(code)
	if serr != nil {
		return nil, serr
	}
	timer, err := k.charge(k.callManager.PriceList().OnHashing(code, len(data)))
	if err != nil {
		return nil, err
	}
	defer timer.Stop()

	h.Write(data)
	return h.Sum(nil), nil
}

// VerifyBlsAggregate verifies an aggregate BLS signature over the
// concatenation of plaintexts, one per public key, each plaintext's
// length given by plaintextLens in the same order as pubKeys.
func (k *Kernel) VerifyBlsAggregate(aggregateSig [blsSigLen]byte, pubKeys [][blsPubLen]byte, plaintextsConcat []byte, plaintextLens []uint32) (bool, error) {
	if len(pubKeys) != len(plaintextLens) {
		return false, illegalArgf("unequal numbers of bls public keys (%d) and plaintexts (%d)", len(pubKeys), len(plaintextLens))
	}

	timer, err := k.charge(k.callManager.PriceList().OnVerifyAggregateSignature(len(pubKeys), len(plaintextsConcat)))
	if err != nil {
		return false, err
	}
	defer timer.Stop()

	plaintexts := make([][]byte, len(plaintextLens))
	var offset uint64
	for i, l := range plaintextLens {
		start := offset
		offset += uint64(l)
		if offset > uint64(len(plaintextsConcat)) {
			return false, illegalArgf("bls signature plaintext %d out of bounds", i)
		}
		plaintexts[i] = plaintextsConcat[start:offset]
	}
	if offset != uint64(len(plaintextsConcat)) {
		return false, illegalArgf("plaintexts buffer length doesn't match declared lengths")
	}

	var sig bls.Sign
	if err := sig.Deserialize(aggregateSig[:]); err != nil {
		return false, nil
	}
	pubs := make([]bls.PublicKey, len(pubKeys))
	msgs := make([][]byte, len(plaintexts))
	for i, pk := range pubKeys {
		if err := pubs[i].Deserialize(pk[:]); err != nil {
			return false, nil
		}
		msgs[i] = plaintexts[i]
	}
	// bls-eth-go-binary is a cgo binding onto a native pairing library;
	// run the actual verification behind the panic barrier.
	return panicBarrier("verifying bls aggregate signature", func() (bool, error) {
		return sig.VerifyAggregateHashes(pubs, msgs), nil
	})
}

// RecoverSecpPublicKey recovers the uncompressed secp256k1 public key
// whose signature over hash is signature.
func (k *Kernel) RecoverSecpPublicKey(hash [secpMessageHashLen]byte, signature [secpSigLen]byte) ([secpPubLen]byte, error) {
	var out [secpPubLen]byte
	timer, err := k.charge(k.callManager.PriceList().OnRecoverSecpPublicKey())
	if err != nil {
		return out, err
	}
	defer timer.Stop()

	pub, _, rerr := btcec.RecoverCompact(signature[:], hash[:])
	if rerr != nil {
		return out, illegalArgf("public key recovery failed: %s", rerr)
	}
	uncompressed := pub.SerializeUncompressed()
	copy(out[:], uncompressed)
	return out, nil
}

// ComputeUnsealedSectorCID assembles the unsealed-sector CID for a
// sector built from pieces under proofType, running the native assembler
// behind the panic barrier.
func (k *Kernel) ComputeUnsealedSectorCID(proofType abi.RegisteredSealProof, pieces []abi.PieceInfo) ([]byte, error) {
	timer, err := k.charge(k.callManager.PriceList().OnComputeUnsealedSectorCID(len(pieces)))
	if err != nil {
		return nil, err
	}
	defer timer.Stop()

	out, verr := k.callManager.Verifier().GenerateUnsealedSectorCID(proofType, pieces)
	if verr != nil {
		return nil, illegalArgf("computing unsealed sector CID: %s", verr)
	}
	return out, nil
}

// VerifyPost verifies a Window PoSt proof over the given challenged
// sectors.
func (k *Kernel) VerifyPost(info proof.WindowPoStVerifyInfo) (bool, error) {
	timer, err := k.charge(k.callManager.PriceList().OnVerifyPost(len(info.Proofs), len(info.ChallengedSectors)))
	if err != nil {
		return false, err
	}
	defer timer.Stop()

	ok, verr := k.callManager.Verifier().VerifyWindowPoSt(info)
	if verr != nil {
		return false, illegalArgf("verifying window post: %s", verr)
	}
	return ok, nil
}

// VerifyConsensusFault asks the chain extern whether h1 and h2 (and the
// optional witness extra) constitute a consensus fault, folding any gas
// the extern reports spending on signature checks into this invocation's
// own charge regardless of the outcome.
func (k *Kernel) VerifyConsensusFault(h1, h2, extra []byte) (bool, abi.ActorID, abi.ChainEpoch, error) {
	timer, err := k.charge(k.callManager.PriceList().OnVerifyConsensusFault(len(h1), len(h2), len(extra)))
	if err != nil {
		return false, 0, 0, err
	}
	defer timer.Stop()

	fault, spentGas, verr := k.callManager.Externs().VerifyConsensusFault(h1, h2, extra)
	if spentGas > 0 {
		k.callManager.GasTracker().TryCharge(gas.NewCharge("VerifyConsensusFaultExtern", gas.Gas(spentGas)))
	}
	if verr != nil {
		return false, 0, 0, fatalWrap(verr, "verifying consensus fault")
	}
	if fault == nil || fault.Type == 0 {
		return false, 0, 0, nil
	}
	return true, fault.Target, fault.Epoch, nil
}

// BatchVerifySeals verifies each SealVerifyInfo independently and in
// parallel, returning one bool per input in the same order. A panic
// verifying any single seal is contained to that seal's result. Gas for
// every entry is pre-charged, sized by that entry's own proof data,
// before any verification work begins.
func (k *Kernel) BatchVerifySeals(infos []proof.SealVerifyInfo) ([]bool, error) {
	for _, info := range infos {
		timer, err := k.charge(k.callManager.PriceList().OnVerifySeal(info))
		if err != nil {
			return nil, err
		}
		timer.Stop()
	}
	return batchVerifySeals(k.callManager.Verifier(), infos)
}

// VerifyAggregateSeals verifies a SNARK aggregating many individual seal
// proofs in one check.
func (k *Kernel) VerifyAggregateSeals(agg proof.AggregateSealVerifyProofAndInfos) (bool, error) {
	timer, err := k.charge(k.callManager.PriceList().OnVerifyAggregateSeals(len(agg.Infos)))
	if err != nil {
		return false, err
	}
	defer timer.Stop()

	ok, verr := k.callManager.Verifier().VerifyAggregateSeals(agg)
	if verr != nil {
		return false, illegalArgf("verifying aggregate seals: %s", verr)
	}
	return ok, nil
}

// VerifyReplicaUpdate verifies a sector's snap-deal replica update proof.
func (k *Kernel) VerifyReplicaUpdate(info proof.ReplicaUpdateInfo) (bool, error) {
	timer, err := k.charge(k.callManager.PriceList().OnVerifyReplicaUpdate())
	if err != nil {
		return false, err
	}
	defer timer.Stop()

	ok, verr := k.callManager.Verifier().VerifyReplicaUpdate(info)
	if verr != nil {
		return false, illegalArgf("verifying replica update: %s", verr)
	}
	return ok, nil
}
