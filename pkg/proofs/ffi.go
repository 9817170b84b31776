package proofs

import (
	ffi "github.com/filecoin-project/filecoin-ffi"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/proof"
)

// FFIVerifier is the real proof verifier, backed directly by the native
// Rust proving library. Construct it with Barrier before handing it to a
// kernel (grounding: the teacher's fvm.go wraps the same package to drive
// the FVM itself; here it backs only the narrow verification surface).
type FFIVerifier struct{}

func (FFIVerifier) VerifySeal(info proof.SealVerifyInfo) (bool, error) {
	return ffi.VerifySeal(info)
}

func (FFIVerifier) VerifyAggregateSeals(info proof.AggregateSealVerifyProofAndInfos) (bool, error) {
	return ffi.VerifyAggregateSeals(info)
}

func (FFIVerifier) VerifyReplicaUpdate(info proof.ReplicaUpdateInfo) (bool, error) {
	return ffi.VerifyReplicaUpdate(info)
}

func (FFIVerifier) VerifyWindowPoSt(info proof.WindowPoStVerifyInfo) (bool, error) {
	return ffi.VerifyWindowPoSt(info)
}

func (FFIVerifier) GenerateUnsealedSectorCID(proofType abi.RegisteredSealProof, pieces []abi.PieceInfo) ([]byte, error) {
	c, err := ffi.GenerateUnsealedCID(proofType, pieces)
	if err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

var _ Verifier = FFIVerifier{}
