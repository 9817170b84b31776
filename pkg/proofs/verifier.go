// Package proofs narrows the native Filecoin proving library down to the
// handful of verification entry points the kernel needs, and wraps every
// call to it with a panic barrier: filecoin-ffi is cgo into a Rust
// library that does not guarantee graceful failure on adversarial input,
// so a crash inside it must never take the whole process down with it
// (grounding: teacher's fvm.go wrapper around the same library, plus
// original_source/fvm/src/kernel/default.rs's catch_and_log_panic).
package proofs

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/proof"
)

// Verifier is the narrow surface of filecoin-ffi the kernel consumes.
// Proof *generation* is out of scope; every method here only verifies.
type Verifier interface {
	VerifySeal(info proof.SealVerifyInfo) (bool, error)
	VerifyAggregateSeals(info proof.AggregateSealVerifyProofAndInfos) (bool, error)
	VerifyReplicaUpdate(info proof.ReplicaUpdateInfo) (bool, error)
	VerifyWindowPoSt(info proof.WindowPoStVerifyInfo) (bool, error)
	GenerateUnsealedSectorCID(proofType abi.RegisteredSealProof, pieces []abi.PieceInfo) ([]byte, error)
}
