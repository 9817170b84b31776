package proofs

import (
	logging "github.com/ipfs/go-log/v2"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/proof"
)

var log = logging.Logger("proofs")

// ErrPanicRecovered wraps a recovered panic value so callers can tell a
// contained native-library crash apart from an ordinary verification
// failure; the kernel maps it onto an IllegalArgument syscall error, not
// a fatal one.
type ErrPanicRecovered struct {
	Context string
	Value   interface{}
}

func (e *ErrPanicRecovered) Error() string {
	return "caught panic when " + e.Context
}

// guarded runs fn, converting any panic it raises into an
// *ErrPanicRecovered instead of letting it unwind into the kernel. The
// native proving library is not guaranteed crash-safe against adversarial
// input, so every call into it goes through here.
func guarded[R any](context string, fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("caught panic in native proof verification", "context", context, "panic", r)
			err = &ErrPanicRecovered{Context: context, Value: r}
		}
	}()
	return fn()
}

// Barrier wraps an unguarded Verifier so every call into it runs through
// guarded, containing a native-library crash to a single failed call.
func Barrier(v Verifier) Verifier {
	return &barrierVerifier{inner: v}
}

type barrierVerifier struct{ inner Verifier }

func (b *barrierVerifier) VerifySeal(info proof.SealVerifyInfo) (bool, error) {
	return guarded("verifying seal", func() (bool, error) { return b.inner.VerifySeal(info) })
}

func (b *barrierVerifier) VerifyAggregateSeals(info proof.AggregateSealVerifyProofAndInfos) (bool, error) {
	return guarded("verifying aggregate seals", func() (bool, error) { return b.inner.VerifyAggregateSeals(info) })
}

func (b *barrierVerifier) VerifyReplicaUpdate(info proof.ReplicaUpdateInfo) (bool, error) {
	return guarded("verifying replica update", func() (bool, error) { return b.inner.VerifyReplicaUpdate(info) })
}

func (b *barrierVerifier) VerifyWindowPoSt(info proof.WindowPoStVerifyInfo) (bool, error) {
	return guarded("verifying post", func() (bool, error) { return b.inner.VerifyWindowPoSt(info) })
}

func (b *barrierVerifier) GenerateUnsealedSectorCID(proofType abi.RegisteredSealProof, pieces []abi.PieceInfo) ([]byte, error) {
	return guarded("computing unsealed sector CID", func() ([]byte, error) {
		return b.inner.GenerateUnsealedSectorCID(proofType, pieces)
	})
}

var _ Verifier = (*barrierVerifier)(nil)
