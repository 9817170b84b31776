package proofs

import (
	"errors"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/proof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickyVerifier struct{ Verifier }

func (panickyVerifier) VerifySeal(proof.SealVerifyInfo) (bool, error) {
	panic("simulated native crash")
}

func (panickyVerifier) GenerateUnsealedSectorCID(abi.RegisteredSealProof, []abi.PieceInfo) ([]byte, error) {
	return nil, errors.New("not reached")
}

func TestBarrierContainsPanicInVerifySeal(t *testing.T) {
	assert := assert.New(t)
	wrapped := Barrier(panickyVerifier{})

	ok, err := wrapped.VerifySeal(proof.SealVerifyInfo{})
	assert.False(ok)
	var perr *ErrPanicRecovered
	require.ErrorAs(t, err, &perr)
	assert.Equal("verifying seal", perr.Context)
}

type okVerifier struct{}

func (okVerifier) VerifySeal(proof.SealVerifyInfo) (bool, error)                      { return true, nil }
func (okVerifier) VerifyAggregateSeals(proof.AggregateSealVerifyProofAndInfos) (bool, error) { return true, nil }
func (okVerifier) VerifyReplicaUpdate(proof.ReplicaUpdateInfo) (bool, error)           { return true, nil }
func (okVerifier) VerifyWindowPoSt(proof.WindowPoStVerifyInfo) (bool, error)           { return true, nil }
func (okVerifier) GenerateUnsealedSectorCID(abi.RegisteredSealProof, []abi.PieceInfo) ([]byte, error) {
	return []byte("cid"), nil
}

func TestBarrierPassesThroughOnSuccess(t *testing.T) {
	assert := assert.New(t)
	wrapped := Barrier(okVerifier{})

	ok, err := wrapped.VerifySeal(proof.SealVerifyInfo{})
	assert.NoError(err)
	assert.True(ok)
}
