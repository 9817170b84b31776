package kernel

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgradeActorForbiddenWhenUnrelatedActorIsOnStack(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{CodeCID: sampleCID(t, "old-code")})

	// Actor 10 called Invoke, then actor 99 (unrelated) is on top: actor
	// 10 may not now upgrade out from under actor 99.
	cm.callStack = []CallStackFrame{
		{ActorID: 10, Entrypoint: invokeFuncName},
		{ActorID: 99, Entrypoint: invokeFuncName},
	}

	_, err := k.UpgradeActor(sampleCID(t, "new-code"), NoDataBlockID)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrForbidden, serr.Number)
}

func TestUpgradeActorAllowsSelfRecursion(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{CodeCID: sampleCID(t, "old-code")})

	cm.callStack = []CallStackFrame{
		{ActorID: 10, Entrypoint: invokeFuncName},
		{ActorID: 10, Entrypoint: upgradeFuncName},
	}

	_, err := k.UpgradeActor(sampleCID(t, "new-code"), NoDataBlockID)
	assert.NoError(err)
}

func TestUpgradeActorPersistsNewCodeCIDAndClearsDelegatedAddress(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	delegated, err := address.NewDelegatedAddress(10, []byte{1, 2, 3})
	require.NoError(t, err)
	k := newTestKernel(cm, 1, 10, ActorState{CodeCID: sampleCID(t, "old-code"), DelegatedAddress: &delegated})

	newCode := sampleCID(t, "new-code")
	_, err = k.UpgradeActor(newCode, NoDataBlockID)
	require.NoError(t, err)

	st, found, _ := cm.GetActor(10)
	assert.True(found)
	assert.Equal(newCode, st.CodeCID)
	assert.Nil(st.DelegatedAddress)
}

func TestUpgradeActorReadOnlyForbidden(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := New(cm, NewBlockRegistry(nil, cid.Undef), 1, 10, 0, abi.NewTokenAmount(0), true, Features{})

	_, err := k.UpgradeActor(sampleCID(t, "new-code"), NoDataBlockID)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrReadOnly, serr.Number)
}
