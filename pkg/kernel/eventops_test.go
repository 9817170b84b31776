package kernel

import (
	"bytes"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"

	"github.com/filecoin-project/go-fvm-kernel/pkg/ipld"
)

func TestEmitEventSplitsPackedBuffersByHeader(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{})

	keys := []byte("abc")
	values := []byte("hello!")
	headers := []EventHeader{
		{KeyLen: 1, ValLen: 5, Codec: ipld.CodecRaw},
		{KeyLen: 2, ValLen: 1, Codec: ipld.CodecRaw},
	}

	err := k.EmitEvent(headers, keys, values)
	assert.NoError(err)
	assert.Len(cm.events, 1)
	entries := cm.events[0].Event.Entries
	assert.Equal("a", entries[0].Key)
	assert.Equal("hello", string(entries[0].Value))
	assert.Equal("bc", entries[1].Key)
	assert.Equal("!", string(entries[1].Value))
	assert.Equal(abi.ActorID(10), cm.events[0].Emitter)
}

func TestEmitEventRejectsTooManyEntries(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{})

	headers := make([]EventHeader, maxEventEntries+1)
	err := k.EmitEvent(headers, nil, nil)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrLimitExceeded, serr.Number)
}

func TestEmitEventRejectsOversizeKey(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{})

	headers := []EventHeader{{KeyLen: maxEventKeyLen + 1, Codec: ipld.CodecRaw}}
	keys := bytes.Repeat([]byte("k"), maxEventKeyLen+1)
	err := k.EmitEvent(headers, keys, nil)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrLimitExceeded, serr.Number)
}

func TestEmitEventRejectsNonRawCodec(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := newTestKernel(cm, 1, 10, ActorState{})

	headers := []EventHeader{{KeyLen: 1, Codec: ipld.CodecDagCBOR}}
	err := k.EmitEvent(headers, []byte("k"), nil)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrIllegalCodec, serr.Number)
}

func TestEmitEventReadOnlyForbidden(t *testing.T) {
	assert := assert.New(t)
	cm := newFakeCallManager(1_000_000)
	k := New(cm, NewBlockRegistry(nil, cid.Undef), 1, 10, 0, abi.NewTokenAmount(0), true, Features{})

	err := k.EmitEvent(nil, nil, nil)
	var serr *SyscallError
	assert.ErrorAs(err, &serr)
	assert.Equal(ErrReadOnly, serr.Number)
}
