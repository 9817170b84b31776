package kernel

import (
	"unicode/utf8"

	"github.com/filecoin-project/go-fvm-kernel/pkg/events"
	"github.com/filecoin-project/go-fvm-kernel/pkg/ipld"
)

const (
	maxEventEntries       = 255
	maxEventKeyLen        = 31
	maxTotalEventValueLen = 8 << 10
)

// EventHeader is one fixed-size entry descriptor from an EmitEvent call;
// the variable-length key and value bytes for all entries are packed
// into the two following buffers, sliced by each header's declared
// length, so the guest can describe arbitrarily many entries without a
// separate allocation per field.
type EventHeader struct {
	Flags  events.Flags
	KeyLen uint32
	ValLen uint32
	Codec  uint64
}

// EmitEvent records one structured event against the invoked actor,
// parsing headers against the packed keys/values buffers.
func (k *Kernel) EmitEvent(headers []EventHeader, keys []byte, values []byte) error {
	if k.readOnly {
		return readOnlyErr("emit_event")
	}

	timer, err := k.charge(k.callManager.PriceList().OnActorEvent(len(headers), len(keys), len(values)))
	if err != nil {
		return err
	}
	defer timer.Stop()

	if len(headers) > maxEventEntries {
		return syscallErr(ErrLimitExceeded, "event exceeded max entries: %d > %d", len(headers), maxEventEntries)
	}
	if len(values) > maxTotalEventValueLen {
		return syscallErr(ErrLimitExceeded, "total event value lengths exceeded the max size: %d > %d", len(values), maxTotalEventValueLen)
	}
	if !utf8.Valid(keys) {
		return illegalArgf("invalid event key")
	}

	entries := make([]events.Entry, 0, len(headers))
	var keyOffset, valOffset uint64
	for _, h := range headers {
		if h.Flags&^events.AllFlags != 0 {
			return illegalArgf("event flags are invalid: %d", h.Flags)
		}
		if h.KeyLen > maxEventKeyLen {
			return syscallErr(ErrLimitExceeded, "event key exceeded max size: %d > %d", h.KeyLen, maxEventKeyLen)
		}
		if h.ValLen > maxTotalEventValueLen {
			return illegalArgf("event entry value out of range")
		}
		if h.Codec != ipld.CodecRaw {
			return syscallErr(ErrIllegalCodec, "event codec must be raw, was: %d", h.Codec)
		}

		keyEnd := keyOffset + uint64(h.KeyLen)
		if keyEnd > uint64(len(keys)) {
			return illegalArgf("event entry key out of range")
		}
		valEnd := valOffset + uint64(h.ValLen)
		if valEnd > uint64(len(values)) {
			return illegalArgf("event entry value out of range")
		}

		key := keys[keyOffset:keyEnd]
		value := values[valOffset:valEnd]
		entries = append(entries, events.Entry{
			Flags: h.Flags,
			Key:   string(key),
			Codec: h.Codec,
			Value: append([]byte(nil), value...),
		})

		keyOffset, valOffset = keyEnd, valEnd
	}

	if keyOffset != uint64(len(keys)) {
		return illegalArgf("event key buffer length is too large: %d < %d", keyOffset, len(keys))
	}
	if valOffset != uint64(len(values)) {
		return illegalArgf("event value buffer length is too large: %d < %d", valOffset, len(values))
	}

	k.callManager.AppendEvent(events.NewStampedEvent(k.receiver, events.ActorEvent{Entries: entries}))
	return nil
}
