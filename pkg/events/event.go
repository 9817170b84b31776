// Package events defines the wire shape of an actor-emitted structured
// event (spec §4.9) and the envelope the kernel stamps onto it before
// handing it to the CallManager.
package events

import "github.com/filecoin-project/go-state-types/abi"

// Flags recognized on an event entry. Any bit outside this set is
// rejected at emit time (spec §9 open question: the allowed set is fixed
// per kernel version, not per network version).
type Flags uint64

const (
	FlagIndexedKey   Flags = 1 << 0
	FlagIndexedValue Flags = 1 << 1
)

// AllFlags is the recognized bitmask; any flags bits outside it are
// invalid.
const AllFlags = FlagIndexedKey | FlagIndexedValue

// Entry is one decoded (flags, key, codec, value) tuple.
type Entry struct {
	Flags Flags
	Key   string
	Codec uint64
	Value []byte
}

// ActorEvent is the ordered list of entries an actor emitted in one call
// to EventOps.EmitEvent.
type ActorEvent struct {
	Entries []Entry
}

// StampedEvent carries the emitting actor's ID alongside its event, which
// is what the CallManager actually records (the actor cannot forge its
// own identity in the event stream).
type StampedEvent struct {
	Emitter abi.ActorID
	Event   ActorEvent
}

func NewStampedEvent(emitter abi.ActorID, evt ActorEvent) StampedEvent {
	return StampedEvent{Emitter: emitter, Event: evt}
}
