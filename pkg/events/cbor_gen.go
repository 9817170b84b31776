package events

import (
	"fmt"
	"io"

	"github.com/filecoin-project/go-state-types/abi"
	cbg "github.com/whyrusleeping/cbor-gen"
)

// MarshalCBOR/UnmarshalCBOR below are hand-written in the shape cbor-gen
// itself emits (tuple-encoded: each struct is a fixed-length CBOR array,
// not a map), the same wire form the teacher's own actor state types use
// (venus-shared/actors/builtin/*/*_cbor_gen.go) — events are persisted
// into the same chain-level CBOR store those types serialize into.

const maxEventStringLen = 1 << 20
const maxEventByteLen = 1 << 20
const maxEventEntries = 1 << 16

var lengthBufEntry = []byte{132}

func (t *Entry) MarshalCBOR(w io.Writer) error {
	if t == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	cw := cbg.NewCborWriter(w)
	if _, err := cw.Write(lengthBufEntry); err != nil {
		return err
	}

	if err := cw.WriteMajorTypeHeader(cbg.MajUnsignedInt, uint64(t.Flags)); err != nil {
		return err
	}

	if len(t.Key) > maxEventStringLen {
		return fmt.Errorf("value in field t.Key was too long")
	}
	if err := cw.WriteMajorTypeHeader(cbg.MajTextString, uint64(len(t.Key))); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, t.Key); err != nil {
		return err
	}

	if err := cw.WriteMajorTypeHeader(cbg.MajUnsignedInt, t.Codec); err != nil {
		return err
	}

	if len(t.Value) > maxEventByteLen {
		return fmt.Errorf("byte array in field t.Value was too long")
	}
	if err := cw.WriteMajorTypeHeader(cbg.MajByteString, uint64(len(t.Value))); err != nil {
		return err
	}
	if _, err := cw.Write(t.Value); err != nil {
		return err
	}
	return nil
}

func (t *Entry) UnmarshalCBOR(r io.Reader) (err error) {
	*t = Entry{}
	cr := cbg.NewCborReader(r)

	maj, extra, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()
	if maj != cbg.MajArray || extra != 4 {
		return fmt.Errorf("cbor input for Entry was not a 4-element array")
	}

	maj, val, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajUnsignedInt {
		return fmt.Errorf("wrong type for Entry.Flags field")
	}
	t.Flags = Flags(val)

	maj, strLen, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajTextString {
		return fmt.Errorf("wrong type for Entry.Key field")
	}
	if strLen > maxEventStringLen {
		return fmt.Errorf("Entry.Key: string too large (%d)", strLen)
	}
	keyBuf := make([]byte, strLen)
	if _, err := io.ReadFull(cr, keyBuf); err != nil {
		return err
	}
	t.Key = string(keyBuf)

	maj, val, err = cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajUnsignedInt {
		return fmt.Errorf("wrong type for Entry.Codec field")
	}
	t.Codec = val

	maj, byteLen, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajByteString {
		return fmt.Errorf("wrong type for Entry.Value field")
	}
	if byteLen > maxEventByteLen {
		return fmt.Errorf("Entry.Value: byte array too large (%d)", byteLen)
	}
	if byteLen > 0 {
		t.Value = make([]byte, byteLen)
		if _, err := io.ReadFull(cr, t.Value); err != nil {
			return err
		}
	}
	return nil
}

var lengthBufActorEvent = []byte{129}

func (t *ActorEvent) MarshalCBOR(w io.Writer) error {
	if t == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	cw := cbg.NewCborWriter(w)
	if _, err := cw.Write(lengthBufActorEvent); err != nil {
		return err
	}

	if len(t.Entries) > maxEventEntries {
		return fmt.Errorf("slice value in field t.Entries was too long")
	}
	if err := cw.WriteMajorTypeHeader(cbg.MajArray, uint64(len(t.Entries))); err != nil {
		return err
	}
	for i := range t.Entries {
		if err := t.Entries[i].MarshalCBOR(cw); err != nil {
			return err
		}
	}
	return nil
}

func (t *ActorEvent) UnmarshalCBOR(r io.Reader) (err error) {
	*t = ActorEvent{}
	cr := cbg.NewCborReader(r)

	maj, extra, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()
	if maj != cbg.MajArray || extra != 1 {
		return fmt.Errorf("cbor input for ActorEvent was not a 1-element array")
	}

	maj, n, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajArray {
		return fmt.Errorf("ActorEvent.Entries: expected array")
	}
	if n > maxEventEntries {
		return fmt.Errorf("ActorEvent.Entries: array too large (%d)", n)
	}
	t.Entries = make([]Entry, n)
	for i := range t.Entries {
		if err := t.Entries[i].UnmarshalCBOR(cr); err != nil {
			return err
		}
	}
	return nil
}

var lengthBufStampedEvent = []byte{130}

func (t *StampedEvent) MarshalCBOR(w io.Writer) error {
	if t == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	cw := cbg.NewCborWriter(w)
	if _, err := cw.Write(lengthBufStampedEvent); err != nil {
		return err
	}

	if err := cw.WriteMajorTypeHeader(cbg.MajUnsignedInt, uint64(t.Emitter)); err != nil {
		return err
	}
	return t.Event.MarshalCBOR(cw)
}

func (t *StampedEvent) UnmarshalCBOR(r io.Reader) (err error) {
	*t = StampedEvent{}
	cr := cbg.NewCborReader(r)

	maj, extra, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()
	if maj != cbg.MajArray || extra != 2 {
		return fmt.Errorf("cbor input for StampedEvent was not a 2-element array")
	}

	maj, val, err := cr.ReadHeader()
	if err != nil {
		return err
	}
	if maj != cbg.MajUnsignedInt {
		return fmt.Errorf("wrong type for StampedEvent.Emitter field")
	}
	t.Emitter = abi.ActorID(val)

	return t.Event.UnmarshalCBOR(cr)
}
