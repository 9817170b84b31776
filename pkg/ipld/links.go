// Package ipld scans content-addressed block bytes for the CIDs they
// link to, without performing a full DAG traversal: the kernel only
// needs the direct children of a single block (spec §9, "Reachability
// without full IPLD traversal").
package ipld

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagcbor"
	"github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

// Codec IDs recognized by the kernel, per the multicodec table.
const (
	CodecRaw     uint64 = 0x55
	CodecDagCBOR uint64 = 0x71
	CodecCBOR    uint64 = 0x51
)

// AllowedCodecs is the block_create allow-list (spec §4.2).
var AllowedCodecs = map[uint64]bool{
	CodecRaw:     true,
	CodecDagCBOR: true,
	CodecCBOR:    true,
}

// LinkCharger is called once per newly found link; a non-nil error it
// returns stops the scan early, and ScanForReachableLinks propagates that
// error unwrapped so the kernel can map it straight onto a gas-exhaustion
// failure.
type LinkCharger func() error

// ScanForReachableLinks walks data under codec and returns the set of CIDs
// its direct IPLD links reference, invoking charge once per link found so
// the caller can meter the scan and abort partway through. Raw blocks and
// any codec without link structure scan to an empty set.
func ScanForReachableLinks(codec uint64, data []byte, charge LinkCharger) (map[cid.Cid]struct{}, error) {
	children := make(map[cid.Cid]struct{})

	switch codec {
	case CodecRaw:
		return children, nil
	case CodecDagCBOR, CodecCBOR:
		nb := basicnode.Prototype.Any.NewBuilder()
		if err := dagcbor.Decode(nb, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decoding dag-cbor block for link scan: %w", err)
		}
		if err := walk(nb.Build(), children, charge); err != nil {
			return nil, err
		}
		return children, nil
	default:
		// Unknown but allowed codecs (there are none beyond the three
		// above today) degrade to "no links" rather than failing the
		// scan outright.
		return children, nil
	}
}

func walk(n ipld.Node, into map[cid.Cid]struct{}, charge LinkCharger) error {
	switch n.Kind() {
	case ipld.Kind_Link:
		lnk, err := n.AsLink()
		if err != nil {
			return err
		}
		cl, ok := lnk.(cidlink.Link)
		if !ok {
			return fmt.Errorf("non-CID link in block: %v", lnk)
		}
		c := cl.Cid
		if _, seen := into[c]; !seen {
			if err := charge(); err != nil {
				return err
			}
			into[c] = struct{}{}
		}
		return nil
	case ipld.Kind_Map:
		it := n.MapIterator()
		for !it.Done() {
			_, v, err := it.Next()
			if err != nil {
				return err
			}
			if err := walk(v, into, charge); err != nil {
				return err
			}
		}
		return nil
	case ipld.Kind_List:
		it := n.ListIterator()
		for !it.Done() {
			_, v, err := it.Next()
			if err != nil {
				return err
			}
			if err := walk(v, into, charge); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}
