package kernel

import "github.com/ipfs/go-cid"

// Manifest is a simple two-way builtin-actor type<->code-CID table, the
// default ManifestLookup implementation modeled on the network's actor
// manifest (crate::machine::Machine::builtin_actors() in the kernel this
// was ported from).
type Manifest struct {
	byCode map[cid.Cid]uint32
	byType map[uint32]cid.Cid
}

// NewManifest builds a Manifest from a (type, codeCID) table. Type 0 is
// reserved for "not a builtin actor" and must not appear in entries.
func NewManifest(entries map[uint32]cid.Cid) *Manifest {
	m := &Manifest{
		byCode: make(map[cid.Cid]uint32, len(entries)),
		byType: make(map[uint32]cid.Cid, len(entries)),
	}
	for typ, code := range entries {
		m.byType[typ] = code
		m.byCode[code] = typ
	}
	return m
}

func (m *Manifest) IDByCode(code cid.Cid) uint32 {
	return m.byCode[code]
}

func (m *Manifest) CodeByID(id uint32) (cid.Cid, bool) {
	c, ok := m.byType[id]
	return c, ok
}

var _ ManifestLookup = (*Manifest)(nil)
