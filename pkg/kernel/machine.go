package kernel

import (
	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
)

// ReferenceMachine is a minimal, not-for-consensus MachineContext/Machine
// implementation: documentation of the shape a real engine's machine
// fills in, and enough to run a kernel standalone (e.g. from a CLI or a
// one-off script) without a full state-tree/engine behind it. Its
// MachineID is a fresh random identifier per process, the same way the
// rest of the pack mints per-run/per-session identifiers.
type ReferenceMachine struct {
	id       string
	ctx      MachineContext
	manifest ManifestLookup
	preload  []cid.Cid
}

// NewReferenceMachine builds a ReferenceMachine stamped with a new random
// MachineID, suitable as the Machine a standalone CallManager embeds.
func NewReferenceMachine(ctx MachineContext, manifest ManifestLookup) *ReferenceMachine {
	return &ReferenceMachine{id: uuid.NewString(), ctx: ctx, manifest: manifest}
}

var _ Machine = (*ReferenceMachine)(nil)

func (m *ReferenceMachine) MachineID() string        { return m.id }
func (m *ReferenceMachine) Context() MachineContext  { return m.ctx }
func (m *ReferenceMachine) BuiltinActors() ManifestLookup { return m.manifest }

// Preload records the actor code CIDs an InstallActor call asked the
// engine to make loadable; a real engine compiles and caches them. This
// reference implementation only tracks which CIDs were requested, at a
// flat per-CID charge, so standalone callers can still observe the
// effect without a Wasm engine present.
func (m *ReferenceMachine) Preload(_ Blockstore, codes []cid.Cid) (int, error) {
	m.preload = append(m.preload, codes...)
	return len(codes) * 128, nil
}

// Preloaded returns the accumulated set of actor code CIDs every
// InstallActor call on this machine has requested so far.
func (m *ReferenceMachine) Preloaded() []cid.Cid {
	return m.preload
}
