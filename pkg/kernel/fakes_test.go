package kernel

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/proof"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/filecoin-project/go-fvm-kernel/pkg/events"
	"github.com/filecoin-project/go-fvm-kernel/pkg/externs"
	"github.com/filecoin-project/go-fvm-kernel/pkg/gas"
	"github.com/filecoin-project/go-fvm-kernel/pkg/proofs"
)

// zeroPriceList prices every operation at zero gas, so tests exercise
// behavior rather than the chain's (out-of-scope) cost schedule.
type zeroPriceList struct{}

func (zeroPriceList) OnGetRoot() gas.Charge                                   { return gas.NewCharge("GetRoot", 0) }
func (zeroPriceList) OnSetRoot() gas.Charge                                   { return gas.NewCharge("SetRoot", 0) }
func (zeroPriceList) OnSelfBalance() gas.Charge                               { return gas.NewCharge("SelfBalance", 0) }
func (zeroPriceList) OnDeleteActor() gas.Charge                               { return gas.NewCharge("DeleteActor", 0) }
func (zeroPriceList) OnBlockOpenBase() gas.Charge                             { return gas.NewCharge("BlockOpenBase", 0) }
func (zeroPriceList) OnBlockOpen(int, int) gas.Charge                         { return gas.NewCharge("BlockOpen", 0) }
func (zeroPriceList) OnBlockCreate(int, int) gas.Charge                       { return gas.NewCharge("BlockCreate", 0) }
func (zeroPriceList) OnBlockLink(uint64, int) gas.Charge                      { return gas.NewCharge("BlockLink", 0) }
func (zeroPriceList) OnBlockRead(int) gas.Charge                              { return gas.NewCharge("BlockRead", 0) }
func (zeroPriceList) OnBlockStat() gas.Charge                                 { return gas.NewCharge("BlockStat", 0) }
func (zeroPriceList) OnBlockScanLink() gas.Charge                             { return gas.NewCharge("BlockScanLink", 0) }
func (zeroPriceList) OnMessageContext() gas.Charge                           { return gas.NewCharge("MessageContext", 0) }
func (zeroPriceList) OnNetworkContext() gas.Charge                           { return gas.NewCharge("NetworkContext", 0) }
func (zeroPriceList) OnTipsetCID(int64) gas.Charge                           { return gas.NewCharge("TipsetCID", 0) }
func (zeroPriceList) OnGetRandomness(int64) gas.Charge                       { return gas.NewCharge("GetRandomness", 0) }
func (zeroPriceList) OnHashing(uint64, int) gas.Charge                       { return gas.NewCharge("Hashing", 0) }
func (zeroPriceList) OnVerifyAggregateSignature(int, int) gas.Charge        { return gas.NewCharge("VerifyAggregateSignature", 0) }
func (zeroPriceList) OnRecoverSecpPublicKey() gas.Charge                    { return gas.NewCharge("RecoverSecpPublicKey", 0) }
func (zeroPriceList) OnComputeUnsealedSectorCID(int) gas.Charge             { return gas.NewCharge("ComputeUnsealedSectorCID", 0) }
func (zeroPriceList) OnVerifyPost(int, int) gas.Charge                      { return gas.NewCharge("VerifyPost", 0) }
func (zeroPriceList) OnVerifyConsensusFault(int, int, int) gas.Charge       { return gas.NewCharge("VerifyConsensusFault", 0) }
func (zeroPriceList) OnVerifySeal(proof.SealVerifyInfo) gas.Charge           { return gas.NewCharge("VerifySeal", 0) }
func (zeroPriceList) OnVerifyAggregateSeals(int) gas.Charge                  { return gas.NewCharge("VerifyAggregateSeals", 0) }
func (zeroPriceList) OnVerifyReplicaUpdate() gas.Charge                      { return gas.NewCharge("VerifyReplicaUpdate", 0) }
func (zeroPriceList) OnResolveAddress() gas.Charge                          { return gas.NewCharge("ResolveAddress", 0) }
func (zeroPriceList) OnGetActorCodeCID() gas.Charge                         { return gas.NewCharge("GetActorCodeCID", 0) }
func (zeroPriceList) OnCreateActor() gas.Charge                              { return gas.NewCharge("CreateActor", 0) }
func (zeroPriceList) OnBalanceOf() gas.Charge                                { return gas.NewCharge("BalanceOf", 0) }
func (zeroPriceList) OnLookupDelegatedAddress() gas.Charge                  { return gas.NewCharge("LookupDelegatedAddress", 0) }
func (zeroPriceList) OnGetBuiltinActorType() gas.Charge                     { return gas.NewCharge("GetBuiltinActorType", 0) }
func (zeroPriceList) OnGetCodeCidForType() gas.Charge                       { return gas.NewCharge("GetCodeCidForType", 0) }
func (zeroPriceList) OnInstallActor(int) gas.Charge                         { return gas.NewCharge("InstallActor", 0) }
func (zeroPriceList) OnActorEvent(int, int, int) gas.Charge                 { return gas.NewCharge("ActorEvent", 0) }

var _ gas.PriceList = zeroPriceList{}

// fakeBlockstore is an in-memory Blockstore.
type fakeBlockstore struct {
	data map[cid.Cid][]byte
}

func newFakeBlockstore() *fakeBlockstore {
	return &fakeBlockstore{data: make(map[cid.Cid][]byte)}
}

func (b *fakeBlockstore) Get(c cid.Cid) ([]byte, bool, error) {
	d, ok := b.data[c]
	return d, ok, nil
}

func (b *fakeBlockstore) PutKeyed(c cid.Cid, data []byte) error {
	b.data[c] = data
	return nil
}

// fakeManifest is a trivial empty ManifestLookup; tests that need builtin
// actor types populate a *Manifest directly instead.
type fakeManifest struct{}

func (fakeManifest) IDByCode(cid.Cid) uint32          { return 0 }
func (fakeManifest) CodeByID(uint32) (cid.Cid, bool)  { return cid.Undef, false }

// fakeMachine is a minimal Machine: a fixed context and manifest, with
// Preload recording what it was asked to load.
type fakeMachine struct {
	id       string
	ctx      MachineContext
	manifest ManifestLookup
	preloaded []cid.Cid
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{
		id:       "fake-machine",
		manifest: fakeManifest{},
		ctx: MachineContext{
			Epoch:        100,
			Timestamp:    1700000000,
			BaseFee:      big.NewInt(0),
			MaxBlockSize: 1 << 20,
			CircSupply:   abi.NewTokenAmount(0),
			Network: NetworkConfig{
				ChainID:        314,
				NetworkVersion: 21,
				ActorDebugging: true,
			},
		},
	}
}

func (m *fakeMachine) MachineID() string           { return m.id }
func (m *fakeMachine) Context() MachineContext      { return m.ctx }
func (m *fakeMachine) BuiltinActors() ManifestLookup { return m.manifest }
func (m *fakeMachine) Preload(bs Blockstore, codes []cid.Cid) (int, error) {
	m.preloaded = append(m.preloaded, codes...)
	return len(codes) * 128, nil
}

// fakeExterns is a scriptable externs.Externs: every hook defaults to a
// zero value and can be overridden per test.
type fakeExterns struct {
	chainRandomness  [externs.RandomnessLength]byte
	beaconRandomness [externs.RandomnessLength]byte
	fault            *externs.ConsensusFault
	faultGas         int64
	faultErr         error
	tipsetCID        cid.Cid
	tipsetErr        error
}

func (e *fakeExterns) GetChainRandomness(abi.ChainEpoch) ([externs.RandomnessLength]byte, error) {
	return e.chainRandomness, nil
}

func (e *fakeExterns) GetBeaconRandomness(abi.ChainEpoch) ([externs.RandomnessLength]byte, error) {
	return e.beaconRandomness, nil
}

func (e *fakeExterns) VerifyConsensusFault(h1, h2, extra []byte) (*externs.ConsensusFault, int64, error) {
	return e.fault, e.faultGas, e.faultErr
}

func (e *fakeExterns) GetTipsetCID(abi.ChainEpoch) (cid.Cid, error) {
	return e.tipsetCID, e.tipsetErr
}

var _ externs.Externs = (*fakeExterns)(nil)

// fakeVerifier is a scriptable proofs.Verifier; each method's result is
// set directly, and panicOn selects a method name to panic inside of, to
// exercise the panic barriers.
type fakeVerifier struct {
	sealOK        bool
	sealErr       error
	aggOK         bool
	replicaOK     bool
	postOK        bool
	unsealedCID   []byte
	panicOnSeal   bool
}

func (v *fakeVerifier) VerifySeal(info proof.SealVerifyInfo) (bool, error) {
	if v.panicOnSeal {
		panic("simulated native crash verifying seal")
	}
	return v.sealOK, v.sealErr
}

func (v *fakeVerifier) VerifyAggregateSeals(proof.AggregateSealVerifyProofAndInfos) (bool, error) {
	return v.aggOK, nil
}

func (v *fakeVerifier) VerifyReplicaUpdate(proof.ReplicaUpdateInfo) (bool, error) {
	return v.replicaOK, nil
}

func (v *fakeVerifier) VerifyWindowPoSt(proof.WindowPoStVerifyInfo) (bool, error) {
	return v.postOK, nil
}

func (v *fakeVerifier) GenerateUnsealedSectorCID(abi.RegisteredSealProof, []abi.PieceInfo) ([]byte, error) {
	return v.unsealedCID, nil
}

var _ proofs.Verifier = (*fakeVerifier)(nil)

// fakeLimiter is a no-op Limiter.
type fakeLimiter struct{ resets int }

func (l *fakeLimiter) Reset() { l.resets++ }

// fakeCallManager is an in-memory CallManager good enough to exercise a
// single Kernel's operation groups end to end: one actor table, one
// blockstore, a shared gas tracker, and a scriptable CallActor for Send
// and UpgradeActor tests. Transactions snapshot and restore the actor
// table; this package never needs anything richer, since the kernel
// treats CallManager as opaque.
type fakeCallManager struct {
	machine    *fakeMachine
	blockstore *fakeBlockstore
	externs    *fakeExterns
	verifier   *fakeVerifier
	tracker    *gas.Tracker
	prices     gas.PriceList
	limiter    *fakeLimiter

	origin          abi.ActorID
	nonce           uint64
	gasPremium      abi.TokenAmount
	invocationCount uint64
	callStack       []CallStackFrame

	actors       map[abi.ActorID]ActorState
	nextAddrID   uint64

	events []events.StampedEvent

	// callActor, if set, is invoked by CallActor instead of the default
	// (which reports Ok with no return value); tests needing to observe a
	// nested kernel set this to drive the callee's own behavior.
	callActor func(from abi.ActorID, to address.Address, ep Entrypoint, params *Block, value abi.TokenAmount, gasLimit *gas.Gas, readOnly bool) (InvocationResult, error)
}

func newFakeCallManager(limit gas.Gas) *fakeCallManager {
	return &fakeCallManager{
		machine:    newFakeMachine(),
		blockstore: newFakeBlockstore(),
		externs:    &fakeExterns{},
		verifier:   &fakeVerifier{},
		tracker:    gas.NewTracker(limit),
		prices:     zeroPriceList{},
		limiter:    &fakeLimiter{},
		gasPremium: abi.NewTokenAmount(0),
		actors:     make(map[abi.ActorID]ActorState),
		nextAddrID: 1000,
	}
}

func (cm *fakeCallManager) Machine() Machine             { return cm.machine }
func (cm *fakeCallManager) Context() MachineContext       { return cm.machine.Context() }
func (cm *fakeCallManager) Blockstore() Blockstore        { return cm.blockstore }
func (cm *fakeCallManager) Externs() externs.Externs      { return cm.externs }
func (cm *fakeCallManager) Verifier() proofs.Verifier     { return cm.verifier }
func (cm *fakeCallManager) GasTracker() *gas.Tracker       { return cm.tracker }
func (cm *fakeCallManager) PriceList() gas.PriceList       { return cm.prices }

func (cm *fakeCallManager) Origin() abi.ActorID            { return cm.origin }
func (cm *fakeCallManager) Nonce() uint64                   { return cm.nonce }
func (cm *fakeCallManager) GasPremium() abi.TokenAmount     { return cm.gasPremium }
func (cm *fakeCallManager) InvocationCount() uint64         { return cm.invocationCount }
func (cm *fakeCallManager) GetCallStack() []CallStackFrame  { return cm.callStack }

func (cm *fakeCallManager) GetActor(id abi.ActorID) (*ActorState, bool, error) {
	st, ok := cm.actors[id]
	if !ok {
		return nil, false, nil
	}
	cp := st
	return &cp, true, nil
}

func (cm *fakeCallManager) SetActor(id abi.ActorID, st ActorState) error {
	cm.actors[id] = st
	return nil
}

func (cm *fakeCallManager) DeleteActor(id abi.ActorID) error {
	delete(cm.actors, id)
	return nil
}

func (cm *fakeCallManager) CreateActor(codeCID cid.Cid, actorID abi.ActorID, delegated *address.Address) error {
	cm.actors[actorID] = ActorState{
		CodeCID:          codeCID,
		Balance:          abi.NewTokenAmount(0),
		DelegatedAddress: delegated,
	}
	return nil
}

func (cm *fakeCallManager) Transfer(from, to abi.ActorID, amount abi.TokenAmount) error {
	fromSt, ok := cm.actors[from]
	if !ok {
		return fatalf("transfer from unknown actor %d", from)
	}
	if fromSt.Balance.LessThan(amount) {
		return fatalf("insufficient balance for transfer")
	}
	fromSt.Balance = big.Sub(fromSt.Balance, amount)
	cm.actors[from] = fromSt

	toSt := cm.actors[to]
	toSt.Balance = big.Add(toSt.Balance, amount)
	cm.actors[to] = toSt
	return nil
}

func (cm *fakeCallManager) ResolveAddress(addr address.Address) (abi.ActorID, bool, error) {
	if id, err := address.IDFromAddress(addr); err == nil {
		_, ok := cm.actors[abi.ActorID(id)]
		return abi.ActorID(id), ok, nil
	}
	return 0, false, nil
}

func (cm *fakeCallManager) NextActorAddress() address.Address {
	cm.nextAddrID++
	addr, _ := address.NewIDAddress(cm.nextAddrID)
	return addr
}

func (cm *fakeCallManager) CallActor(from abi.ActorID, to address.Address, ep Entrypoint, params *Block, value abi.TokenAmount, gasLimit *gas.Gas, readOnly bool) (InvocationResult, error) {
	if cm.callActor != nil {
		return cm.callActor(from, to, ep, params, value, gasLimit, readOnly)
	}
	return InvocationResult{ExitCode: exitcode.Ok}, nil
}

// WithTransaction snapshots the actor table, runs fn, and restores the
// snapshot if fn returns an error or a non-Ok exit code — mirroring the
// "abort rolls back the transaction" rule (spec §5).
func (cm *fakeCallManager) WithTransaction(fn func(CallManager) (InvocationResult, error)) (InvocationResult, error) {
	snapshot := make(map[abi.ActorID]ActorState, len(cm.actors))
	for k, v := range cm.actors {
		snapshot[k] = v
	}
	result, err := fn(cm)
	if err != nil || result.ExitCode != exitcode.Ok {
		cm.actors = snapshot
	}
	return result, err
}

func (cm *fakeCallManager) AppendEvent(evt events.StampedEvent) {
	cm.events = append(cm.events, evt)
}

func (cm *fakeCallManager) LimiterMut() Limiter { return cm.limiter }

var _ CallManager = (*fakeCallManager)(nil)

// newTestKernel builds a Kernel atop a fresh fakeCallManager with a
// generous gas budget, seeding the receiver's actor state and an empty
// block registry.
func newTestKernel(cm *fakeCallManager, caller, receiver abi.ActorID, st ActorState) *Kernel {
	cm.actors[receiver] = st
	return New(cm, NewBlockRegistry(nil, cid.Undef), caller, receiver, 0, abi.NewTokenAmount(0), false, Features{})
}

// multihashSum is the shared helper test files use to build a CID out of
// arbitrary payload bytes, the same way BlockLink does in production.
func multihashSum(data []byte) (multihash.Multihash, error) {
	return multihash.Sum(data, multihash.BLAKE2B_MIN+31, -1)
}
