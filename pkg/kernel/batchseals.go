package kernel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/filecoin-project/go-state-types/proof"

	"github.com/filecoin-project/go-fvm-kernel/pkg/proofs"
)

// batchVerifySeals verifies every entry in infos concurrently, bounded to
// GOMAXPROCS workers, and reports one bool per input in the original
// order. A single seal failing to verify — including one that panics
// inside the native verifier — counts as false for that entry only; it
// never fails the batch (grounding: original_source's
// batch_verify_seals, which logs and downgrades both a verification
// error and a caught panic to "not verified" per seal).
func batchVerifySeals(v proofs.Verifier, infos []proof.SealVerifyInfo) ([]bool, error) {
	out := make([]bool, len(infos))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, vi := range infos {
		i, vi := i, vi
		g.Go(func() error {
			ok, err := guardedVerifySeal(v, vi)
			if err != nil {
				vmlog.Debugw("seal verify in batch failed", "miner", vi.SectorID.Miner, "error", err)
				out[i] = false
				return nil
			}
			out[i] = ok
			return nil
		})
	}
	// g.Go never returns a non-nil error above; Wait only surfaces a
	// context cancellation, which this call never triggers.
	_ = g.Wait()
	return out, nil
}

func guardedVerifySeal(v proofs.Verifier, vi proof.SealVerifyInfo) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			vmlog.Errorw("seal verify internal fail", "miner", vi.SectorID.Miner, "panic", r)
			ok, err = false, nil
		}
	}()
	return v.VerifySeal(vi)
}
