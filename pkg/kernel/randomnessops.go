package kernel

import "github.com/filecoin-project/go-state-types/abi"

// GetRandomnessFromTickets draws verifiable randomness derived from chain
// tickets as of randEpoch, which must not be in the future.
func (k *Kernel) GetRandomnessFromTickets(randEpoch abi.ChainEpoch) ([32]byte, error) {
	return k.getRandomness(randEpoch, k.callManager.Externs().GetChainRandomness)
}

// GetRandomnessFromBeacon draws verifiable randomness from the drand
// beacon as of randEpoch, which must not be in the future.
func (k *Kernel) GetRandomnessFromBeacon(randEpoch abi.ChainEpoch) ([32]byte, error) {
	return k.getRandomness(randEpoch, k.callManager.Externs().GetBeaconRandomness)
}

func (k *Kernel) getRandomness(randEpoch abi.ChainEpoch, draw func(abi.ChainEpoch) ([32]byte, error)) ([32]byte, error) {
	var zero [32]byte
	lookback := k.callManager.Context().Epoch - randEpoch
	if lookback < 0 {
		return zero, illegalArgf("randomness epoch %d is in the future", randEpoch)
	}

	timer, err := k.charge(k.callManager.PriceList().OnGetRandomness(int64(lookback)))
	if err != nil {
		return zero, err
	}
	defer timer.Stop()

	r, derr := draw(randEpoch)
	if derr != nil {
		return zero, illegalArgf("drawing randomness: %s", derr)
	}
	return r, nil
}
