package kernel

import "github.com/filecoin-project/go-fvm-kernel/pkg/gas"

// GasUsed returns the gas consumed by this invocation's entire call
// stack so far.
func (k *Kernel) GasUsed() gas.Gas {
	return k.callManager.GasTracker().GasUsed()
}

// GasAvailable returns the gas remaining in this invocation's shared
// budget.
func (k *Kernel) GasAvailable() gas.Gas {
	return k.callManager.GasTracker().GasAvailable()
}

// ChargeGas deducts an ad hoc, actor-declared charge (e.g. for work the
// guest performed itself, outside any metered syscall) from the shared
// budget.
func (k *Kernel) ChargeGas(name string, amount gas.Gas) error {
	timer, err := k.charge(gas.NewCharge(name, amount))
	if err != nil {
		return err
	}
	timer.Stop()
	return nil
}

// PriceList exposes the active price list, e.g. for an actor that wants
// to estimate the cost of an operation before performing it.
func (k *Kernel) PriceList() gas.PriceList {
	return k.callManager.PriceList()
}
