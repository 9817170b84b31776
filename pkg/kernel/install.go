package kernel

import "github.com/ipfs/go-cid"

// InstallActor preloads codeCID's WASM bytecode into the execution
// engine's cache without instantiating any actor from it, gated behind
// Features.M2Native (the Rust kernel's "m2-native" Cargo feature, for
// user-programmable native actors).
func (k *Kernel) InstallActor(codeCID cid.Cid) error {
	if !k.features.M2Native {
		return syscallErr(ErrIllegalOperation, "install_actor requires the m2-native feature")
	}

	size, perr := k.Machine().Preload(k.callManager.Blockstore(), []cid.Cid{codeCID})
	if perr != nil {
		return illegalArgf("failed to install actor: %s", perr)
	}

	timer, err := k.charge(k.callManager.PriceList().OnInstallActor(size))
	if err != nil {
		return err
	}
	timer.Stop()
	return nil
}
