package kernel

import "github.com/filecoin-project/go-state-types/abi"

// MessageContext returns the immutable record of who is calling, on whose
// behalf, and with what value/method/nonce, for the duration of this
// invocation.
func (k *Kernel) MessageContext() (MessageContext, error) {
	timer, err := k.charge(k.callManager.PriceList().OnMessageContext())
	if err != nil {
		return MessageContext{}, err
	}
	defer timer.Stop()

	return MessageContext{
		Caller:        k.caller,
		Origin:        k.callManager.Origin(),
		Receiver:      k.receiver,
		MethodNumber:  k.method,
		ValueReceived: k.valueReceived,
		GasPremium:    k.callManager.GasPremium(),
		ReadOnly:      k.readOnly,
		Nonce:         k.callManager.Nonce(),
	}, nil
}

// NetworkContext returns the chain parameters this whole machine execution
// was built against: these never change within a single invocation, or
// even across the invocations of one machine.
func (k *Kernel) NetworkContext() (NetworkContext, error) {
	timer, err := k.charge(k.callManager.PriceList().OnNetworkContext())
	if err != nil {
		return NetworkContext{}, err
	}
	defer timer.Stop()

	mc := k.callManager.Context()
	return NetworkContext{
		ChainID:        mc.Network.ChainID,
		Epoch:          mc.Epoch,
		Timestamp:      mc.Timestamp,
		BaseFee:        mc.BaseFee,
		NetworkVersion: mc.Network.NetworkVersion,
	}, nil
}

// TipsetCID resolves the CID of the tipset at the given past epoch, which
// must be strictly before the current one: the current epoch's tipset
// has not finished forming yet, and a future epoch cannot be looked up
// at all.
func (k *Kernel) TipsetCID(epoch abi.ChainEpoch) ([]byte, error) {
	if epoch < 0 {
		return nil, illegalArgf("epoch is negative")
	}
	offset := k.callManager.Context().Epoch - epoch
	switch {
	case offset < 0:
		return nil, illegalArgf("epoch %d is in the future", epoch)
	case offset == 0:
		return nil, illegalArgf("cannot look up the tipset cid for the current epoch")
	}

	timer, err := k.charge(k.callManager.PriceList().OnTipsetCID(int64(offset)))
	if err != nil {
		return nil, err
	}
	defer timer.Stop()

	c, terr := k.callManager.Externs().GetTipsetCID(epoch)
	if terr != nil {
		return nil, fatalWrap(terr, "resolving tipset CID")
	}
	return c.Bytes(), nil
}

// CurrentTotalSupply returns the network's circulating FIL supply as of
// this invocation's epoch.
func (k *Kernel) CurrentTotalSupply() (abi.TokenAmount, error) {
	return k.callManager.Context().CircSupply, nil
}
