package kernel

// LimiterMut returns the engine-owned resource limiter for this
// invocation, so the (out-of-scope) execution engine can account memory,
// stack depth, and similar per-call resources through one object the
// kernel merely forwards.
func (k *Kernel) LimiterMut() Limiter {
	return k.callManager.LimiterMut()
}
