package engine

// SetForceRecompute sets the sticky force-recompute flag. It is
// consumed at most once, by the next Run call: every node behaves as
// if each input's change handler returned Unhandled for that iteration.
func (e *Engine) SetForceRecompute() {
	e.forceRecompute = true
}

// SetForceRecomputeImmediate is SetForceRecompute plus the immediate-wake
// flag, so a polling main loop does not delay the next iteration behind
// its usual backoff.
func (e *Engine) SetForceRecomputeImmediate() {
	e.forceRecompute = true
	e.immediateWake = true
}

// ClearForceRecompute clears the sticky force-recompute flag without
// running an iteration.
func (e *Engine) ClearForceRecompute() {
	e.forceRecompute = false
}

// ForceRecompute reports whether a force recompute is pending.
func (e *Engine) ForceRecompute() bool {
	return e.forceRecompute
}

// TriggerRecompute is a public synonym of SetForceRecompute for callers
// with no finer-grained hook into why a recompute is needed.
func (e *Engine) TriggerRecompute() {
	e.SetForceRecompute()
}

// ImmediateWake reports whether the immediate-wake flag is set, and
// clears it. Callers (main loop pollers) should check this once per
// tick after a Run call.
func (e *Engine) ImmediateWake() bool {
	w := e.immediateWake
	e.immediateWake = false
	return w
}
