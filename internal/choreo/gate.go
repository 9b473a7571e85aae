package choreo

// Gate accepts at most one activation per scene index. The lock is only
// released by moving to a different scene index.
type Gate struct {
	lastActivated int
	onActivate    func()
}

// NewGate creates a gate that calls onActivate on each accepted activation.
func NewGate(onActivate func()) *Gate {
	return &Gate{lastActivated: -1, onActivate: onActivate}
}

// Armed reports whether an activation for current would be accepted.
func (g *Gate) Armed(current int, requiresInteraction bool) bool {
	return requiresInteraction && g.lastActivated != current
}

// Activate records an activation for current and fires the callback.
// Returns false when the gate is not armed.
func (g *Gate) Activate(current int, requiresInteraction bool) bool {
	if !g.Armed(current, requiresInteraction) {
		return false
	}
	g.lastActivated = current
	if g.onActivate != nil {
		g.onActivate()
	}
	return true
}

// LastActivated returns the last accepted scene index, or -1.
func (g *Gate) LastActivated() int {
	return g.lastActivated
}

// Rearm forgets the last activation so the next traversal starts unlocked.
func (g *Gate) Rearm() {
	g.lastActivated = -1
}
