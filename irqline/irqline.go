// Package irqline defines the asynchronous signal lines a host drives into
// the m68k core between instructions: the 3-bit IPL bus and the NMI edge.
// A host may update these from another goroutine (see package m68k's
// SetIRQ/SetNMI) provided its own memory bus is reentrant; the arbiter only
// samples them at instruction boundaries so races here are benign.
package irqline

import "sync/atomic"

// Level holds the current interrupt priority level (0-7) asserted on the
// IPL0-2 pins. It is safe to write from one goroutine and read from
// another.
type Level struct {
	v atomic.Uint32
}

// Set records the IPL value as given; it does no clamping. Package m68k's
// SetIRQ passes only the low three bits, and the arbiter compares the
// stored value unchanged.
func (l *Level) Set(level uint8) {
	l.v.Store(uint32(level))
}

// Get returns the currently asserted IPL value.
func (l *Level) Get() uint8 {
	return uint8(l.v.Load())
}

// NMI latches a non-maskable interrupt edge. Pulse sets the latch; the
// arbiter clears it once serviced.
type NMI struct {
	pending atomic.Bool
}

// Pulse raises the NMI edge. It stays raised until the arbiter services it.
func (n *NMI) Pulse() {
	n.pending.Store(true)
}

// Pending reports whether an NMI edge is waiting to be serviced.
func (n *NMI) Pending() bool {
	return n.pending.Load()
}

// Clear is called by the arbiter once it has dispatched the NMI.
func (n *NMI) Clear() {
	n.pending.Store(false)
}
