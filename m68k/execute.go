package m68k

// Execute runs instructions until at least cycles have been consumed (or
// the CPU enters a stopped/halted state) and returns the number of cycles
// actually consumed, matching spec.md §4.1's execute(cycles) ->
// cycles_consumed. It never consumes fewer cycles than requested purely
// because an instruction boundary didn't line up; the last instruction
// that pushes the total at or past the budget is allowed to complete.
func (c *CPU) Execute(cycles int) int {
	consumed := 0
	for consumed < cycles {
		if c.stopped == stoppedHALT {
			break
		}
		consumed += c.step()
		if c.stopped == stoppedSTOP {
			consumed += int(c.cycException[vectorSpurious])
			if !c.virqPending() && !c.nmiLine.Pending() {
				break
			}
		}
	}
	return consumed
}

// virqPending reports whether the currently asserted IPL would wake a
// STOPped CPU, i.e. it exceeds the interrupt mask (or is level 7).
func (c *CPU) virqPending() bool {
	level := c.virqLine.Get()
	return level != 0 && (level == 7 || level > uint8(c.flags.intMask))
}

// step executes exactly one instruction (or services one pending
// interrupt/trace/fault) and returns the cycles it consumed. Faults raised
// deep in a handler unwind here via panic/recover, the "checked unwind"
// spec.md §9 calls for, since Go has no native non-local goto.
func (c *CPU) step() (cyclesConsumed int) {
	defer func() {
		if r := recover(); r != nil {
			cyclesConsumed = c.handleFault(r)
		}
	}()

	c.serviceInterrupts()
	if c.stopped != running {
		return 4
	}

	if c.tracePending {
		c.tracePending = false
		c.raise(vectorTrace, c.pc)
		return int(c.cycException[vectorTrace])
	}

	c.ppc = c.pc
	c.ir = c.fetchWord()
	handler := c.jumpTable[c.ir]
	if err := handler(c); err != nil {
		c.handleHandlerError(err)
	}

	if c.flags.t1 {
		c.tracePending = true
	}

	return int(c.cycInstruction[c.ir])
}

// handleFault recovers from an addressFault/busFault panic raised deep in
// a bus access, converting it into the appropriate exception.
func (c *CPU) handleFault(r interface{}) int {
	switch r.(type) {
	case addressFault:
		c.raise(vectorAddressError, c.ppc)
		return int(c.cycException[vectorAddressError])
	case busFault:
		c.raise(vectorBusError, c.ppc)
		return int(c.cycException[vectorBusError])
	default:
		panic(r)
	}
}

// handleHandlerError converts a typed cpuError returned by an opcode
// handler into the matching exception; any other error is a programming
// mistake in a handler and is not expected to occur.
func (c *CPU) handleHandlerError(err error) {
	if ce, ok := err.(cpuError); ok {
		c.raise(ce.Vector(), c.ppc)
		return
	}
	panic(err)
}
