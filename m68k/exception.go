package m68k

// Exception engine, spec.md §4.6. Stack frame shapes are grounded on
// original_source/m68kcpu.h's m68ki_stack_frame_{3word,0000,0001,0010,
// buserr,1000,1010,1011,0111} (lines 2003-2398): which format a variant
// pushes is fixed by its group, except bus/address errors which always
// use the long frame appropriate to the variant.

// raise drives the full exception sequence: compute the vector, switch
// to supervisor mode (on 020+ interrupts and bus/address errors keep the
// current M bit; every other exception switches to the interrupt stack),
// push the frame appropriate to vector and variant, then load PC from the
// vector table. It is called from the recover() in step() as well as
// directly for synchronous traps (TRAP, CHK, zero-divide, ...).
func (c *CPU) raise(vector int, faultPC uint32) {
	if c.runMode == runModeWritingFrame {
		c.doubleFault()
		return
	}
	c.runMode = runModeWritingFrame

	oldSR := c.flags.sr()

	newS := true
	newM := false
	if c.cpuType.has020Plus() && (vector == vectorBusError || vector == vectorAddressError ||
		(vector >= vectorAutovectorBase && vector < vectorAutovectorBase+8) || vector == vectorReset) {
		newM = c.flags.m // interrupts/resets/bus errors keep current M per 020+ master-stack rules
	}
	c.switchSP(newS, newM)
	c.flags.s = true
	c.flags.m = newM
	c.flags.t1 = false
	c.flags.t0 = false

	switch vector {
	case vectorBusError, vectorAddressError:
		c.stackFrameBusErr(vector, faultPC, oldSR)
	case vectorReset:
		// handled entirely by PulseReset; never reaches here.
	default:
		if c.cpuType.group() == group020Plus && (vector == vectorFormatError) {
			c.stackFrame0001(vector, faultPC, oldSR)
		} else if c.cpuType.has010Plus() {
			c.stackFrame0000(vector, faultPC, oldSR)
		} else {
			c.stackFrame3Word(vector, faultPC, oldSR)
		}
	}

	c.pc = c.busRead32(c.vbr+uint32(vector)*4) & c.addressMask
	c.ppc = c.pc
	c.runMode = runModeNormal
	if c.hooks.PCChanged != nil {
		c.hooks.PCChanged(c.pc)
	}
}

func (c *CPU) doubleFault() {
	c.stopped = stoppedHALT
}

func (c *CPU) push16(v uint16) {
	c.dar[15] -= 2
	c.busWrite16(c.dar[15], v)
}

func (c *CPU) push32(v uint32) {
	c.dar[15] -= 4
	c.busWrite32(c.dar[15], v)
}

// stackFrame3Word is the pre-010 frame: PC (2 words) + SR (1 word),
// matching m68ki_stack_frame_3word.
func (c *CPU) stackFrame3Word(vector int, pc uint32, sr uint16) {
	c.push32(pc)
	c.push16(sr)
}

// stackFrame0000 is the 010-and-later format-0000 (short) frame: SR, PC,
// then a format/vector-offset word, matching m68ki_stack_frame_0000.
func (c *CPU) stackFrame0000(vector int, pc uint32, sr uint16) {
	c.push16(uint16(vector) << 2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrame0001 is the 020+ format-0001 (throwaway) frame used for a
// handful of cases the original reserves the format for, e.g. this
// core's format-error reporting path, matching m68ki_stack_frame_0001.
func (c *CPU) stackFrame0001(vector int, pc uint32, sr uint16) {
	c.push16(0x1000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrame0010 is the 020+ format-0010 (long) frame used for some
// coprocessor traps; not reached by this core's vector set but kept for
// a host that routes its own vectors through raise(), matching
// m68ki_stack_frame_0010.
func (c *CPU) stackFrame0010(vector int, pc, instrPC uint32, sr uint16) {
	c.push32(instrPC)
	c.push16(0x2000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrameBusErr builds the long bus/address-error frame appropriate to
// the variant: the pre-010 7-word frame on 000/008, format-1000 on 010,
// and format-1011 on every 020+ variant (the format-1010 and format-0111
// builders are not selected here), matching m68ki_stack_frame_buserr and the flow-control
// PPC+2 special case it implements via switch(REG_IR).
func (c *CPU) stackFrameBusErr(vector int, faultPC uint32, sr uint16) {
	pc := faultPC
	switch c.ir {
	case 0x4e75, 0x4e73: // RTS, RTE
		pc = c.ppc + 2
	case 0x4ef9: // JMP abs.L
		pc = c.ppc + 2
	case 0x4eb9, 0x4e90, 0x4ea8: // JSR abs.L, JSR (An), JSR (d16,An)
		pc = c.ppc + 2
		// JSR pushes its return address before the fault is detected on
		// the target fetch, so the frame would otherwise double-count
		// it: pull the 4 bytes back off whichever stack was live before
		// this exception forced supervisor mode, matching the
		// m68ki_fake_pull_32/sp[0]+=4 correction in m68ki_stack_frame_buserr.
		oldS := sr&srS != 0
		oldM := sr&srM != 0
		c.setSPSlot(oldS, oldM, c.spSlot(oldS, oldM)+4)
	case 0x4a2f: // TST -(A7)
		pc = c.ppc + 2
	}
	if c.ir&0xfff0 == 0x4ed0 { // JMP (An)
		pc = c.ppc + 2
	}

	switch c.cpuType.group() {
	case groupPre010:
		c.push32(pc)
		c.push16(sr)
		c.push16(c.ir)
		c.push32(c.aerrAddress)
		var statusWord uint16
		if !c.aerrWriteMode {
			statusWord |= 1 << 4
		}
		statusWord |= uint16(c.aerrFC)
		c.push16(statusWord)
	case group010:
		c.stackFrame1000(vector, pc, sr)
	default:
		c.stackFrame1011(vector, pc, sr)
	}
}

// stackFrame1000 is the 010 long bus-error frame, matching
// m68ki_stack_frame_1000.
func (c *CPU) stackFrame1000(vector int, pc uint32, sr uint16) {
	c.push16(0) // internal register, unmodeled
	c.push32(0)
	c.push32(0)
	c.push16(0)
	c.push16(0)
	c.push32(c.aerrAddress)
	c.push16(uint16(c.aerrFC))
	c.push16(0)
	c.push32(pc)
	c.push16(0x8000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrame1010 is the 020/030 short bus-fault frame, matching
// m68ki_stack_frame_1010.
func (c *CPU) stackFrame1010(vector int, pc uint32, sr uint16) {
	c.push16(0)
	c.push16(0)
	c.push16(0)
	c.push32(c.aerrAddress)
	c.push16(0)
	c.push16(uint16(c.aerrFC))
	c.push32(pc)
	c.push16(0xA000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrame1011 is the 020/030 long bus-fault frame, matching
// m68ki_stack_frame_1011.
func (c *CPU) stackFrame1011(vector int, pc uint32, sr uint16) {
	c.push16(0)
	c.push16(0)
	c.push32(0)
	c.push16(0)
	c.push16(0)
	c.push32(0)
	c.push16(0)
	c.push16(0)
	c.push32(c.aerrAddress)
	c.push16(0)
	c.push16(uint16(c.aerrFC))
	c.push32(pc)
	c.push16(0xB000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}

// stackFrame0111 is the 040 access-fault frame, matching
// m68ki_stack_frame_0111; kept for completeness though this core does
// not model 040 bus faults to that level of detail (non-goal, §1).
func (c *CPU) stackFrame0111(vector int, pc uint32, sr uint16) {
	for i := 0; i < 22; i++ {
		c.push16(0)
	}
	c.push32(c.aerrAddress)
	c.push32(pc)
	c.push16(0x7000 | uint16(vector)<<2)
	c.push32(pc)
	c.push16(sr)
}
