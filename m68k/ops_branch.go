package m68k

// Bcc/BRA/BSR, DBcc, Scc.

func registerBranchOps() {
	// Bcc/BRA/BSR  0110 cccc dddddddd  (cccc=0000 BRA, 0001 BSR, else Bcc)
	for cc := uint16(0); cc < 16; cc++ {
		c := cc
		addOp(0x6000|c<<8, 0xff00, variantAll, func(cpu *CPU) error { return opBccFamily(cpu, uint8(c)) })
	}

	// DBcc  0101 cccc 11001 rrr
	for cc := uint16(0); cc < 16; cc++ {
		c := cc
		addOp(0x50c8|c<<8, 0xfff8, variantAll, func(cpu *CPU) error { return opDBcc(cpu, uint8(c)) })
	}

	// Scc  0101 cccc 11 mmmsss
	for cc := uint16(0); cc < 16; cc++ {
		c := cc
		addOp(0x50c0|c<<8, 0xffc0, variantAll, func(cpu *CPU) error { return opScc(cpu, uint8(c)) })
	}
}

func opBccFamily(c *CPU, cc uint8) error {
	disp := int32(int8(c.ir & 0xff))
	dispPC := c.pc
	if disp == 0 {
		disp = int32(int16(c.fetchWord()))
	} else if disp == -1 && c.cpuType.has020Plus() {
		hi := uint32(c.fetchWord())
		lo := uint32(c.fetchWord())
		disp = int32(hi<<16 | lo)
	}
	target := uint32(int64(dispPC) + int64(disp))

	switch cc {
	case 0x0: // BRA
		c.pc = target & c.addressMask
		return nil
	case 0x1: // BSR
		c.push32(c.pc)
		c.pc = target & c.addressMask
		return nil
	default:
		if c.flags.condition(cc) {
			c.pc = target & c.addressMask
		}
		return nil
	}
}

func opDBcc(c *CPU, cc uint8) error {
	reg := int(c.ir & 7)
	dispPC := c.pc
	disp := int32(int16(c.fetchWord()))
	if c.flags.condition(cc) {
		return nil
	}
	v := uint16(c.dar[reg]) - 1
	c.dar[reg] = (c.dar[reg] &^ 0xffff) | uint32(v)
	if v != 0xffff {
		c.pc = (uint32(int64(dispPC) + int64(disp))) & c.addressMask
	}
	return nil
}

func opScc(c *CPU, cc uint8) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 8, modeRMW)
	var v uint8
	if c.flags.condition(cc) {
		v = 0xff
	}
	c.writeOperand(op, 8, uint32(v))
	return nil
}
