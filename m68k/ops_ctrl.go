package m68k

// JMP/JSR/RTS/RTE/RTR, LINK/UNLK, TRAP/TRAPV, STOP/RESET/NOP, MOVEM.

func registerCtrlOps() {
	addOp(0x4ec0, 0xffc0, variantAll, opJMP)
	addOp(0x4e80, 0xffc0, variantAll, opJSR)
	addOp(0x4e75, 0xffff, variantAll, opRTS)
	addOp(0x4e73, 0xffff, variantAll, opRTE)
	addOp(0x4e77, 0xffff, variantAll, opRTR)
	addOp(0x4e71, 0xffff, variantAll, opNOP)
	addOp(0x4e70, 0xffff, variantAll, opRESET)
	addOp(0x4e72, 0xffff, variantAll, opSTOP)
	addOp(0x4e76, 0xffff, variantAll, opTRAPV)

	for v := uint16(0); v < 16; v++ {
		vv := v
		addOp(0x4e40|vv, 0xffff, variantAll, func(c *CPU) error { return opTRAP(c, uint8(vv)) })
	}

	addOp(0x4e50, 0xfff8, variantAll, opLINK)
	addOp(0x4808, 0xfff8, variantAll, opLINKLong)
	addOp(0x4e58, 0xfff8, variantAll, opUNLK)

	// MOVEM reg->mem (pre-decrement or control addressing), word/long.
	// Pre-decrement is EA mode 100 (0x4880|0x20), not mode 000 (Dn direct,
	// invalid here and also EXT's encoding) — mode 000 would both silently
	// collide with EXT.W/EXT.L's jump table entries and never match a real
	// -(An) operand.
	addOp(0x48a0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, true) })
	addOp(0x48e0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, true) })
	addOp(0x4890, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, false) })
	addOp(0x48d0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, false) })
	addOp(0x48a8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, false) })
	addOp(0x48e8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, false) })
	addOp(0x48b0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, false) })
	addOp(0x48f0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, false) })
	addOp(0x48b8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, false) })
	addOp(0x48f8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, false) })
	addOp(0x48b9, 0xffff, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 16, false) })
	addOp(0x48f9, 0xffff, variantAll, func(c *CPU) error { return opMOVEMRegToMem(c, 32, false) })

	// MOVEM mem->reg (post-increment or control addressing), word/long
	addOp(0x4c98, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, true) })
	addOp(0x4cd8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, true) })
	addOp(0x4c90, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cd0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	addOp(0x4ca8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4ce8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	addOp(0x4cb0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cf0, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	addOp(0x4cb8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cf8, 0xfff8, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	addOp(0x4cb9, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cf9, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	// (d16,PC) and (d8,PC,Xn) are valid sources for the load direction only.
	addOp(0x4cba, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cfa, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })
	addOp(0x4cbb, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 16, false) })
	addOp(0x4cfb, 0xffff, variantAll, func(c *CPU) error { return opMOVEMMemToReg(c, 32, false) })

	// Line-A / Line-F catch-alls.
	addOp(0xa000, 0xf000, variantAll, func(c *CPU) error { return LineAEmulator{Opcode: c.ir} })
	addOp(0xf000, 0xf000, variantAll, func(c *CPU) error { return LineFEmulator{Opcode: c.ir} })
}

func opJMP(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 32, modeLoad)
	c.pc = op.addr & c.addressMask
	if c.hooks.PCChanged != nil {
		c.hooks.PCChanged(c.pc)
	}
	return nil
}

func opJSR(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 32, modeLoad)
	c.push32(c.pc)
	c.pc = op.addr & c.addressMask
	if c.hooks.PCChanged != nil {
		c.hooks.PCChanged(c.pc)
	}
	return nil
}

func opRTS(c *CPU) error {
	c.pc = c.busRead32(c.dar[15]) & c.addressMask
	c.dar[15] += 4
	return nil
}

func opRTE(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	sp := c.dar[15]
	sr := c.busRead16(sp)
	pc := c.busRead32(sp + 2)
	if c.cpuType.has010Plus() {
		// Format word occupies the next word; this core only expects to
		// unwind the short (format 0000) frame it itself pushes for a
		// normal exception return. Longer frames (bus/address-error
		// re-entry via RTE) are not modeled, matching §1's non-goals.
		c.dar[15] = sp + 8
	} else {
		c.dar[15] = sp + 6
	}
	c.setSR(sr)
	c.pc = pc & c.addressMask
	if c.hooks.RTE != nil {
		c.hooks.RTE()
	}
	return nil
}

func opRTR(c *CPU) error {
	sp := c.dar[15]
	ccr := c.busRead16(sp)
	pc := c.busRead32(sp + 2)
	c.dar[15] = sp + 6
	c.flags.setCCR(ccr)
	c.pc = pc & c.addressMask
	return nil
}

func opNOP(c *CPU) error { return nil }

func opRESET(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	if c.hooks.Reset != nil {
		c.hooks.Reset()
	}
	return nil
}

func opSTOP(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	sr := c.fetchWord()
	c.setSR(sr)
	c.stopped = stoppedSTOP
	return nil
}

func opTRAPV(c *CPU) error {
	if c.flags.v {
		return TrapVException{PC: c.ppc}
	}
	return nil
}

func opTRAP(c *CPU, vec uint8) error {
	c.raise(vectorTrapBase+int(vec), c.pc)
	return nil
}

func opLINK(c *CPU) error {
	reg := int(c.ir & 7)
	disp := int32(int16(c.fetchWord()))
	c.push32(c.dar[8+reg])
	c.dar[8+reg] = c.dar[15]
	c.dar[15] = uint32(int64(c.dar[15]) + int64(disp))
	return nil
}

func opLINKLong(c *CPU) error {
	reg := int(c.ir & 7)
	hi := uint32(c.fetchWord())
	lo := uint32(c.fetchWord())
	disp := int32(hi<<16 | lo)
	c.push32(c.dar[8+reg])
	c.dar[8+reg] = c.dar[15]
	c.dar[15] = uint32(int64(c.dar[15]) + int64(disp))
	return nil
}

func opUNLK(c *CPU) error {
	reg := int(c.ir & 7)
	c.dar[15] = c.dar[8+reg]
	c.dar[8+reg] = c.busRead32(c.dar[15])
	c.dar[15] += 4
	return nil
}

func regListOrder(list uint16, predecrement bool) []int {
	order := make([]int, 0, 16)
	if predecrement {
		for i := 15; i >= 0; i-- {
			if list&(1<<uint(15-i)) != 0 {
				order = append(order, i)
			}
		}
	} else {
		for i := 0; i < 16; i++ {
			if list&(1<<uint(i)) != 0 {
				order = append(order, i)
			}
		}
	}
	return order
}

func opMOVEMRegToMem(c *CPU, width uint, predecrement bool) error {
	list := c.fetchWord()
	modeReg := uint8(c.ir & 0x3f)
	if predecrement {
		reg := int(modeReg & 7)
		for _, r := range regListOrder(list, true) {
			c.dar[8+reg] -= uint32(width / 8)
			v := c.dar[r]
			if width == 16 {
				c.busWrite16(c.dar[8+reg], uint16(v))
			} else {
				c.busWrite32(c.dar[8+reg], v)
			}
		}
		return nil
	}
	op := c.resolveEA(modeReg, width, modeLoad)
	addr := op.addr
	for _, r := range regListOrder(list, false) {
		v := c.dar[r]
		if width == 16 {
			c.busWrite16(addr, uint16(v))
		} else {
			c.busWrite32(addr, v)
		}
		addr += uint32(width / 8)
	}
	return nil
}

func opMOVEMMemToReg(c *CPU, width uint, postincrement bool) error {
	list := c.fetchWord()
	modeReg := uint8(c.ir & 0x3f)
	if postincrement {
		reg := int(modeReg & 7)
		addr := c.dar[8+reg]
		for _, r := range regListOrder(list, false) {
			var v uint32
			if width == 16 {
				v = uint32(int32(int16(c.busRead16(addr))))
			} else {
				v = c.busRead32(addr)
			}
			c.dar[r] = v
			addr += uint32(width / 8)
		}
		c.dar[8+reg] = addr
		return nil
	}
	op := c.resolveEA(modeReg, width, modeLoad)
	addr := op.addr
	for _, r := range regListOrder(list, false) {
		var v uint32
		if width == 16 {
			v = uint32(int32(int16(c.busRead16(addr))))
		} else {
			v = c.busRead32(addr)
		}
		c.dar[r] = v
		addr += uint32(width / 8)
	}
	return nil
}
