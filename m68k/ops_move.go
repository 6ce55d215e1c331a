package m68k

// MOVE, MOVEA, MOVEQ, LEA, PEA, CLR and the SR/CCR move family.

func registerMoveOps() {
	// MOVE.b/w/l  0001/0011/0010 ddd DDD sss SSS  (size bits 13-12: 01=b,11=w,10=l)
	addOp(0x1000, 0xf000, variantAll, func(c *CPU) error { return doMove(c, 8) })
	addOp(0x3000, 0xf000, variantAll, func(c *CPU) error { return doMove(c, 16) })
	addOp(0x2000, 0xf000, variantAll, func(c *CPU) error { return doMove(c, 32) })

	// MOVEQ  0111 ddd 0 dddddddd
	addOp(0x7000, 0xf100, variantAll, opMOVEQ)

	// LEA  0100 rrr 111 mmmsss  (An <- EA, control modes only)
	addOp(0x41c0, 0xf1c0, variantAll, opLEA)

	// PEA  0100 1000 01 mmmsss
	addOp(0x4840, 0xffc0, variantAll, opPEA)

	// CLR.b/w/l  0100 0010 ss mmmsss
	addOp(0x4200, 0xffc0, variantAll, func(c *CPU) error { return opCLR(c, 8, 0x00) })
	addOp(0x4240, 0xffc0, variantAll, func(c *CPU) error { return opCLR(c, 16, 0x40) })
	addOp(0x4280, 0xffc0, variantAll, func(c *CPU) error { return opCLR(c, 32, 0x80) })

	// MOVE to CCR  0100 0100 11 mmmsss
	addOp(0x44c0, 0xffc0, variantAll, opMOVEtoCCR)
	// MOVE to SR  0100 0110 11 mmmsss (privileged)
	addOp(0x46c0, 0xffc0, variantAll, opMOVEtoSR)
	// MOVE from SR  0100 0000 11 mmmsss (privileged on 68010 and later; unprivileged on 68000/68008)
	addOp(0x40c0, 0xffc0, variantAll, opMOVEfromSR)
	// MOVE from CCR 68010+  0100 0010 11 mmmsss
	addOp(0x42c0, 0xffc0, variantFrom(CPU68010), opMOVEfromCCR)

	// MOVE USP  0100 1110 0110 dddd  (d=0 An->USP, d=1 USP->An), privileged
	addOp(0x4e60, 0xfff0, variantAll, opMOVEUSPToAn)
	addOp(0x4e68, 0xfff8, variantAll, opMOVEUSPFromAn)

	// EXG  1100 rrr1 oooo oRRR  (opmode 01000=Dn/Dn,01001=An/An,10001=Dn/An)
	addOp(0xc140, 0xf1f8, variantAll, func(c *CPU) error { return opEXG(c, false) })
	addOp(0xc148, 0xf1f8, variantAll, func(c *CPU) error { return opEXG(c, false) })
	addOp(0xc188, 0xf1f8, variantAll, func(c *CPU) error { return opEXG(c, true) })

	// SWAP  0100 1000 0100 0rrr
	addOp(0x4840, 0xfff8, variantAll, opSWAP)

	// EXT.w/l  0100 100o 10 000rrr; EXTB.l (68020+) 0100 1001 11 000rrr
	addOp(0x4880, 0xfff8, variantAll, func(c *CPU) error { return opEXT(c, 16) })
	addOp(0x48c0, 0xfff8, variantAll, func(c *CPU) error { return opEXT(c, 32) })
	addOp(0x49c0, 0xfff8, variantFrom(CPU68EC020), opEXTB)
}

func variantFrom(t CPUType) cpuVariantMask { return variantsFrom(t) }

func doMove(c *CPU, width uint) error {
	srcField := uint8(c.ir & 0x3f)
	dstField := uint8((c.ir>>9)&7 | (c.ir>>3)&0x38)
	src := c.resolveEA(srcField, width, modeLoad)
	v := c.readOperand(src, width)
	isAn := (dstField>>3)&7 == 1
	dst := c.resolveEA(dstField, width, modeStore)
	c.writeOperand(dst, width, v)
	if !isAn {
		c.flags.setLogic(uint64(v), width)
	}
	return nil
}

func opMOVEQ(c *CPU) error {
	reg := int((c.ir >> 9) & 7)
	v := signExtend32(uint32(c.ir&0xff), 8)
	c.dar[reg] = v
	c.flags.setLogic(uint64(v), 32)
	return nil
}

func opLEA(c *CPU) error {
	reg := int((c.ir >> 9) & 7)
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 32, modeLoad)
	c.dar[8+reg] = op.addr
	return nil
}

func opPEA(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 32, modeLoad)
	c.push32(op.addr)
	return nil
}

func opCLR(c *CPU, width uint, _ uint8) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, width, modeRMW)
	c.writeOperand(op, width, 0)
	c.flags.setLogic(0, width)
	return nil
}

func opMOVEtoCCR(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 16, modeLoad)
	v := c.readOperand(op, 16)
	c.flags.setCCR(uint16(v))
	return nil
}

func opMOVEfromCCR(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 16, modeStore)
	c.writeOperand(op, 16, uint32(c.flags.ccr()))
	return nil
}

func opMOVEtoSR(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 16, modeLoad)
	v := c.readOperand(op, 16)
	c.setSR(uint16(v))
	return nil
}

func opMOVEfromSR(c *CPU) error {
	if c.cpuType.has010Plus() && !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 16, modeStore)
	c.writeOperand(op, 16, uint32(c.flags.sr()))
	return nil
}

func opMOVEUSPToAn(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	reg := int(c.ir & 7)
	c.setSPSlot(false, false, c.dar[8+reg])
	return nil
}

func opMOVEUSPFromAn(c *CPU) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	reg := int(c.ir & 7)
	c.dar[8+reg] = c.spSlot(false, false)
	return nil
}

func opEXG(c *CPU, dataAddr bool) error {
	rx := int((c.ir >> 9) & 7)
	ry := int(c.ir & 7)
	if dataAddr {
		c.dar[rx], c.dar[8+ry] = c.dar[8+ry], c.dar[rx]
		return nil
	}
	mode := (c.ir >> 3) & 0x1f
	if mode == 0x09 {
		rx += 8
		ry += 8
	}
	c.dar[rx], c.dar[ry] = c.dar[ry], c.dar[rx]
	return nil
}

func opSWAP(c *CPU) error {
	reg := int(c.ir & 7)
	v := c.dar[reg]
	c.dar[reg] = v<<16 | v>>16
	c.flags.setLogic(uint64(c.dar[reg]), 32)
	return nil
}

func opEXT(c *CPU, width uint) error {
	reg := int(c.ir & 7)
	from := width / 2
	v := uint32(signExtend32(c.dar[reg], from))
	c.setRegValue(reg, width, v)
	c.flags.setLogic(uint64(v), width)
	return nil
}

func opEXTB(c *CPU) error {
	reg := int(c.ir & 7)
	v := uint32(signExtend32(c.dar[reg], 8))
	c.dar[reg] = v
	c.flags.setLogic(uint64(v), 32)
	return nil
}
