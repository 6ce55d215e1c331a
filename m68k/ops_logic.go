package m68k

// AND/OR/EOR/NOT and their immediate-to-CCR/SR forms.

func registerLogicOps() {
	for _, s := range []struct {
		bits  uint16
		width uint
	}{{0, 8}, {1, 16}, {2, 32}} {
		sz := s
		// Bit 8 (opmode direction) is fixed in every one of these masks: left
		// as a wildcard it ties in popcount with the sibling direction (and,
		// for EOR, with CMP's 0xb000 form), and the jump table's specificity
		// tie-break would silently drop whichever got registered second.
		addOp(0xc000|sz.bits<<6, 0xf1c0, variantAll, func(c *CPU) error { return opANDOREOR(c, sz.width, logicAND, false) })
		addOp(0xc100|sz.bits<<6, 0xf1c0, variantAll, func(c *CPU) error { return opANDOREOR(c, sz.width, logicAND, true) })
		addOp(0x8000|sz.bits<<6, 0xf1c0, variantAll, func(c *CPU) error { return opANDOREOR(c, sz.width, logicOR, false) })
		addOp(0x8100|sz.bits<<6, 0xf1c0, variantAll, func(c *CPU) error { return opANDOREOR(c, sz.width, logicOR, true) })
		addOp(0xb100|sz.bits<<6, 0xf1c0, variantAll, func(c *CPU) error { return opANDOREOR(c, sz.width, logicEOR, true) })

		addOp(0x0200|sz.bits<<6, 0xffc0, variantAll, func(c *CPU) error { return opLogicI(c, sz.width, logicAND) })
		addOp(0x0000|sz.bits<<6, 0xffc0, variantAll, func(c *CPU) error { return opLogicI(c, sz.width, logicOR) })
		addOp(0x0a00|sz.bits<<6, 0xffc0, variantAll, func(c *CPU) error { return opLogicI(c, sz.width, logicEOR) })

		addOp(0x4600|sz.bits<<6, 0xffc0, variantAll, func(c *CPU) error { return opNOT(c, sz.width) })
	}

	// ANDI/ORI/EORI to CCR  0000 0010/0000/1010 0011 1100
	addOp(0x023c, 0xffff, variantAll, func(c *CPU) error { return opLogicToCCR(c, logicAND) })
	addOp(0x003c, 0xffff, variantAll, func(c *CPU) error { return opLogicToCCR(c, logicOR) })
	addOp(0x0a3c, 0xffff, variantAll, func(c *CPU) error { return opLogicToCCR(c, logicEOR) })

	// ANDI/ORI/EORI to SR  ...0111 1100 (privileged)
	addOp(0x027c, 0xffff, variantAll, func(c *CPU) error { return opLogicToSR(c, logicAND) })
	addOp(0x007c, 0xffff, variantAll, func(c *CPU) error { return opLogicToSR(c, logicOR) })
	addOp(0x0a7c, 0xffff, variantAll, func(c *CPU) error { return opLogicToSR(c, logicEOR) })
}

type logicOp int

const (
	logicAND logicOp = iota
	logicOR
	logicEOR
)

func applyLogic(op logicOp, a, b uint64) uint64 {
	switch op {
	case logicAND:
		return a & b
	case logicOR:
		return a | b
	default:
		return a ^ b
	}
}

func opANDOREOR(c *CPU, width uint, op logicOp, toEA bool) error {
	reg := int((c.ir >> 9) & 7)
	modeReg := uint8(c.ir & 0x3f)
	im := modeLoad
	if toEA {
		im = modeRMW
	}
	eaOp := c.resolveEA(modeReg, width, im)
	ev := c.readOperand(eaOp, width)
	dv := c.regValue(reg, width)
	result := applyLogic(op, uint64(dv), uint64(ev))
	if toEA {
		c.writeOperand(eaOp, width, uint32(result))
	} else {
		c.setRegValue(reg, width, uint32(result))
	}
	c.flags.setLogic(result, width)
	return nil
}

func opLogicI(c *CPU, width uint, op logicOp) error {
	immOp := c.resolveEA(0x3c, width, modeLoad)
	imm := c.readOperand(immOp, width)
	modeReg := uint8(c.ir & 0x3f)
	eaOp := c.resolveEA(modeReg, width, modeRMW)
	dv := c.readOperand(eaOp, width)
	result := applyLogic(op, uint64(dv), uint64(imm))
	c.writeOperand(eaOp, width, uint32(result))
	c.flags.setLogic(result, width)
	return nil
}

func opNOT(c *CPU, width uint) error {
	modeReg := uint8(c.ir & 0x3f)
	eaOp := c.resolveEA(modeReg, width, modeRMW)
	v := c.readOperand(eaOp, width)
	result := uint64(^v) & mask(width)
	c.writeOperand(eaOp, width, uint32(result))
	c.flags.setLogic(result, width)
	return nil
}

func opLogicToCCR(c *CPU, op logicOp) error {
	immOp := c.resolveEA(0x3c, 8, modeLoad)
	imm := uint16(c.readOperand(immOp, 8))
	result := applyLogic(op, uint64(c.flags.ccr()), uint64(imm))
	c.flags.setCCR(uint16(result))
	return nil
}

func opLogicToSR(c *CPU, op logicOp) error {
	if !c.flags.s {
		return PrivilegeViolation{Opcode: c.ir, PC: c.ppc}
	}
	immOp := c.resolveEA(0x3c, 16, modeLoad)
	imm := uint32(c.readOperand(immOp, 16))
	result := applyLogic(op, uint64(c.flags.sr()), uint64(imm))
	c.setSR(uint16(result))
	return nil
}
