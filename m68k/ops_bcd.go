package m68k

// ABCD/SBCD/NBCD — packed-BCD arithmetic on a single byte, using the X
// flag as the inter-digit carry the same way ADDX/SUBX do.

func registerBCDOps() {
	// ABCD  1100 rrr1 0000 0/1 rrr
	addOp(0xc100, 0xf1f0, variantAll, func(c *CPU) error { return opABCDSBCD(c, false) })
	// SBCD  1000 rrr1 0000 0/1 rrr
	addOp(0x8100, 0xf1f0, variantAll, func(c *CPU) error { return opABCDSBCD(c, true) })
	// NBCD  0100 1000 00 mmmsss
	addOp(0x4800, 0xffc0, variantAll, opNBCD)
}

func bcdAdd(a, b, x uint8) (result uint8, carry bool) {
	sum := uint16(a) + uint16(b) + uint16(x)
	lowNibble := (a & 0xf) + (b & 0xf) + x
	if lowNibble > 9 {
		sum += 6
	}
	if sum > 0x99 {
		sum += 0x60
		carry = true
	}
	return uint8(sum), carry
}

func bcdSub(a, b, x uint8) (result uint8, borrow bool) {
	diff := int16(a) - int16(b) - int16(x)
	lowNibble := int16(a&0xf) - int16(b&0xf) - int16(x)
	if lowNibble < 0 {
		diff -= 6
	}
	if diff < 0 {
		diff -= 0x60
		borrow = true
	}
	return uint8(diff), borrow
}

func opABCDSBCD(c *CPU, sub bool) error {
	rx := int((c.ir >> 9) & 7)
	ry := int(c.ir & 7)
	useMem := c.ir&8 != 0
	var a, b uint8
	var dstOp operand
	if useMem {
		srcOp := c.resolveEA(0x20|uint8(ry), 8, modeRMW) // -(Ay)
		b = uint8(c.readOperand(srcOp, 8))
		dstOp = c.resolveEA(0x20|uint8(rx), 8, modeRMW) // -(Ax)
		a = uint8(c.readOperand(dstOp, 8))
	} else {
		b = uint8(c.dar[ry])
		a = uint8(c.dar[rx])
	}
	var x uint8
	if c.flags.x {
		x = 1
	}
	var result uint8
	var carry bool
	if sub {
		result, carry = bcdSub(a, b, x)
	} else {
		result, carry = bcdAdd(a, b, x)
	}
	if useMem {
		c.writeOperand(dstOp, 8, uint32(result))
	} else {
		c.setRegValue(rx, 8, uint32(result))
	}
	if result != 0 {
		c.flags.z = false
	}
	c.flags.n = result&0x80 != 0
	c.flags.c = carry
	c.flags.x = carry
	return nil
}

func opNBCD(c *CPU) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 8, modeRMW)
	v := uint8(c.readOperand(op, 8))
	var x uint8
	if c.flags.x {
		x = 1
	}
	result, borrow := bcdSub(0, v, x)
	c.writeOperand(op, 8, uint32(result))
	if result != 0 {
		c.flags.z = false
	}
	c.flags.n = result&0x80 != 0
	c.flags.c = borrow
	c.flags.x = borrow
	return nil
}
