package m68k

// ASL/ASR, LSL/LSR, ROL/ROR, ROXL/ROXR — register and memory forms.

type shiftKind int

const (
	shiftAS shiftKind = iota
	shiftLS
	shiftRO
	shiftROX
)

func registerShiftOps() {
	for _, s := range []struct {
		bits  uint16
		width uint
	}{{0, 8}, {1, 16}, {2, 32}} {
		sz := s
		for _, dir := range []struct {
			left bool
			bit  uint16
		}{{false, 0}, {true, 0x100}} {
			d := dir
			// register shifts: 1110 ccc d ss i tt rrr (i=0 count in ir
			// bits11-9, i=1 count in Dn). Bit 8 (direction) is fixed in the
			// mask below even though it's folded into the template via
			// d.bit: left and right otherwise share the same popcount and
			// the jump table's tie-break would drop whichever direction
			// lost the race to register first.
			addOp(0xe000|sz.bits<<6|d.bit, 0xf1d8, variantAll, func(c *CPU) error { return opShiftReg(c, sz.width, shiftAS, d.left) })
			addOp(0xe008|sz.bits<<6|d.bit, 0xf1d8, variantAll, func(c *CPU) error { return opShiftReg(c, sz.width, shiftLS, d.left) })
			addOp(0xe010|sz.bits<<6|d.bit, 0xf1d8, variantAll, func(c *CPU) error { return opShiftReg(c, sz.width, shiftROX, d.left) })
			addOp(0xe018|sz.bits<<6|d.bit, 0xf1d8, variantAll, func(c *CPU) error { return opShiftReg(c, sz.width, shiftRO, d.left) })
		}
	}
	// memory shifts (word only, count=1): 1110 ttt d 11 mmmsss. Bit 8
	// (direction) and bits 11-9 (shift type) must both be fixed in the
	// mask; 0xffc0 leaves only the EA field (bits 5-0) free.
	addOp(0xe0c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftAS, false) })
	addOp(0xe1c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftAS, true) })
	addOp(0xe2c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftLS, false) })
	addOp(0xe3c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftLS, true) })
	addOp(0xe4c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftROX, false) })
	addOp(0xe5c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftROX, true) })
	addOp(0xe6c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftRO, false) })
	addOp(0xe7c0, 0xffc0, variantAll, func(c *CPU) error { return opShiftMem(c, shiftRO, true) })
}

func opShiftReg(c *CPU, width uint, kind shiftKind, left bool) error {
	reg := int(c.ir & 7)
	var count uint
	if c.ir&0x20 != 0 {
		count = uint(c.dar[(c.ir>>9)&7] % 64)
	} else {
		n := (c.ir >> 9) & 7
		if n == 0 {
			n = 8
		}
		count = uint(n)
	}
	v := uint64(c.regValue(reg, width))
	result := c.shiftAndSetFlags(kind, left, v, width, count)
	c.setRegValue(reg, width, uint32(result))
	return nil
}

func opShiftMem(c *CPU, kind shiftKind, left bool) error {
	modeReg := uint8(c.ir & 0x3f)
	op := c.resolveEA(modeReg, 16, modeRMW)
	v := uint64(c.readOperand(op, 16))
	result := c.shiftAndSetFlags(kind, left, v, 16, 1)
	c.writeOperand(op, 16, uint32(result))
	return nil
}

// shiftAndSetFlags performs count single-bit shifts/rotates of v and
// updates N/Z/V/C/X to match spec.md §4.4's per-instruction-family rules,
// then returns the width-truncated result.
func (c *CPU) shiftAndSetFlags(kind shiftKind, left bool, v uint64, width, count uint) uint64 {
	v = truncate(v, width)
	if count == 0 {
		c.flags.n = v&signBit(width) != 0
		c.flags.z = v == 0
		c.flags.v = false
		c.flags.c = false
		return v
	}

	startSign := v & signBit(width)
	var lastOut bool
	overflow := false
	x := c.flags.x

	for i := uint(0); i < count; i++ {
		switch kind {
		case shiftAS:
			if left {
				lastOut = v&signBit(width) != 0
				v = truncate(v<<1, width)
				if v&signBit(width) != startSign {
					overflow = true
				}
			} else {
				lastOut = v&1 != 0
				sign := v & signBit(width)
				v = (v >> 1) | sign
			}
		case shiftLS:
			if left {
				lastOut = v&signBit(width) != 0
				v = truncate(v<<1, width)
			} else {
				lastOut = v&1 != 0
				v >>= 1
			}
		case shiftRO:
			if left {
				lastOut = v&signBit(width) != 0
				v = truncate(v<<1, width)
				if lastOut {
					v |= 1
				}
			} else {
				lastOut = v&1 != 0
				v >>= 1
				if lastOut {
					v |= signBit(width)
				}
			}
		case shiftROX:
			if left {
				newX := v&signBit(width) != 0
				v = truncate(v<<1, width)
				if x {
					v |= 1
				}
				x = newX
				lastOut = newX
			} else {
				newX := v&1 != 0
				v >>= 1
				if x {
					v |= signBit(width)
				}
				x = newX
				lastOut = newX
			}
		}
	}

	c.flags.n = v&signBit(width) != 0
	c.flags.z = v == 0
	switch kind {
	case shiftAS:
		c.flags.v = overflow
		c.flags.c = lastOut
		c.flags.x = lastOut
	case shiftLS:
		c.flags.v = false
		c.flags.c = lastOut
		c.flags.x = lastOut
	case shiftRO:
		c.flags.v = false
		c.flags.c = lastOut
	case shiftROX:
		c.flags.v = false
		c.flags.c = x
		c.flags.x = x
	}
	return v
}
