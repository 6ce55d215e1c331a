package m68k

// Effective-address engine, spec.md §4.3. An operand is resolved into an
// ea value: either a register (dn/an, read/written directly) or a memory
// address (read/written through the bus). instructionMode tells the
// resolver whether the caller intends to load, read-modify-write, or
// store-only; the resolver uses it only to flag a long -(An) operand that
// is not a plain load for the high-word-first predecrement write (see
// busWrite32).
type instructionMode int

const (
	modeLoad instructionMode = iota
	modeRMW
	modeStore
)

// operand is the resolved effective address: a data/address register
// (isReg set, reg 0-15), an immediate (isImm set, value in imm), or a
// memory location (addr).
type operand struct {
	isReg bool
	isImm bool
	reg   int // 0-7 Dn, 8-15 An
	addr  uint32
	imm   uint32
}

// width in bits for size field encodings (00=byte,01=word,10=long).
func sizeWidth(sizeField uint8) uint {
	switch sizeField & 3 {
	case 0:
		return 8
	case 1:
		return 16
	default:
		return 32
	}
}

// resolveEA decodes a 6-bit mode/reg field (bits 5-3 mode, 2-0 reg) into
// an operand, consuming extension words from the instruction stream as
// needed and applying An post-increment/pre-decrement.
func (c *CPU) resolveEA(modeReg uint8, width uint, im instructionMode) operand {
	mode := (modeReg >> 3) & 7
	reg := int(modeReg & 7)
	switch mode {
	case 0: // Dn
		return operand{isReg: true, reg: reg}
	case 1: // An
		return operand{isReg: true, reg: 8 + reg}
	case 2: // (An)
		return operand{addr: c.dar[8+reg]}
	case 3: // (An)+
		addr := c.dar[8+reg]
		inc := width / 8
		if width == 8 && reg == 7 {
			inc = 2 // A7 stays word-aligned
		}
		c.dar[8+reg] = addr + uint32(inc)
		return operand{addr: addr}
	case 4: // -(An)
		dec := width / 8
		if width == 8 && reg == 7 {
			dec = 2
		}
		addr := c.dar[8+reg] - uint32(dec)
		c.dar[8+reg] = addr
		if width == 32 {
			c.predecWritePending = im != modeLoad
		}
		return operand{addr: addr}
	case 5: // (d16,An)
		disp := signExtend32(uint32(c.fetchWord()), 16)
		return operand{addr: c.dar[8+reg] + disp}
	case 6: // (d8,An,Xn) or full extension word on 020+
		return c.resolveBriefOrFull(c.dar[8+reg])
	case 7:
		switch reg {
		case 0: // Abs.W
			return operand{addr: signExtend32(uint32(c.fetchWord()), 16)}
		case 1: // Abs.L
			hi := uint32(c.fetchWord())
			lo := uint32(c.fetchWord())
			return operand{addr: hi<<16 | lo}
		case 2: // (d16,PC)
			base := c.pc
			disp := signExtend32(uint32(c.fetchWord()), 16)
			return operand{addr: base + disp}
		case 3: // (d8,PC,Xn) or full extension word
			return c.resolveBriefOrFull(c.pc)
		case 4: // #imm
			switch width {
			case 8:
				return operand{isImm: true, imm: uint32(c.fetchWord() & 0xff)}
			case 16:
				return operand{isImm: true, imm: uint32(c.fetchWord())}
			default:
				hi := uint32(c.fetchWord())
				lo := uint32(c.fetchWord())
				return operand{isImm: true, imm: hi<<16 | lo}
			}
		}
	}
	return operand{}
}

// resolveBriefOrFull decodes the extension word following mode 110/111-011,
// dispatching to the plain brief-format decode on pre-020 cores and to the
// 020+ full-format decode (ea_020.go) when the extension word's bit 8 is
// set.
func (c *CPU) resolveBriefOrFull(base uint32) operand {
	ext := c.peekWord()
	if c.cpuType.has020Plus() && ext&0x0100 != 0 {
		return operand{addr: c.resolveFullExtension(base)}
	}
	c.fetchWord()
	return operand{addr: c.decodeBriefExtension(base, ext)}
}

// peekWord reads the next instruction word without advancing PC, needed
// to inspect the extension-word format bit before deciding how many words
// to consume.
func (c *CPU) peekWord() uint16 {
	return c.readCode16(c.pc)
}

// decodeBriefExtension implements the classic brief extension word:
// bit15 Dn/An, bit14-12 register, bit11 W/L, bits10-9 scale (020+ only,
// ignored pre-020), bit7..0 8-bit displacement.
func (c *CPU) decodeBriefExtension(base uint32, ext uint16) uint32 {
	reg := int((ext >> 12) & 7)
	var idx uint32
	if ext&(1<<15) != 0 {
		idx = c.dar[8+reg]
	} else {
		idx = c.dar[reg]
	}
	if ext&(1<<11) == 0 {
		idx = uint32(signExtend32(idx, 16))
	}
	scale := uint32(1)
	if c.cpuType.has020Plus() {
		scale = 1 << ((ext >> 9) & 3)
	}
	disp := signExtend32(uint32(ext&0xff), 8)
	return base + idx*scale + disp
}

// readOperand fetches the value at op for the given width, handling the
// immediate-operand and register cases.
func (c *CPU) readOperand(op operand, width uint) uint32 {
	if op.isImm {
		return op.imm
	}
	if op.isReg {
		return c.regValue(op.reg, width)
	}
	switch width {
	case 8:
		return uint32(c.busRead8(op.addr))
	case 16:
		return uint32(c.busRead16(op.addr))
	default:
		return c.busRead32(op.addr)
	}
}

// writeOperand stores v into op at the given width.
func (c *CPU) writeOperand(op operand, width uint, v uint32) {
	if op.isReg {
		c.setRegValue(op.reg, width, v)
		return
	}
	switch width {
	case 8:
		c.busWrite8(op.addr, uint8(v))
	case 16:
		c.busWrite16(op.addr, uint16(v))
	default:
		c.busWrite32(op.addr, v)
	}
}

// regValue reads reg (0-7 Dn, 8-15 An) at width, sign-agnostic (a plain
// bit-width truncation — callers needing sign extension, e.g. An reads,
// call dar directly since An is always effectively 32-bit).
func (c *CPU) regValue(reg int, width uint) uint32 {
	if reg >= 8 {
		return c.dar[reg]
	}
	return uint32(truncate(uint64(c.dar[reg]), width))
}

// setRegValue writes the low `width` bits of reg, leaving the upper bits
// of a Dn untouched (byte/word operations on Dn are partial-register
// writes); An writes always replace the full 32 bits.
func (c *CPU) setRegValue(reg int, width uint, v uint32) {
	if reg >= 8 || width == 32 {
		c.dar[reg] = v
		return
	}
	m := uint32(mask(width))
	c.dar[reg] = (c.dar[reg] &^ m) | (v & m)
}

// eaExtraWords reports how many extension words an operand takes without
// resolving it. It counts #imm as one word at any size and (d8,An,Xn) /
// (d8,PC,Xn) as one brief-format word, so it does not match resolveEA for
// long immediates or 020+ full-format extensions. Nothing in the module
// calls it: the disassembler lives in its own package, and the CPU's
// decode path lets resolveEA advance pc as it goes.
func eaExtraWords(modeReg uint8) int {
	mode := (modeReg >> 3) & 7
	reg := modeReg & 7
	switch mode {
	case 5, 6:
		return 1
	case 7:
		switch reg {
		case 0, 2, 3, 4:
			return 1
		case 1:
			return 2
		}
	}
	return 0
}
