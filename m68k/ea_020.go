package m68k

// Full extension-word decoding, 68020 and later (§4.3's "020+ full
// extension word"). The word's bit 8 set (checked by the caller) selects
// this format over the brief format: base/index suppress, an index
// scale, a variable-size base displacement, and optional memory-indirect
// pre/post-indexing with a variable-size outer displacement.
func (c *CPU) resolveFullExtension(base uint32) uint32 {
	ext := c.fetchWord()

	baseSuppress := ext&(1<<7) != 0
	indexSuppress := ext&(1<<6) != 0
	baseDispSize := (ext >> 4) & 3
	iis := ext & 7 // index/indirect selector

	var idx uint32
	if !indexSuppress {
		reg := int((ext >> 12) & 7)
		if ext&(1<<15) != 0 {
			idx = c.dar[8+reg]
		} else {
			idx = c.dar[reg]
		}
		if ext&(1<<11) == 0 {
			idx = uint32(signExtend32(idx, 16))
		}
		scale := uint32(1) << ((ext >> 9) & 3)
		idx *= scale
	}

	var b uint32
	if !baseSuppress {
		b = base
	}

	switch baseDispSize {
	case 2:
		b += signExtend32(uint32(c.fetchWord()), 16)
	case 3:
		hi := uint32(c.fetchWord())
		lo := uint32(c.fetchWord())
		b += hi<<16 | lo
	}

	// iis == 0 is the plain (no-memory-indirect) case: base + index.
	if iis == 0 {
		return b + idx
	}

	// Memory-indirect pre- or post-indexed: iis bit2 selects pre(0-3)
	// vs post(4-7); the low two bits select the outer displacement size.
	preIndexed := iis < 4
	outerSize := iis & 3

	var addr uint32
	if preIndexed {
		addr = b + idx
		addr = c.busRead32(addr)
	} else {
		addr = c.busRead32(b)
		addr += idx
	}

	switch outerSize {
	case 2:
		addr += signExtend32(uint32(c.fetchWord()), 16)
	case 3:
		hi := uint32(c.fetchWord())
		lo := uint32(c.fetchWord())
		addr += hi<<16 | lo
	}
	return addr
}
