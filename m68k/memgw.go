package m68k

import "github.com/user-none/go-m68k/bus"

// Function-code values, matching FUNCTION_CODE_* in original_source/
// m68kcpu.h lines 188-192.
const (
	fcUserData          = 1
	fcUserProgram        = 2
	fcSupervisorData     = 5
	fcSupervisorProgram  = 6
	fcCPUSpace           = 7
)

// fc returns the function code for the current supervisor state and the
// requested space (program vs data).
func (c *CPU) fc(program bool) uint8 {
	base := uint8(fcUserData)
	if program {
		base = fcUserProgram
	}
	if c.flags.s {
		base += 4 // supervisor data/program are +4 over their user counterparts
	}
	if c.hooks.SetFC != nil {
		c.hooks.SetFC(base)
	}
	return base
}

// translate runs the address through the optional MMU collaborator. On a
// fault it raises the bus-error unwind rather than returning a value,
// matching "the operation aborts by the address-error mechanism" of
// spec.md §4.5. None of the bus accessors below call translate, so a
// configured MMU is not consulted on any access.
func (c *CPU) translate(addr uint32, fcVal uint8, write bool) uint32 {
	if c.mmu == nil {
		return addr
	}
	phys, fault := c.mmu.Translate(addr, fcVal, write)
	if fault != 0 {
		c.raiseBusFault(addr, write, fcVal)
	}
	return phys
}

// fastRead consults the registered read windows, using (and refreshing)
// the one-entry LRU cache per spec.md §4.5, and reports whether addr was
// served from host memory.
func (c *CPU) fastRead(addr uint32) (uint32, bool) {
	if c.xlateFCReadLRUValid && c.xlateFCReadLRU.Contains(addr) {
		return addr - c.xlateFCReadLRU.Lower, true
	}
	if w, off, ok := bus.Lookup(c.xlateRead, addr); ok {
		c.xlateFCReadLRU = w
		c.xlateFCReadLRUValid = true
		return off, true
	}
	return 0, false
}

func (c *CPU) fastWrite(addr uint32) (uint32, bool) {
	if c.xlateFCWriteLRUValid && c.xlateFCWriteLRU.Contains(addr) {
		return addr - c.xlateFCWriteLRU.Lower, true
	}
	if w, off, ok := bus.Lookup(c.xlateWrite, addr); ok {
		c.xlateFCWriteLRU = w
		c.xlateFCWriteLRUValid = true
		return off, true
	}
	return 0, false
}

func (c *CPU) addressErrorCheck(addr uint32, write bool, fcVal uint8) bool {
	if c.cpuType.has020Plus() {
		return false
	}
	if addr&1 == 0 {
		return false
	}
	c.aerrPending = true
	c.aerrAddress = addr
	c.aerrWriteMode = write
	c.aerrFC = fcVal
	return true
}

func (c *CPU) busRead8(addr uint32) uint8 {
	addr &= c.addressMask
	if w, off, ok := bus.Lookup(c.xlateRead, addr); ok {
		return w.Host[off]
	}
	return c.bus.Read8(addr)
}

func (c *CPU) busRead16(addr uint32) uint16 {
	addr &= c.addressMask
	if c.addressErrorCheck(addr, false, c.fc(false)) {
		panic(addressFault{})
	}
	if off, ok := c.fastRead(addr); ok {
		w := c.xlateFCReadLRU
		return uint16(w.Host[off])<<8 | uint16(w.Host[off+1])
	}
	return c.bus.Read16(addr)
}

func (c *CPU) busRead32(addr uint32) uint32 {
	addr &= c.addressMask
	if !c.cpuType.has020Plus() && addr&1 != 0 {
		c.aerrPending = true
		c.aerrAddress = addr
		c.aerrWriteMode = false
		c.aerrFC = c.fc(false)
		panic(addressFault{})
	}
	if off, ok := c.fastRead(addr); ok {
		w := c.xlateFCReadLRU
		return uint32(w.Host[off])<<24 | uint32(w.Host[off+1])<<16 | uint32(w.Host[off+2])<<8 | uint32(w.Host[off+3])
	}
	return c.bus.Read32(addr)
}

func (c *CPU) busWrite8(addr uint32, v uint8) {
	addr &= c.addressMask
	if w, off, ok := bus.Lookup(c.xlateWrite, addr); ok {
		w.Host[off] = v
		return
	}
	c.bus.Write8(addr, v)
}

func (c *CPU) busWrite16(addr uint32, v uint16) {
	addr &= c.addressMask
	if c.addressErrorCheck(addr, true, c.fc(false)) {
		panic(addressFault{})
	}
	if off, ok := c.fastWrite(addr); ok {
		w := c.xlateFCWriteLRU
		w.Host[off] = uint8(v >> 8)
		w.Host[off+1] = uint8(v)
		return
	}
	c.bus.Write16(addr, v)
}

func (c *CPU) busWrite32(addr uint32, v uint32) {
	addr &= c.addressMask
	if !c.cpuType.has020Plus() && addr&1 != 0 {
		c.aerrPending = true
		c.aerrAddress = addr
		c.aerrWriteMode = true
		c.aerrFC = c.fc(false)
		panic(addressFault{})
	}
	if off, ok := c.fastWrite(addr); ok {
		c.predecWritePending = false
		w := c.xlateFCWriteLRU
		w.Host[off] = uint8(v >> 24)
		w.Host[off+1] = uint8(v >> 16)
		w.Host[off+2] = uint8(v >> 8)
		w.Host[off+3] = uint8(v)
		return
	}
	if pw, ok := c.bus.(bus.PredecLongWriter); ok && c.predecWritePending {
		c.predecWritePending = false
		pw.Write32PredecHighFirst(addr, v)
		return
	}
	c.bus.Write32(addr, v)
}

// fetchWord reads the next instruction word through the prefetch shadow,
// advancing PC by 2, matching spec.md §4.1/§4.3's prefetch pipeline.
func (c *CPU) fetchWord() uint16 {
	v := c.readCode16(c.pc)
	c.pc += 2
	return v
}

// readCode16 reads a program-space word, consulting the I-cache on 020+
// (§4.8) when enabled via CACR.EI.
func (c *CPU) readCode16(addr uint32) uint16 {
	addr &= c.addressMask
	if c.cpuType.has020Plus() && c.cacr&cacrEI != 0 {
		return c.icacheRead(addr)
	}
	if w, off, ok := bus.Lookup(c.xlateRead, addr); ok {
		return uint16(w.Host[off])<<8 | uint16(w.Host[off+1])
	}
	return c.bus.Read16(addr)
}

// addressFault is the scoped non-local-jump payload for address errors,
// recovered once at the top of the execution loop (spec.md §4.1/§9's
// "checked unwind").
type addressFault struct{}

// busFault is the non-local-jump payload for MMU/host-signalled bus
// errors, distinct from addressFault since it carries no odd-address
// restriction and is available on every variant.
type busFault struct{}

// raiseBusFault records a host- or MMU-signalled bus error so the loop's
// recover() can hand it to the exception engine as a true bus error
// rather than an address error.
func (c *CPU) raiseBusFault(addr uint32, write bool, fcVal uint8) {
	c.aerrPending = true
	c.aerrAddress = addr
	c.aerrWriteMode = write
	c.aerrFC = fcVal
	panic(busFault{})
}
