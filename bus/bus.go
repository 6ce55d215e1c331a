// Package bus defines the host memory-gateway contract the m68k core reads
// and writes through, plus a flat RAM implementation and the translation
// range lookup used to install fast-path windows over it.
//
// This generalizes memory.Bank from an 8-bit-wide, 16-bit-address 6502
// memory map to the wider, big-endian-on-the-wire 68k bus: three transfer
// widths instead of one, and a 24/32-bit address space instead of 16.
package bus

import (
	"fmt"
	"math/rand"
)

// Bus is the minimum a host must implement for the core to fetch
// instructions and access operands. All addresses arrive already masked by
// the CPU's address_mask; all multi-byte values are big-endian on the wire.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
}

// PredecLongWriter is implemented optionally by a Bus that wants to honor
// the 68k "predecrement long writes high word first" quirk. If a Bus does
// not implement it, the core falls back to a plain Write32.
type PredecLongWriter interface {
	Write32PredecHighFirst(addr uint32, v uint32)
}

// Ram is a flat, power-of-two-sized RAM implementing Bus directly. It is
// the host memory a standalone test or tool hands the core; a real system
// emulator would instead implement Bus itself to route through its own
// memory map, the way memory.Bank lets 6502 hosts chain banks.
type Ram struct {
	mem  []uint8
	mask uint32
}

// NewRam allocates a RAM bank of the given size, which must be a power of
// two. Addresses alias (wrap) within the bank on Read/Write, matching
// memory.ram's masking behaviour.
func NewRam(size int) (*Ram, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	return &Ram{
		mem:  make([]uint8, size),
		mask: uint32(size - 1),
	}, nil
}

// PowerOn randomizes the RAM contents, matching ram.PowerOn's policy of
// modeling undefined power-on state rather than a deterministic zero fill.
func (r *Ram) PowerOn(rng *rand.Rand) {
	for i := range r.mem {
		r.mem[i] = uint8(rng.Intn(256))
	}
}

// Zero fills the RAM with zero bytes. Useful for test fixtures that want
// deterministic state instead of PowerOn's randomization.
func (r *Ram) Zero() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// Load copies b into the RAM starting at addr, wrapping per the bank mask.
func (r *Ram) Load(addr uint32, b []byte) {
	for i, v := range b {
		r.mem[(addr+uint32(i))&r.mask] = v
	}
}

func (r *Ram) Read8(addr uint32) uint8 {
	return r.mem[addr&r.mask]
}

func (r *Ram) Read16(addr uint32) uint16 {
	hi := uint16(r.mem[addr&r.mask])
	lo := uint16(r.mem[(addr+1)&r.mask])
	return hi<<8 | lo
}

func (r *Ram) Read32(addr uint32) uint32 {
	return uint32(r.Read16(addr))<<16 | uint32(r.Read16(addr+2))
}

func (r *Ram) Write8(addr uint32, v uint8) {
	r.mem[addr&r.mask] = v
}

func (r *Ram) Write16(addr uint32, v uint16) {
	r.mem[addr&r.mask] = uint8(v >> 8)
	r.mem[(addr+1)&r.mask] = uint8(v)
}

func (r *Ram) Write32(addr uint32, v uint32) {
	r.Write16(addr, uint16(v>>16))
	r.Write16(addr+2, uint16(v))
}

// Write32PredecHighFirst implements PredecLongWriter: the high word is
// stored before the low word, matching real 68k -(An) long writes.
func (r *Ram) Write32PredecHighFirst(addr uint32, v uint32) {
	r.Write16(addr, uint16(v>>16))
	r.Write16(addr+2, uint16(v))
}

// Bytes returns the backing slice for [addr, addr+size), for callers that
// want to register a sub-range of this Ram as a fast-path Window. The
// returned slice aliases r.mem; it does not wrap on its own if addr+size
// crosses the bank boundary, so callers must keep registered windows
// within a single bank the way a real system's memory map would.
func (r *Ram) Bytes(addr uint32, size int) []byte {
	return r.mem[addr&r.mask : addr&r.mask+uint32(size)]
}

// Window is a registered fast-path range: addresses in [Lower, Upper) are
// served directly from Host instead of going through the Bus interface.
// Host must stay valid for the lifetime of the registration (§5).
type Window struct {
	Lower, Upper uint32
	Host         []byte
}

// Contains reports whether addr falls inside the window.
func (w Window) Contains(addr uint32) bool {
	return addr >= w.Lower && addr < w.Upper
}

// Lookup performs the sliding-window scan over registered ranges,
// returning the matching window and the byte offset into Host, or ok=false
// if no window covers addr. Callers are expected to cache the hit in a
// single-entry LRU the way the CPU's read/write/code caches do.
func Lookup(windows []Window, addr uint32) (w Window, off uint32, ok bool) {
	for _, win := range windows {
		if win.Contains(addr) {
			return win, addr - win.Lower, true
		}
	}
	return Window{}, 0, false
}
