// Package m68k implements a portable, cycle-approximate interpreter for
// the Motorola M680x0 family. It is built from the same pieces as the
// studied 6502 core (register file, memory gateway, decode/dispatch,
// execution loop with a cycle budget) generalised to the 68k's wider
// registers, richer addressing modes and stacked-frame exception model.
package m68k

import (
	"fmt"

	"github.com/user-none/go-m68k/bus"
	"github.com/user-none/go-m68k/irqline"
	"github.com/user-none/go-m68k/mmuif"
)

// stopState mirrors spec.md §3's `stopped` field.
type stopState int

const (
	running stopState = iota
	stoppedSTOP        // STOP executed; wakes on IRQ above mask
	stoppedHALT        // double fault; wakes only on pulse reset
)

// runMode mirrors spec.md §3's `run_mode`, used for double-fault detection.
type runMode int

const (
	runModeNormal runMode = iota
	runModeWritingFrame
	runModeFrameDone
)

const (
	cacrEI = 0x01 // enable instruction cache
	cacrFI = 0x02 // freeze instruction cache
	cacrCEI = 0x04 // clear single entry
	cacrCI  = 0x08 // clear instruction cache
	cacrIBE = 0x10 // instruction burst enable
)

// Hooks bundles the optional host callbacks of spec.md §6. Every field may
// be left nil; the core checks before calling, the same way the teacher's
// Chip checks p.irq/p.nmi/p.rdy for nil before use (cpu/cpu.go Tick()).
// BkptAck, CmpiL and InstructionHook are stored but never called by the
// core.
type Hooks struct {
	IntAck          func(level uint8) int // returns 0-255, AutovectorSentinel or SpuriousSentinel
	BkptAck         func(data uint8)
	Reset           func()
	RTE             func()
	CmpiL           func(value uint32, reg int)
	TAS             func() bool // returns allow_writeback
	Illg            func(opcode uint16) bool // returns handled
	PCChanged       func(newPC uint32)
	SetFC           func(fc uint8)
	InstructionHook func(pc uint32)
}

// Sentinel int_ack return values, spec.md §6/§4.7.
const (
	AutovectorSentinel = -1
	SpuriousSentinel   = -2
)

// CPU is the architectural state aggregate, equivalent in role to the
// teacher's cpu.Chip but holding the much larger 68k register/exception
// state of spec.md §3.
type CPU struct {
	cpuType CPUType

	dar    [16]uint32 // D0-D7, A0-A7; dar[15] is the live A7/SP
	spBank [7]uint32  // inactive USP/ISP/MSP, indexed by spIndex

	pc, ppc uint32
	ir      uint16

	vbr      uint32
	sfc, dfc uint8
	cacr, caar uint32

	flags flags

	intLevel   uint8 // current IPL asserted by host, 0-7
	nmiPending bool
	virqLine   irqline.Level
	nmiLine    irqline.NMI

	stopped stopState
	runMode runMode

	prefAddr uint32
	prefData uint32
	prefValid bool

	addressMask uint32
	srMaskBits  uint16

	icache    [icacheLines]icacheLine
	icacheValid bool

	xlateRead, xlateWrite   []bus.Window
	xlateCodeLRU, xlateFCReadLRU, xlateFCWriteLRU bus.Window
	xlateCodeLRUValid, xlateFCReadLRUValid, xlateFCWriteLRUValid bool

	cycInstruction *[65536]uint8
	cycException   *[256]uint8

	bus  bus.Bus
	mmu  mmuif.Translator
	hooks Hooks

	jumpTable [65536]handlerFn

	// address-error unwind state (spec.md §4.1)
	aerrPending    bool
	aerrAddress    uint32
	aerrWriteMode  bool
	aerrFC         uint8
	aerrInstr      bool

	tracePending bool

	// predecWritePending is set by the EA engine immediately before a
	// long write through a predecrement operand, so busWrite32 knows to
	// use the high-word-first ordering real 68k -(An) writes use.
	predecWritePending bool
}

type handlerFn func(c *CPU) error

// Config bundles the values needed to create a CPU, mirroring ChipDef in
// the teacher's Init (cpu/cpu.go).
type Config struct {
	CPUType        CPUType
	Bus            bus.Bus
	MMU            mmuif.Translator
	Hooks          Hooks
	CycInstruction *[65536]uint8 // optional; defaults to a flat table
	CycException   *[256]uint8   // optional; defaults to a flat table
}

// InvalidCPUState mirrors the teacher's InvalidCPUState error type
// (cpu/cpu.go), reused here for the 68k's own set of precondition checks.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// New creates a 68k core of the given variant in power-on state.
func New(cfg Config) (*CPU, error) {
	if cfg.CPUType <= CPUInvalid || cfg.CPUType >= cpuTypeMax {
		return nil, InvalidCPUState{fmt.Sprintf("CPU type %d is invalid", cfg.CPUType)}
	}
	if cfg.Bus == nil {
		return nil, InvalidCPUState{"Bus must not be nil"}
	}
	c := &CPU{
		bus:   cfg.Bus,
		mmu:   cfg.MMU,
		hooks: cfg.Hooks,
	}
	c.cycInstruction = cfg.CycInstruction
	if c.cycInstruction == nil {
		c.cycInstruction = defaultCycInstruction()
	}
	c.cycException = cfg.CycException
	if c.cycException == nil {
		c.cycException = defaultCycException()
	}
	c.SetCPUType(cfg.CPUType)
	c.PulseReset()
	return c, nil
}

// SetCPUType rebuilds the decode table, address/SR masks and cycle tables
// for the new variant (spec.md §6 set_cpu_type).
func (c *CPU) SetCPUType(t CPUType) {
	c.cpuType = t
	c.addressMask = t.addressMask()
	c.srMaskBits = t.srMask()
	c.jumpTable = buildJumpTable(t)
}

// spIndex maps (S,M) to the spBank slot, matching REG_USP/ISP/MSP =
// sp[0]/sp[4]/sp[6] in original_source/m68kcpu.h.
func spIndex(s, m bool) int {
	switch {
	case !s:
		return 0
	case m:
		return 6
	default:
		return 4
	}
}

// spSlot returns the stack pointer for (s,m), whether or not it is
// currently the live one in dar[15] (invariant I1, spec.md §3).
func (c *CPU) spSlot(s, m bool) uint32 {
	if s == c.flags.s && (!s || m == c.flags.m) {
		return c.dar[15]
	}
	return c.spBank[spIndex(s, m)]
}

// setSPSlot writes the stack pointer for (s,m).
func (c *CPU) setSPSlot(s, m bool, v uint32) {
	if s == c.flags.s && (!s || m == c.flags.m) {
		c.dar[15] = v
		return
	}
	c.spBank[spIndex(s, m)] = v
}

// switchSP implements invariant I1: when (S,M) changes, save the
// outgoing stack pointer to its bank slot and load the incoming one into
// dar[15].
func (c *CPU) switchSP(newS, newM bool) {
	if newS == c.flags.s && (!newS || newM == c.flags.m) {
		return
	}
	c.spBank[spIndex(c.flags.s, c.flags.m)] = c.dar[15]
	c.dar[15] = c.spBank[spIndex(newS, newM)]
}

// setSR implements the unified SR write path of spec.md §4.4: mask to
// sr_mask, unpack into the flag bank, and swap the active stack pointer
// if S or M changed.
func (c *CPU) setSR(v uint16) {
	v &= c.srMaskBits
	newS := v&srS != 0
	newM := v&srM != 0
	c.switchSP(newS, newM)
	c.flags.setSR(v)
}

// PulseReset reloads SSP and PC from vectors 0 and 1, clears
// stopped/halt/run_mode, resets CACR, invalidates caches and sets
// SR = 0x2700 (spec.md §3 Lifecycles, §6 pulse_reset).
func (c *CPU) PulseReset() {
	c.runMode = runModeNormal
	c.stopped = running
	c.cacr = 0
	c.caar = 0
	c.invalidateICache()
	c.prefValid = false
	c.xlateCodeLRUValid = false
	c.xlateFCReadLRUValid = false
	c.xlateFCWriteLRUValid = false
	c.nmiPending = false
	c.nmiLine.Clear()

	c.flags = flags{s: true, intMask: 7}
	c.dar[15] = c.busRead32(0)
	c.pc = c.busRead32(4) & c.addressMask
	c.ppc = c.pc
	c.vbr = 0
	c.sfc, c.dfc = 0, 0

	if c.hooks.Reset != nil {
		c.hooks.Reset()
	}
}

// SetIRQ updates the asserted interrupt priority level (spec.md §6
// set_irq). Safe to call from another goroutine; sampled at the next
// inter-instruction boundary.
func (c *CPU) SetIRQ(level uint8) {
	c.virqLine.Set(level & 0x7)
}

// SetNMI raises the NMI edge (spec.md §6 set_nmi).
func (c *CPU) SetNMI() {
	c.nmiLine.Pulse()
}

// RegisterReadRange installs a fast-path read window (spec.md §6
// register_read_range).
func (c *CPU) RegisterReadRange(lower, upper uint32, host []byte) {
	c.xlateRead = append(c.xlateRead, bus.Window{Lower: lower, Upper: upper, Host: host})
}

// RegisterWriteRange installs a fast-path write window (spec.md §6
// register_write_range).
func (c *CPU) RegisterWriteRange(lower, upper uint32, host []byte) {
	c.xlateWrite = append(c.xlateWrite, bus.Window{Lower: lower, Upper: upper, Host: host})
}

// CPUType returns the currently configured variant.
func (c *CPU) CPUType() CPUType { return c.cpuType }

// Halted reports whether the CPU is in the double-fault HALT state.
func (c *CPU) Halted() bool { return c.stopped == stoppedHALT }

// Stopped reports whether the CPU executed STOP and is awaiting a
// sufficiently high interrupt.
func (c *CPU) Stopped() bool { return c.stopped == stoppedSTOP }
