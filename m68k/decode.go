package m68k

import "math/bits"

// cpuVariantMask is a bitmask over the CPUType enum, letting one
// opDescriptor declare which variants implement it instead of every
// variant needing its own copy of the table (spec.md §4.2's "per-variant
// decode table").
type cpuVariantMask uint16

func variantBit(t CPUType) cpuVariantMask { return 1 << cpuVariantMask(t) }

const variantAll = cpuVariantMask(0xffff)

func variantsFrom(t CPUType) cpuVariantMask {
	var m cpuVariantMask
	for v := t; v < cpuTypeMax; v++ {
		m |= variantBit(v)
	}
	return m
}

// opDescriptor is one entry in the package-level opcode table: template/
// mask identify which 16-bit opcodes it claims (opcode&mask==template),
// variants restricts which CPUType values implement it, and handler does
// the work. Narrower masks (more fixed bits, i.e. higher popcount) win
// ties against broader ones that also match, mirroring how a hand-written
// per-opcode switch would naturally let a specific case shadow a catch-all
// one falls through to.
type opDescriptor struct {
	template, mask uint16
	variants       cpuVariantMask
	handler        handlerFn
	cycles         uint8
}

// opcodeTable is populated once by registerOpcodes(), called from an
// init() the way package-level opcode tables are normally built; kept as
// an explicit function (rather than a literal) because several groups
// share a generator (size-looped MOVE, the eight shift/rotate kinds).
var opcodeTable []opDescriptor

func init() {
	registerOpcodes()
}

func addOp(template, mask uint16, variants cpuVariantMask, h handlerFn) {
	opcodeTable = append(opcodeTable, opDescriptor{template: template, mask: mask, variants: variants, handler: h})
}

// buildJumpTable walks opcodeTable once per SetCPUType call, picking for
// each of the 65536 possible opcode words the matching descriptor with
// the most specific (highest popcount) mask, restricted to descriptors
// whose variants bit includes t. Unclaimed slots decode to illegalOp.
func buildJumpTable(t CPUType) [65536]handlerFn {
	var table [65536]handlerFn
	var bestMaskBits [65536]int
	for i := range table {
		table[i] = illegalOp
		bestMaskBits[i] = -1
	}
	bit := variantBit(t)
	for _, d := range opcodeTable {
		if d.variants&bit == 0 {
			continue
		}
		popcount := bits.OnesCount16(d.mask)
		// Enumerate every opcode matching template under mask.
		free := ^d.mask
		for sub := uint32(free); ; sub = (sub - 1) & uint32(free) {
			op := d.template | uint16(sub)
			if popcount > bestMaskBits[op] {
				table[op] = d.handler
				bestMaskBits[op] = popcount
			}
			if sub == 0 {
				break
			}
		}
	}
	return table
}

// illegalOp is the default handler for any opcode with no matching
// descriptor. A non-nil Illg hook sees the opcode first; when it reports
// the opcode handled, no exception is raised.
func illegalOp(c *CPU) error {
	if c.hooks.Illg != nil && c.hooks.Illg(c.ir) {
		return nil
	}
	return IllegalInstruction{Opcode: c.ir, PC: c.ppc}
}
