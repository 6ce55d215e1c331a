package m68k

// CPUType enumerates the supported M680x0 family variants, mirroring the
// CPU_TYPE_* bitmask constants of the studied core (original_source/
// m68kcpu.h lines 195-205) as a closed Go enum instead of a bitmask, since
// Go callers switch on "which one" rather than "which set".
type CPUType int

const (
	CPUInvalid CPUType = iota
	CPU68000
	CPU68008
	CPU68010
	CPU68EC020
	CPU68020
	CPU68EC030
	CPU68030
	CPU68EC040
	CPULC040
	CPU68040
	CPUSCC070
	cpuTypeMax
)

func (c CPUType) String() string {
	switch c {
	case CPU68000:
		return "68000"
	case CPU68008:
		return "68008"
	case CPU68010:
		return "68010"
	case CPU68EC020:
		return "68EC020"
	case CPU68020:
		return "68020"
	case CPU68EC030:
		return "68EC030"
	case CPU68030:
		return "68030"
	case CPU68EC040:
		return "68EC040"
	case CPULC040:
		return "LC040"
	case CPU68040:
		return "68040"
	case CPUSCC070:
		return "SCC070"
	}
	return "invalid"
}

// variantGroup buckets CPUType into the generational families the decode
// and exception engines branch on.
type variantGroup int

const (
	groupPre010  variantGroup = iota // 68000/68008: 3-word/7-word frames, brief EA only
	group010                        // 68010: format-0000 frames, VBR/SFC/DFC
	group020Plus                    // 020/030/040 and EC/LC variants: format-0010/0001/1x1x frames, full EA
)

func (c CPUType) group() variantGroup {
	switch c {
	case CPU68000, CPU68008:
		return groupPre010
	case CPU68010:
		return group010
	default:
		return group020Plus
	}
}

// has010Plus reports whether VBR/SFC/DFC and format-0000 frames apply.
func (c CPUType) has010Plus() bool {
	return c.group() != groupPre010
}

// has020Plus reports whether the full EA extension word, CACR/CAAR, the
// instruction cache and 32-bit addressing apply.
func (c CPUType) has020Plus() bool {
	return c.group() == group020Plus
}

// addressMask returns the bus address mask for the variant: 24-bit on
// 000/008/010/EC020, 32-bit on 020 and later (spec.md §6).
func (c CPUType) addressMask() uint32 {
	if c == CPU68020 || c == CPU68EC030 || c == CPU68030 ||
		c == CPU68EC040 || c == CPULC040 || c == CPU68040 || c == CPUSCC070 {
		return 0xFFFFFFFF
	}
	return 0x00FFFFFF
}

// srMask returns the bits of SR implemented by the variant. All variants
// implement the five CCR flags (X/N/Z/V/C) plus T1, S and the interrupt
// mask; T0 and M are
// 020+-only (68020 introduced the master/interrupt stack distinction and
// the second trace bit).
func (c CPUType) srMask() uint16 {
	m := srT1 | srS | srIntMask | 0x001f
	if c.has020Plus() {
		m |= srT0 | srM
	}
	return m
}
