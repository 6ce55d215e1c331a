package m68k

// Default cycle-count tables. These are approximate per-opcode base
// costs (spec.md's "cycle-approximate, not cycle-exact" scope): a host
// wanting real per-variant timings supplies its own table via
// Config.CycInstruction/CycException.
func defaultCycInstruction() *[65536]uint8 {
	var t [65536]uint8
	for i := range t {
		t[i] = 4
	}
	return &t
}

func defaultCycException() *[256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = 4
	}
	t[vectorReset] = 40
	t[vectorBusError] = 50
	t[vectorAddressError] = 50
	t[vectorIllegalInstruction] = 34
	t[vectorZeroDivide] = 38
	t[vectorCHK] = 40
	t[vectorTrapV] = 34
	t[vectorPrivilegeViolation] = 34
	t[vectorTrace] = 34
	t[vectorLineA] = 34
	t[vectorLineF] = 34
	for v := vectorAutovectorBase; v < vectorAutovectorBase+8; v++ {
		t[v] = 44
	}
	for v := vectorTrapBase; v < vectorTrapBase+16; v++ {
		t[v] = 34
	}
	return &t
}
