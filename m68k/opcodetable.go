package m68k

// registerOpcodes populates the package-level opcodeTable once, grouped
// the way the instruction set reference groups them (data movement,
// integer arithmetic, logical, shift/rotate, bit manipulation, program
// control, system control) rather than by encoding bit pattern, matching
// how the studied core's opcode table comments group its own 6502
// mnemonics by family even though the dispatch itself is flat.
func registerOpcodes() {
	registerMoveOps()
	registerArithOps()
	registerLogicOps()
	registerShiftOps()
	registerBitOps()
	registerBranchOps()
	registerCtrlOps()
	registerBCDOps()
}
