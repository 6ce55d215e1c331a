// Package disasm implements a line disassembler for the M680x0
// instruction set: one exported Step call turns the bytes at a program
// address into a text mnemonic plus the byte count to advance by,
// without interpreting control flow (a BRA disassembles as "BRA
// $00001000", it does not follow the branch).
package disasm

import (
	"fmt"

	"github.com/user-none/go-m68k/bus"
)

// Step disassembles the instruction at addr, returning its text and the
// number of bytes to advance the caller's own PC by. It always reads at
// least one 16-bit word past addr, so callers must ensure that word is
// addressable.
func Step(addr uint32, b bus.Bus) (string, int) {
	op := b.Read16(addr)

	switch {
	case op == 0x4e71:
		return "NOP", 2
	case op == 0x4e75:
		return "RTS", 2
	case op == 0x4e73:
		return "RTE", 2
	case op == 0x4e77:
		return "RTR", 2
	case op == 0x4e70:
		return "RESET", 2
	case op&0xfff0 == 0x4e40:
		return fmt.Sprintf("TRAP #%d", op&0xf), 2
	case op&0xf100 == 0x7000 && op&0xf000 == 0x7000 && op&0x0100 == 0:
		reg := (op >> 9) & 7
		data := int8(op & 0xff)
		return fmt.Sprintf("MOVEQ #%d,D%d", data, reg), 2
	case op&0xf000 == 0x6000:
		cc := (op >> 8) & 0xf
		disp := int8(op & 0xff)
		mnem := branchMnemonic(uint8(cc))
		if disp == 0 {
			ext := b.Read16(addr + 2)
			return fmt.Sprintf("%s $%08x", mnem, addr+2+uint32(int16(ext))), 4
		}
		return fmt.Sprintf("%s $%08x", mnem, uint32(int32(addr)+2+int32(disp))), 2
	case op&0xf000 == 0x1000:
		return decodeMove(addr, op, "MOVE.B", b)
	case op&0xf000 == 0x3000:
		return decodeMove(addr, op, "MOVE.W", b)
	case op&0xf000 == 0x2000:
		return decodeMove(addr, op, "MOVE.L", b)
	case op&0xffc0 == 0x4ac0:
		ea, n := decodeEAText(uint8(op&0x3f), addr+2, 8, b)
		return fmt.Sprintf("TAS %s", ea), 2 + n
	case op&0xf1c0 == 0x41c0:
		reg := (op >> 9) & 7
		ea, n := decodeEAText(uint8(op&0x3f), addr+2, 32, b)
		return fmt.Sprintf("LEA %s,A%d", ea, reg), 2 + n
	}
	return fmt.Sprintf("DC.W $%04x", op), 2
}

func branchMnemonic(cc uint8) string {
	names := [...]string{"BRA", "BSR", "BHI", "BLS", "BCC", "BCS", "BNE", "BEQ",
		"BVC", "BVS", "BPL", "BMI", "BGE", "BLT", "BGT", "BLE"}
	return names[cc&0xf]
}

func decodeMove(addr uint32, op uint16, mnem string, b bus.Bus) (string, int) {
	srcField := uint8(op & 0x3f)
	dstField := uint8((op>>9)&7 | (op>>3)&0x38)
	width := uint(16)
	switch mnem {
	case "MOVE.B":
		width = 8
	case "MOVE.L":
		width = 32
	}
	srcText, srcN := decodeEAText(srcField, addr+2, width, b)
	dstText, dstN := decodeEAText(dstField, addr+2+uint32(srcN), width, b)
	return fmt.Sprintf("%s %s,%s", mnem, srcText, dstText), 2 + srcN + dstN
}

// decodeEAText renders a 6-bit mode/reg field as assembler-style text
// without mutating any CPU state, returning the extra bytes (beyond the
// opcode word) this operand consumes from the instruction stream.
func decodeEAText(modeReg uint8, extAddr uint32, width uint, b bus.Bus) (string, int) {
	mode := (modeReg >> 3) & 7
	reg := modeReg & 7
	switch mode {
	case 0:
		return fmt.Sprintf("D%d", reg), 0
	case 1:
		return fmt.Sprintf("A%d", reg), 0
	case 2:
		return fmt.Sprintf("(A%d)", reg), 0
	case 3:
		return fmt.Sprintf("(A%d)+", reg), 0
	case 4:
		return fmt.Sprintf("-(A%d)", reg), 0
	case 5:
		disp := int16(b.Read16(extAddr))
		return fmt.Sprintf("%d(A%d)", disp, reg), 2
	case 6:
		ext := b.Read16(extAddr)
		disp := int8(ext & 0xff)
		return fmt.Sprintf("%d(A%d,Xn)", disp, reg), 2
	case 7:
		switch reg {
		case 0:
			v := b.Read16(extAddr)
			return fmt.Sprintf("$%04x.W", v), 2
		case 1:
			v := uint32(b.Read16(extAddr))<<16 | uint32(b.Read16(extAddr+2))
			return fmt.Sprintf("$%08x.L", v), 4
		case 2:
			disp := int16(b.Read16(extAddr))
			return fmt.Sprintf("%d(PC)", disp), 2
		case 3:
			ext := b.Read16(extAddr)
			disp := int8(ext & 0xff)
			return fmt.Sprintf("%d(PC,Xn)", disp), 2
		case 4:
			switch width {
			case 8:
				return fmt.Sprintf("#$%02x", b.Read16(extAddr)&0xff), 2
			case 16:
				return fmt.Sprintf("#$%04x", b.Read16(extAddr)), 2
			default:
				v := uint32(b.Read16(extAddr))<<16 | uint32(b.Read16(extAddr+2))
				return fmt.Sprintf("#$%08x", v), 4
			}
		}
	}
	return "?", 0
}
