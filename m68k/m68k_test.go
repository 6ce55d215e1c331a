package m68k

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/user-none/go-m68k/bus"
)

func newTestCPU(t *testing.T, cpuType CPUType) (*CPU, *bus.Ram) {
	t.Helper()
	ram, err := bus.NewRam(1 << 16)
	require.NoError(t, err)
	ram.Zero()
	// Reset vectors: SSP = 0x00008000, PC = 0x00000400.
	ram.Write32(0, 0x00008000)
	ram.Write32(4, 0x00000400)
	cpu, err := New(Config{CPUType: cpuType, Bus: ram})
	require.NoError(t, err)
	return cpu, ram
}

func TestPulseResetLoadsVectors(t *testing.T) {
	cpu, _ := newTestCPU(t, CPU68000)
	require.Equal(t, uint32(0x00008000), cpu.dar[15])
	require.Equal(t, uint32(0x00000400), cpu.pc)
	require.True(t, cpu.flags.s)
	require.Equal(t, uint8(7), cpu.flags.intMask)
}

func TestMoveqAndAdd(t *testing.T) {
	cpu, ram := newTestCPU(t, CPU68000)
	// MOVEQ #5,D0 ; MOVEQ #3,D1 ; ADD.L D1,D0
	ram.Write16(0x400, 0x7005) // MOVEQ #5,D0
	ram.Write16(0x402, 0x7203) // MOVEQ #3,D1
	ram.Write16(0x404, 0xd081) // ADD.L D1,D0
	cpu.Execute(12)
	require.Equal(t, uint32(8), cpu.dar[0])
	require.False(t, cpu.flags.z)
	require.False(t, cpu.flags.n)
}

func TestBraLoop(t *testing.T) {
	cpu, ram := newTestCPU(t, CPU68000)
	// MOVEQ #0,D0 ; loop: ADDQ.L #1,D0 ; CMPI.L #3,D0 ; BNE loop ; done: NOP
	ram.Write16(0x400, 0x7000)           // MOVEQ #0,D0
	ram.Write16(0x402, 0x5280)           // ADDQ.L #1,D0
	ram.Write16(0x404, 0x0c80)           // CMPI.L #3,D0
	ram.Write32(0x406, 0x00000003)
	ram.Write16(0x40a, 0x66f6)           // BNE -10 (back to 0x402)
	ram.Write16(0x40c, 0x4e71)           // NOP
	cpu.Execute(200)
	require.Equal(t, uint32(3), cpu.dar[0])
}

func TestIllegalOpcodeRaisesVector4(t *testing.T) {
	cpu, ram := newTestCPU(t, CPU68000)
	// Reserve vector 4 (illegal instruction) to point at 0x2000.
	ram.Write32(4*4, 0x00002000)
	ram.Write16(0x400, 0x4afc) // ILLEGAL
	cpu.step()
	require.Equal(t, uint32(0x2000), cpu.pc)
	require.True(t, cpu.flags.s)
}

func TestSetRegGetRegRoundTrip(t *testing.T) {
	cpu, _ := newTestCPU(t, CPU68020)
	require.NoError(t, cpu.SetReg(RegD3, 0xCAFEBABE))
	v, err := cpu.GetReg(RegD3)
	require.NoError(t, err)
	require.Equal(t, uint32(0xCAFEBABE), v)

	require.NoError(t, cpu.SetReg(RegSR, 0x2704))
	sr, err := cpu.GetReg(RegSR)
	require.NoError(t, err)
	require.Equal(t, uint32(0x2704)&uint32(cpu.srMaskBits), sr)
}

func TestSwitchSPOnSupervisorChange(t *testing.T) {
	cpu, _ := newTestCPU(t, CPU68000)
	cpu.dar[15] = 0x1000
	cpu.setSR(cpu.flags.sr() &^ srS) // drop to user mode
	require.False(t, cpu.flags.s)
	userSP := cpu.dar[15]
	require.NotEqual(t, uint32(0x1000), userSP)
	cpu.setSR(cpu.flags.sr() | srS) // back to supervisor
	require.Equal(t, uint32(0x1000), cpu.dar[15])
}

func TestAddressMaskByVariant(t *testing.T) {
	require.Equal(t, uint32(0x00FFFFFF), CPU68000.addressMask())
	require.Equal(t, uint32(0xFFFFFFFF), CPU68020.addressMask())
	require.Equal(t, uint32(0x00FFFFFF), CPU68EC020.addressMask())
}

func TestMovemStoreAndLoadRoundTrip(t *testing.T) {
	cpu, ram := newTestCPU(t, CPU68020)
	// MOVEQ #1..#4 into D0-D3, then MOVEM.L D0-D3,-(A7), clear D0-D3,
	// MOVEM.L (A7)+,D0-D3, and check the round trip restored them.
	cpu.dar[15] = 0x4000
	ram.Write16(0x400, 0x7001) // MOVEQ #1,D0
	ram.Write16(0x402, 0x7202) // MOVEQ #2,D1
	ram.Write16(0x404, 0x7403) // MOVEQ #3,D2
	ram.Write16(0x406, 0x7604) // MOVEQ #4,D3
	ram.Write16(0x408, 0x48e7) // MOVEM.L D0-D3,-(A7)
	ram.Write16(0x40a, 0xf000) // register list: D0-D3
	ram.Write16(0x40c, 0x7000) // MOVEQ #0,D0 (clobber)
	ram.Write16(0x40e, 0x7200) // MOVEQ #0,D1
	ram.Write16(0x410, 0x7400) // MOVEQ #0,D2
	ram.Write16(0x412, 0x7600) // MOVEQ #0,D3
	ram.Write16(0x414, 0x4cdf) // MOVEM.L (A7)+,D0-D3
	ram.Write16(0x416, 0x000f) // register list: D0-D3
	ram.Write16(0x418, 0x4e71) // NOP

	cpu.Execute(300)

	for i, want := range []uint32{1, 2, 3, 4} {
		got := cpu.dar[i]
		if got != want {
			t.Fatalf("D%d after MOVEM round trip = %d, want %d\nstate: %s", i, got, want, spew.Sdump(cpu))
		}
	}
	require.Equal(t, uint32(0x4000), cpu.dar[15], "stack pointer should be back where it started")
}
