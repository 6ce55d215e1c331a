package bus

import "testing"

func TestRamReadWrite16(t *testing.T) {
	r, err := NewRam(1024)
	if err != nil {
		t.Fatalf("NewRam: %v", err)
	}
	r.Write16(0x10, 0xABCD)
	if got, want := r.Read16(0x10), uint16(0xABCD); got != want {
		t.Errorf("Read16(0x10) = %#04x, want %#04x", got, want)
	}
	if got, want := r.Read8(0x10), uint8(0xAB); got != want {
		t.Errorf("high byte = %#02x, want %#02x (big-endian)", got, want)
	}
}

func TestRamReadWrite32(t *testing.T) {
	r, err := NewRam(1024)
	if err != nil {
		t.Fatalf("NewRam: %v", err)
	}
	r.Write32(0x100, 0x12345678)
	if got, want := r.Read32(0x100), uint32(0x12345678); got != want {
		t.Errorf("Read32 = %#08x, want %#08x", got, want)
	}
}

func TestRamWraps(t *testing.T) {
	r, err := NewRam(256)
	if err != nil {
		t.Fatalf("NewRam: %v", err)
	}
	r.Write8(0xFF, 0x42)
	if got, want := r.Read8(0x1FF), uint8(0x42); got != want {
		t.Errorf("wrap-around Read8(0x1FF) = %#02x, want %#02x", got, want)
	}
}

func TestNewRamRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewRam(100); err == nil {
		t.Error("NewRam(100) succeeded, want error for non-power-of-2 size")
	}
}

func TestLookup(t *testing.T) {
	host := make([]byte, 16)
	windows := []Window{{Lower: 0x1000, Upper: 0x1010, Host: host}}
	if _, _, ok := Lookup(windows, 0x0fff); ok {
		t.Error("Lookup matched an address below the window")
	}
	_, off, ok := Lookup(windows, 0x1005)
	if !ok || off != 5 {
		t.Errorf("Lookup(0x1005) = off %d, ok %v, want 5, true", off, ok)
	}
}
