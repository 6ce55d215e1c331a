// Package config loads the host-side description of an m68k system: which
// CPU variant to build, its clock rate, the initial VBR, and any fast-path
// translation windows to register after construction. It is the external
// configuration-file parser spec.md's external-interfaces section names
// without prescribing a concrete format; this module picks TOML, parsed
// with BurntSushi/toml, the format and library the rest of the retrieved
// pack's tooling reaches for.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Window describes one fast-path translation range to register with the
// core after construction (m68k.CPU.RegisterReadRange/WriteRange).
type Window struct {
	Name    string `toml:"name"`
	Lower   uint32 `toml:"lower"`
	Upper   uint32 `toml:"upper"`
	Write   bool   `toml:"write"`
	SizeHint int   `toml:"size_hint"`
}

// System is the top-level document shape: one CPU section plus zero or
// more registered translation windows.
type System struct {
	CPU struct {
		Type      string `toml:"type"`
		ClockHz   uint64 `toml:"clock_hz"`
		VBR       uint32 `toml:"vbr"`
	} `toml:"cpu"`
	Windows []Window `toml:"window"`
}

// Load parses a TOML document from path into a System.
func Load(path string) (*System, error) {
	var sys System
	if _, err := toml.DecodeFile(path, &sys); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &sys, nil
}

// CPUTypeName returns the config file's variant name as written, or
// "68000" when it is empty; it does no mapping itself. Turning the name
// into an m68k.CPUType is left to a caller such as cmd/m68kmon, so the
// config layer stays a plain data loader, the way the teacher's own
// packages avoid importing cpu from peripheral packages where they don't
// have to.
func (s *System) CPUTypeName() string {
	if s.CPU.Type == "" {
		return "68000"
	}
	return s.CPU.Type
}
