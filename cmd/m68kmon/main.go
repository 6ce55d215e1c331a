// m68kmon loads a flat binary image into RAM, builds an m68k core per an
// optional TOML config file, runs it for a fixed cycle budget, and prints
// the final register state — a minimal front end exercising the core the
// way the studied project's own command-line tools drive its CPU core.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/user-none/go-m68k/bus"
	"github.com/user-none/go-m68k/config"
	"github.com/user-none/go-m68k/m68k"
)

var cpuTypeByName = map[string]m68k.CPUType{
	"68000":   m68k.CPU68000,
	"68008":   m68k.CPU68008,
	"68010":   m68k.CPU68010,
	"68ec020": m68k.CPU68EC020,
	"68020":   m68k.CPU68020,
	"68ec030": m68k.CPU68EC030,
	"68030":   m68k.CPU68030,
	"68ec040": m68k.CPU68EC040,
	"lc040":   m68k.CPULC040,
	"68040":   m68k.CPU68040,
	"scc070":  m68k.CPUSCC070,
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "m68kmon",
		Usage: "run a flat binary image on a cycle-approximate m68k core",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Required: true, Usage: "flat binary to load at address 0"},
			&cli.StringFlag{Name: "config", Usage: "optional TOML system config"},
			&cli.IntFlag{Name: "ram-size", Value: 1 << 20, Usage: "RAM size in bytes, power of 2"},
			&cli.IntFlag{Name: "cycles", Value: 1_000_000, Usage: "cycle budget to run"},
			&cli.StringFlag{Name: "cpu", Value: "68000", Usage: "CPU variant"},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, log)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx *cli.Context, log zerolog.Logger) error {
	cpuName := ctx.String("cpu")
	var sys *config.System
	if p := ctx.String("config"); p != "" {
		var err error
		sys, err = config.Load(p)
		if err != nil {
			return err
		}
		cpuName = sys.CPUTypeName()
		log.Info().Str("config", p).Str("cpu", cpuName).Msg("loaded system config")
	}

	cpuType, ok := cpuTypeByName[cpuName]
	if !ok {
		return fmt.Errorf("unknown cpu variant %q", cpuName)
	}

	ram, err := bus.NewRam(ctx.Int("ram-size"))
	if err != nil {
		return err
	}
	ram.Zero()

	img, err := os.ReadFile(ctx.String("image"))
	if err != nil {
		return err
	}
	ram.Load(0, img)

	cpu, err := m68k.New(m68k.Config{
		CPUType: cpuType,
		Bus:     ram,
		Hooks: m68k.Hooks{
			Reset: func() { log.Debug().Msg("reset pulsed") },
		},
	})
	if err != nil {
		return err
	}

	if sys != nil {
		for _, w := range sys.Windows {
			host := ram.Bytes(w.Lower, int(w.Upper-w.Lower))
			if w.Write {
				cpu.RegisterWriteRange(w.Lower, w.Upper, host)
			} else {
				cpu.RegisterReadRange(w.Lower, w.Upper, host)
			}
			log.Info().Str("name", w.Name).Uint32("lower", w.Lower).Uint32("upper", w.Upper).Bool("write", w.Write).Msg("registered translation window")
		}
	}

	log.Info().Str("cpu", cpuType.String()).Int("cycles", ctx.Int("cycles")).Msg("starting execution")
	consumed := cpu.Execute(ctx.Int("cycles"))
	log.Info().Int("consumed", consumed).Msg("execution halted")

	printState(cpu)
	return nil
}

func printState(cpu *m68k.CPU) {
	for i := m68k.RegD0; i <= m68k.RegD7; i++ {
		v, _ := cpu.GetReg(i)
		fmt.Printf("D%d=%08x ", i-m68k.RegD0, v)
	}
	fmt.Println()
	for i := m68k.RegA0; i <= m68k.RegA7; i++ {
		v, _ := cpu.GetReg(i)
		fmt.Printf("A%d=%08x ", i-m68k.RegA0, v)
	}
	fmt.Println()
	pc, _ := cpu.GetReg(m68k.RegPC)
	sr, _ := cpu.GetReg(m68k.RegSR)
	fmt.Printf("PC=%08x SR=%04x halted=%v stopped=%v\n", pc, sr, cpu.Halted(), cpu.Stopped())
}
