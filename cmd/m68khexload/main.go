// m68khexload converts a hand-assembled hex listing into a flat binary
// image suitable for loading into a bus.Ram with m68kmon's -image flag.
// A listing line looks like:
//
//	00001000 4E 71 4E 75   (*  NOP ; RTS  *)
//
// where the leading address field is informational only (lines are
// emitted in file order and simply concatenated) and the trailing
// parenthesised comment, if any, is ignored.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "m68khexload",
		Usage: "assemble a hand-written 68k hex listing into a flat binary image",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "offset", Value: 0, Usage: "byte offset to start writing at; everything before is zero filled"},
		},
		ArgsUsage: "<input listing> <output binary>",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("usage: %s [--offset N] <input> <output>", os.Args[0])
	}
	in := ctx.Args().Get(0)
	out := ctx.Args().Get(1)
	offset := ctx.Int("offset")

	b, err := exec.Command("/bin/sh", "-c",
		fmt.Sprintf(`egrep '^[0-9A-Fa-f]{8} ' %s | sed -e 's:(\*.*$::'| cut -c10-`, in)).Output()
	if err != nil {
		return fmt.Errorf("reading %q: %w", in, err)
	}

	output := make([]byte, offset)
	scanner := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		for _, tok := range strings.Fields(text) {
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return fmt.Errorf("line %d: %q: %w", line, text, err)
			}
			output = append(output, byte(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %q: %w", in, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %q: %w", out, err)
	}
	defer f.Close()
	if _, err := f.Write(output); err != nil {
		return fmt.Errorf("writing %q: %w", out, err)
	}
	return nil
}
