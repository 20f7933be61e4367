// Package loader parses a program file (one 32-character binary line
// per word, instructions first, then data words once BREAK is seen)
// into instruction and data memory, and writes the disassembly listing
// that documents exactly how it understood the file.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// ErrNotFound is returned when the program file cannot be opened.
// WriteDisassembly also writes "File not found" to the disassembly
// output before returning it.
var ErrNotFound = fmt.Errorf("program file not found")

// Result reports how many instruction and data words a Load call
// placed into memory, for the caller's own summary output.
type Result struct {
	Instructions int
	DataWords    int
}

// Load reads programPath and populates mem, returning how many
// instruction and data words it loaded. Lines up to and including the
// first BREAK are decoded as instructions starting at address 256;
// every line after that is a two's-complement data word, loaded at
// consecutive addresses immediately following BREAK.
func Load(programPath string, mem *emu.Memory) (Result, error) {
	f, err := os.Open(programPath)
	if err != nil {
		return Result{}, ErrNotFound
	}
	defer f.Close()

	return loadFrom(f, mem)
}

func loadFrom(r io.Reader, mem *emu.Memory) (Result, error) {
	scanner := bufio.NewScanner(r)
	addr := uint32(256)
	res := Result{}
	seenBreak := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if !seenBreak {
			in, err := insts.Decode(line)
			if err != nil {
				return res, fmt.Errorf("loader: decoding instruction at %d: %w", addr, err)
			}
			mem.StoreInstruction(addr, in)
			res.Instructions++
			if in.Op == insts.BRK {
				seenBreak = true
			}
		} else {
			mem.WriteData(addr, insts.DecodeDatum(line))
			res.DataWords++
		}
		addr += 4
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("loader: reading program file: %w", err)
	}
	return res, nil
}

// WriteDisassembly re-renders every loaded instruction and data word
// to w in the disassembly.txt format: `<binary>\t<address>\t<pretty>\n`
// for instructions, `<binary>\t<address>\t<value>\n` for data words.
func WriteDisassembly(w io.Writer, programPath string, mem *emu.Memory) error {
	f, err := os.Open(programPath)
	if err != nil {
		fmt.Fprint(w, "File not found")
		return ErrNotFound
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	addr := uint32(256)
	seenBreak := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if !seenBreak {
			in, err := insts.Decode(line)
			if err != nil {
				return fmt.Errorf("loader: decoding instruction at %d: %w", addr, err)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", line, addr, insts.Disassemble(in, addr))
			if in.Op == insts.BRK {
				seenBreak = true
			}
		} else {
			fmt.Fprintf(w, "%s\t%d\t%d\n", line, addr, insts.DecodeDatum(line))
		}
		addr += 4
	}

	return scanner.Err()
}
