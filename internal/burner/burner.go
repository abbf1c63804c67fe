// Package burner expands an ISA table into the two microcode ROM images
// the physical CPU's control logic is burned from.
//
// Grounded on original_source/src/burner/burner.py: writeMemory's triple
// loop over (opcode, flags, step) and the [fetch, decode]+instruction.steps
// assembly of each address's step list, transcribed into Go with the
// variable-arity step dispatch resolved at isa.New() construction time
// instead of burn time (spec §9).
package burner

import (
	"microtoolchain/internal/isa"
	"microtoolchain/internal/rawimage"
)

// NumAddresses is the size of each ROM image: 256 opcodes * 16 flag
// combinations * 16 step slots.
const NumAddresses = 256 * 16 * 16

// fetch and decode are the two implicit steps prepended to every
// instruction's microcode (spec §4.2 step 0/1).
var (
	fetch  = isa.MO.Or(isa.IRE)
	decode = isa.IPA
)

// Expand computes the full 40-bit control word for every (opcode, flags,
// step) address in the table and splits each into its low 32-bit and high
// 8-bit half. Both returned slices have length NumAddresses and are
// indexed identically to the physical ROM's address lines:
// (flags<<12) | (step<<8) | opcode.
func Expand(table isa.Table) (rom1, rom2 []uint32) {
	rom1 = make([]uint32, NumAddresses)
	rom2 = make([]uint32, NumAddresses)

	for opcode := 0; opcode < 256; opcode++ {
		entry, matched := table.Match(byte(opcode))
		for flags := 0; flags < 16; flags++ {
			for step := 0; step < 16; step++ {
				cw := controlWord(entry, matched, byte(opcode), isa.Flags(flags), step)
				addr := (flags << 12) | (step << 8) | opcode
				rom1[addr] = cw.Lo
				rom2[addr] = cw.Hi
			}
		}
	}
	return rom1, rom2
}

// controlWord computes one address's control word: the fetch/decode
// prologue for steps 0 and 1, the matching entry's step generator for
// steps within its declared range, and MRST for everything else —
// including every step of an opcode with no matching entry at all.
func controlWord(entry isa.Entry, matched bool, opcode byte, flags isa.Flags, step int) isa.ControlWord {
	switch step {
	case 0:
		return fetch
	case 1:
		return decode
	}

	if !matched {
		return isa.MRST
	}

	k := step - 2
	if k >= len(entry.Steps) {
		return isa.MRST
	}
	return entry.Steps[k](opcode, flags)
}

// WriteROMImages writes rom1 to rom1Path and rom2 to rom2Path in the
// "v2.0 raw" text format, each atomically via rawimage.Write.
func WriteROMImages(rom1Path, rom2Path string, rom1, rom2 []uint32) error {
	if err := rawimage.Write(rom1Path, rom1); err != nil {
		return err
	}
	if err := rawimage.Write(rom2Path, rom2); err != nil {
		return err
	}
	return nil
}
