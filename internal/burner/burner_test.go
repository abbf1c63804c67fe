package burner

import (
	"fmt"
	"testing"

	"microtoolchain/internal/isa"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// TestFetchDecodePrologue checks spec §8's "fetch prologue" property: for
// every opcode and flag combination, step 0 is MO|IRE and step 1 is IPA.
func TestFetchDecodePrologue(t *testing.T) {
	rom1, rom2 := Expand(isa.All)
	for flags := 0; flags < 16; flags++ {
		for opcode := 0; opcode < 256; opcode++ {
			step0 := (flags << 12) | (0 << 8) | opcode
			step1 := (flags << 12) | (1 << 8) | opcode
			assert(t, rom1[step0] == isa.MO.Or(isa.IRE).Lo, "opcode %#x flags %#x: step0 lo mismatch", opcode, flags)
			assert(t, rom1[step1] == isa.IPA.Lo, "opcode %#x flags %#x: step1 lo mismatch", opcode, flags)
			assert(t, rom2[step0] == isa.MO.Or(isa.IRE).Hi, "opcode %#x flags %#x: step0 hi mismatch", opcode, flags)
		}
	}
}

// TestHalt checks spec §8's "halt" property: for opcode 0xFF, step 2
// returns HLT and every later step returns MRST, under every flag set.
func TestHalt(t *testing.T) {
	rom1, _ := Expand(isa.All)
	for flags := 0; flags < 16; flags++ {
		haltAddr := (flags << 12) | (2 << 8) | 0xFF
		assert(t, rom1[haltAddr] == isa.HLT.Lo, "flags %#x: expected HLT at step 2", flags)
		for step := 3; step < 16; step++ {
			addr := (flags << 12) | (step << 8) | 0xFF
			assert(t, rom1[addr] == isa.MRST.Lo, "flags %#x step %d: expected MRST after halt", flags, step)
		}
	}
}

// TestUnmatchedOpcodeYieldsReset exercises 0xFE, an opcode byte that falls
// in the gap between SPOF's exact target (0xFB) and HLT (0xFF), claimed by
// no ISA entry.
func TestUnmatchedOpcodeYieldsReset(t *testing.T) {
	const unmatched = 0xFE
	_, matched := isa.All.Match(unmatched)
	assert(t, !matched, "expected opcode %#x to be unmatched", unmatched)

	rom1, _ := Expand(isa.All)
	for flags := 0; flags < 16; flags++ {
		for step := 2; step < 16; step++ {
			addr := (flags << 12) | (step << 8) | unmatched
			assert(t, rom1[addr] == isa.MRST.Lo, "flags %#x step %d: expected MRST for unmatched opcode", flags, step)
		}
	}
}

func TestNoMaskOverlap(t *testing.T) {
	for i, a := range isa.All {
		for _, b := range isa.All[i+1:] {
			for opcode := 0; opcode < 256; opcode++ {
				o := byte(opcode)
				bothMatch := o&a.Mask == a.Target && o&b.Mask == b.Target
				assert(t, !bothMatch, "%s and %s both match opcode %#x", a.Mnemonic, b.Mnemonic, o)
			}
		}
	}
}
