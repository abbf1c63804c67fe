package isa

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestTableConstructs(t *testing.T) {
	table := New()
	assert(t, len(table) > 0, "expected a non-empty table")
}

func TestEveryMnemonicUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range All {
		assert(t, !seen[e.Mnemonic], "duplicate mnemonic %s", e.Mnemonic)
		seen[e.Mnemonic] = true
	}
}

func TestHaltIsSoleMatchForFullMask(t *testing.T) {
	e, ok := All.Lookup("HLT")
	assert(t, ok, "expected HLT in the table")
	assert(t, e.Target == 0xFF && e.Mask == 0xFF, "expected HLT to be target=mask=0xFF")
	for opcode := 0; opcode < 0xFF; opcode++ {
		assert(t, !e.Matches(byte(opcode)), "opcode %#x unexpectedly matched HLT's mask", opcode)
	}
	assert(t, e.Matches(0xFF), "0xFF must match HLT")
}

func TestStepListsFitAfterPrologue(t *testing.T) {
	for _, e := range All {
		assert(t, len(e.Steps) <= maxSteps, "%s declares %d steps, more than %d", e.Mnemonic, len(e.Steps), maxSteps)
	}
}

func TestRegisterOperandsMatchesMaskShape(t *testing.T) {
	mv, _ := All.Lookup("MV")
	assert(t, mv.RegisterOperands() == 2, "MV should decode 2 register operands")

	memr, _ := All.Lookup("MEMR")
	assert(t, memr.RegisterOperands() == 1, "MEMR should decode 1 register operand")

	hlt, _ := All.Lookup("HLT")
	assert(t, hlt.RegisterOperands() == 0, "HLT should decode 0 register operands")
}

func TestMaskedField(t *testing.T) {
	assert(t, maskedField(0b1100, 0b1000) == 0b10, "expected high nibble field to shift down")
	assert(t, maskedField(0b0011, 0b1001) == 0b01, "expected low field to pass through unshifted")
}
