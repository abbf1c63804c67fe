package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"microtoolchain/internal/isa"
)

func assembleBytes(t *testing.T, source string) []byte {
	t.Helper()
	prog, err := Assemble(strings.NewReader(source), isa.All, nil)
	require.NoError(t, err)
	bytes, err := prog.Bytes()
	require.NoError(t, err)
	return bytes
}

// TestScenarioHalt is spec §8 S1: a lone HLT assembles to one 0xFF byte.
func TestScenarioHalt(t *testing.T) {
	require.Equal(t, []byte{0xFF}, assembleBytes(t, "HLT"))
}

func TestZeroA(t *testing.T) {
	require.Equal(t, []byte{0x24}, assembleBytes(t, "ZERO A"))
}

func TestLoadImmediate(t *testing.T) {
	require.Equal(t, []byte{0x20, 0x10}, assembleBytes(t, "LI A, 0x10"))
}

func TestMoveRegister(t *testing.T) {
	require.Equal(t, []byte{0x04}, assembleBytes(t, "MV B, A"))
}

func TestAddRegisters(t *testing.T) {
	require.Equal(t, []byte{0x41}, assembleBytes(t, "ADD A, B"))
}

// TestScenarioAbsoluteJump is spec §8 S3, resolved per DESIGN.md's
// arithmetic check against original_source/src/assembler.py: the label is
// defined after 4 bytes have been emitted (3 from PJMP, 1 from JMP), so it
// resolves to 0x0004, not the 0x0003 spec.md's worked illustration states.
func TestScenarioAbsoluteJump(t *testing.T) {
	source := `
PJMP :target
JMP
:target
HLT
`
	require.Equal(t, []byte{0xC0, 0x00, 0x04, 0xC1, 0xFF}, assembleBytes(t, source))
}

// TestScenarioCountedLoop is spec §8 S2: a forward relative label must
// resolve to a signed offset that fits in 8 bits.
func TestScenarioCountedLoop(t *testing.T) {
	source := `
  LI A, 0
:loop
  INC A
  LI B, 0x10
  SUB A, B
  JCR .done
  LI A, 0
.done
  HLT
`
	bytes := assembleBytes(t, source)
	require.Equal(t, byte(0xFF), bytes[len(bytes)-1])
}

func TestLabelResolutionLeavesNoDeferredSlot(t *testing.T) {
	prog, err := Assemble(strings.NewReader("PJMP :x\nJMP\n:x\nHLT"), isa.All, nil)
	require.NoError(t, err)
	for _, s := range prog.Slots {
		require.Equal(t, SlotByte, s.Kind)
	}
}

func TestRelativeOutOfRangeFails(t *testing.T) {
	var b strings.Builder
	b.WriteString(".start\n")
	for i := 0; i < 200; i++ {
		b.WriteString("HLT\n")
	}
	b.WriteString("JCR .start\n")
	_, err := Assemble(strings.NewReader(b.String()), isa.All, nil)
	require.ErrorIs(t, err, errRelativeRange)
}

func TestDuplicateLabelFails(t *testing.T) {
	_, err := Assemble(strings.NewReader(":x\nHLT\n:x\nHLT\n"), isa.All, nil)
	require.ErrorIs(t, err, errDuplicateLabel)
}

func TestUnknownMnemonicFails(t *testing.T) {
	_, err := Assemble(strings.NewReader("NOPE A, B\n"), isa.All, nil)
	require.ErrorIs(t, err, errUnknownMnemonic)
}

func TestArityMismatchFails(t *testing.T) {
	_, err := Assemble(strings.NewReader("ZERO A, B\n"), isa.All, nil)
	require.ErrorIs(t, err, errArityMismatch)
}

func TestImmediateOutOfRangeFails(t *testing.T) {
	_, err := Assemble(strings.NewReader("LI A, 300\n"), isa.All, nil)
	require.ErrorIs(t, err, errImmediateRange)
}

func TestUnresolvedLabelFails(t *testing.T) {
	_, err := Assemble(strings.NewReader("JCR .nowhere\n"), isa.All, nil)
	require.ErrorIs(t, err, errUnknownLabel)
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	source := "# a comment\n\nHLT # trailing comment\n\n"
	require.Equal(t, []byte{0xFF}, assembleBytes(t, source))
}
