package isa

import "fmt"

// StepGen computes the control word for one microcode step of an
// instruction. opcode is the full instruction byte fetched from RAM (so a
// step can pull operand-register bits back out of it); flags is the
// condition nibble latched by the previous ALU operation.
//
// The original reference implementation dispatched steps written with
// zero, one, or two parameters by inspecting each closure's arity at burn
// time. We don't have that kind of runtime introspection over closures in
// Go, and wouldn't want it if we did: step0/step1 below normalize each
// family of step generator to the single StepGen shape once, here, at
// table-construction time, instead of re-deriving "how many arguments does
// this thing take" on every one of the 65536 addresses the burner walks.
type StepGen func(opcode byte, flags Flags) ControlWord

// step0 lifts a step generator that ignores both the opcode and the flags
// (most data-movement steps).
func step0(cw ControlWord) StepGen {
	return func(byte, Flags) ControlWord { return cw }
}

// step1 lifts a step generator that only needs the opcode byte (to pull a
// register field back out of it).
func step1(f func(opcode byte) ControlWord) StepGen {
	return func(opcode byte, _ Flags) ControlWord { return f(opcode) }
}

// Entry is one row of the ISA table: a mnemonic, its operand count, the
// mask/target pair that recognizes its opcode byte, and the microcode
// steps that run starting at step 2 (steps 0 and 1 are the fetch/decode
// prologue every instruction shares, and are prepended by internal/burner,
// not stored here).
type Entry struct {
	Mnemonic string
	Arity    int // assembly operand count; an absolute label counts as 2
	Target   byte
	Mask     byte
	Steps    []StepGen
}

// Matches reports whether opcode decodes to this entry.
func (e Entry) Matches(opcode byte) bool {
	return opcode&e.Mask == e.Target
}

// RegisterOperands reports how many of the entry's operands are plain
// register names packed into the low bits of the opcode byte, derived
// from the mask the same way the reference assembler does: a mask with
// its low nibble fully clear takes two register operands, a mask with
// just its low 2 bits clear takes one, anything else takes none (operands
// are immediates or labels instead).
func (e Entry) RegisterOperands() int {
	switch {
	case e.Mask&0b1111 == 0b0000:
		return 2
	case e.Mask&0b0011 == 0b0000:
		return 1
	default:
		return 0
	}
}

// Table is the full, ordered instruction set. Order matters only in that
// mnemonics and opcodes are each assumed unique; Match and Lookup both do
// a linear scan, which is plenty fast for 30-odd rows walked 16 times per
// opcode during burning.
type Table []Entry

// Match finds the entry whose mask/target pair recognizes opcode.
func (t Table) Match(opcode byte) (Entry, bool) {
	for _, e := range t {
		if e.Matches(opcode) {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup finds the entry for an assembly mnemonic.
func (t Table) Lookup(mnemonic string) (Entry, bool) {
	for _, e := range t {
		if e.Mnemonic == mnemonic {
			return e, true
		}
	}
	return Entry{}, false
}

const maxSteps = 14 // 16 step slots per opcode, minus the 2-step fetch/decode prologue

// New builds the full instruction table. It panics if two entries' masks
// overlap (an opcode byte would decode two ways) or if any entry defines
// more steps than fit after the fetch/decode prologue — both are
// programmer errors in the table itself, not input the toolchain is ever
// asked to tolerate, so they fail loudly at program start rather than
// corrupting a burned ROM silently.
func New() Table {
	t := Table{}
	t = append(t, moveEntries()...)
	t = append(t, aluEntries()...)
	t = append(t, controlEntries()...)
	t = append(t, branchEntries()...)
	t = append(t, stackEntries()...)

	for i, e := range t {
		if len(e.Steps) > maxSteps {
			panic(fmt.Sprintf("isa: %s defines %d steps, more than the %d that fit", e.Mnemonic, len(e.Steps), maxSteps))
		}
		for _, other := range t[i+1:] {
			if opcodesOverlap(e, other) {
				panic(fmt.Sprintf("isa: %s (%08b/%08b) and %s (%08b/%08b) overlap", e.Mnemonic, e.Target, e.Mask, other.Mnemonic, other.Target, other.Mask))
			}
		}
	}
	return t
}

// opcodesOverlap reports whether any opcode byte would match both entries.
func opcodesOverlap(a, b Entry) bool {
	combined := a.Mask & b.Mask
	return a.Target&combined == b.Target&combined
}

// All is the instruction table every package in this module shares.
var All = New()
