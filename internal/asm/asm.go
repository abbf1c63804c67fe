// Package asm implements the two-pass assembler: tokenize a line, match its
// mnemonic against the shared ISA table, encode operands into the opcode's
// bit fields, defer label references, then resolve them in a second pass.
//
// Grounded on KTStephano-GVM/vm/parse.go and vm/compile.go for the overall
// "strip comments, split on whitespace, defer anything unresolved to a
// second pass" shape; the operand encoding, two label sigils, and 40-bit
// control-word target are specific to this ISA and have no analogue in the
// teacher's flat 64-bit instruction encoding, so they're transcribed fresh
// from original_source/src/assembler.py instead.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"microtoolchain/internal/isa"
)

var (
	errUnknownMnemonic = errors.New("asm: unknown mnemonic")
	errUnknownRegister = errors.New("asm: unknown register")
	errArityMismatch   = errors.New("asm: operand count does not match instruction arity")
	errImmediateRange  = errors.New("asm: immediate out of range [-128, 255]")
	errDuplicateLabel  = errors.New("asm: label already defined")
	errUnknownLabel    = errors.New("asm: reference to undefined label")
	errRelativeRange   = errors.New("asm: relative label out of range [-128, 127]")
	errUnresolvedSlot  = errors.New("asm: unresolved emission slot")
)

// sourceLine pairs an instruction's first emitted byte's address with the
// original source text, for the optional listing output.
type sourceLine struct {
	addr int
	text string
}

// Assemble tokenizes src, matches every instruction against table, and
// resolves all label references. If listing is non-nil, it receives one
// "address: byte  ; source line" row per instruction after resolution —
// an ambient debugging aid (recovered from original_source's assembler
// variants that print alongside assembly) with no effect on the returned
// Program.
func Assemble(src io.Reader, table isa.Table, listing *ListingWriter) (Program, error) {
	prog, lines, err := passOne(src, table)
	if err != nil {
		return Program{}, err
	}
	if err := passTwo(&prog); err != nil {
		return Program{}, err
	}
	if listing != nil {
		bytes, err := prog.Bytes()
		if err != nil {
			return Program{}, err
		}
		if err := listing.write(lines, bytes); err != nil {
			return Program{}, err
		}
	}
	return prog, nil
}

// passOne strips comments and whitespace, records label definitions at
// their byte offset, and encodes every instruction line into Slots —
// numeric and relative/absolute operands are appended in order, the
// latter two as deferred Slot references for passTwo to fill in.
func passOne(src io.Reader, table isa.Table) (Program, []sourceLine, error) {
	prog := Program{Labels: map[string]int{}}
	var lines []sourceLine

	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, ":") {
			if _, exists := prog.Labels[line]; exists {
				return Program{}, nil, fmt.Errorf("%w: %q (line %d)", errDuplicateLabel, line, lineNo)
			}
			prog.Labels[line] = len(prog.Slots)
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		mnemonic := fields[0]
		entry, ok := table.Lookup(mnemonic)
		if !ok {
			return Program{}, nil, fmt.Errorf("%w: %q (line %d)", errUnknownMnemonic, mnemonic, lineNo)
		}

		var operandText string
		if len(fields) > 1 {
			operandText = fields[1]
		}
		operands := splitOperands(operandText)

		if err := checkArity(entry, operands); err != nil {
			return Program{}, nil, fmt.Errorf("%w (line %d)", err, lineNo)
		}

		start := len(prog.Slots)
		regCount := entry.RegisterOperands()
		opcode, err := encodeOpcode(entry, regCount, operands)
		if err != nil {
			return Program{}, nil, fmt.Errorf("%w (line %d)", err, lineNo)
		}
		prog.Slots = append(prog.Slots, Slot{Kind: SlotByte, Byte: opcode})

		for _, operand := range operands[regCount:] {
			slots, err := parseOperandValue(operand)
			if err != nil {
				return Program{}, nil, fmt.Errorf("%w (line %d)", err, lineNo)
			}
			prog.Slots = append(prog.Slots, slots...)
		}

		lines = append(lines, sourceLine{addr: start, text: line})
	}
	if err := scanner.Err(); err != nil {
		return Program{}, nil, fmt.Errorf("asm: read source: %w", err)
	}
	return prog, lines, nil
}

// passTwo resolves every deferred Slot in place against the label table
// built by passOne.
func passTwo(p *Program) error {
	for i := range p.Slots {
		slot := &p.Slots[i]
		switch slot.Kind {
		case SlotByte:
			continue
		case SlotRel:
			target, ok := p.Labels[slot.Label]
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownLabel, slot.Label)
			}
			offset := target - i
			if offset < -128 || offset >= 128 {
				return fmt.Errorf("%w: %q resolves to offset %d", errRelativeRange, slot.Label, offset)
			}
			slot.Byte = byte(offset - 1)
			slot.Kind = SlotByte
		case SlotAbsHi, SlotAbsLo:
			target, ok := p.Labels[slot.Label]
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownLabel, slot.Label)
			}
			if slot.Kind == SlotAbsHi {
				slot.Byte = byte(target >> 8)
			} else {
				slot.Byte = byte(target)
			}
			slot.Kind = SlotByte
		}
	}
	return nil
}

// Bytes renders the resolved emission list. It errors rather than emitting
// a placeholder if any slot is still a deferred label reference — the
// "no silent fallback" rule from spec §7.
func (p Program) Bytes() ([]byte, error) {
	out := make([]byte, len(p.Slots))
	for i, s := range p.Slots {
		if s.Kind != SlotByte {
			return nil, fmt.Errorf("%w: slot %d references %q", errUnresolvedSlot, i, s.Label)
		}
		out[i] = s.Byte
	}
	return out, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func splitOperands(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.Split(text, ",")
	operands := make([]string, 0, len(raw))
	for _, o := range raw {
		o = strings.TrimSpace(o)
		if o != "" {
			operands = append(operands, o)
		}
	}
	return operands
}

// checkArity counts operands the way original_source/src/assembler.py does:
// a plain operand counts once, but an absolute label (":name") counts
// twice since it expands into two bytes.
func checkArity(entry isa.Entry, operands []string) error {
	count := len(operands)
	for _, o := range operands {
		if strings.HasPrefix(o, ":") {
			count++
		}
	}
	if count != entry.Arity {
		return fmt.Errorf("%w: %s wants %d, got %d", errArityMismatch, entry.Mnemonic, entry.Arity, count)
	}
	return nil
}

func encodeOpcode(entry isa.Entry, regCount int, operands []string) (byte, error) {
	switch regCount {
	case 0:
		return entry.Target, nil
	case 1:
		r, err := parseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		return entry.Target | byte(r), nil
	case 2:
		dst, err := parseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		src, err := parseRegister(operands[1])
		if err != nil {
			return 0, err
		}
		return entry.Target | byte(dst)<<2 | byte(src), nil
	default:
		return 0, fmt.Errorf("asm: %s declares an unsupported register field count %d", entry.Mnemonic, regCount)
	}
}

func parseRegister(name string) (isa.Register, error) {
	r, ok := isa.Registers[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnknownRegister, name)
	}
	return r, nil
}

// parseOperandValue renders one non-register operand into one or two
// Slots: a numeric literal is a single resolved byte, ".name" is a pending
// relative reference, ":name" is a pending absolute reference expanding to
// a high byte then a low byte (in that order, matching spec §4.3).
func parseOperandValue(operand string) ([]Slot, error) {
	if strings.HasPrefix(operand, ".") {
		return []Slot{{Kind: SlotRel, Label: operand}}, nil
	}
	if strings.HasPrefix(operand, ":") {
		return []Slot{
			{Kind: SlotAbsHi, Label: operand},
			{Kind: SlotAbsLo, Label: operand},
		}, nil
	}

	v, err := strconv.ParseInt(operand, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("asm: invalid operand %q: %w", operand, err)
	}
	if v < -128 || v > 255 {
		return nil, fmt.Errorf("%w: %q", errImmediateRange, operand)
	}
	return []Slot{{Kind: SlotByte, Byte: byte(v)}}, nil
}
