package isa

// aluEntries covers the register-to-register ALU family (ADD/SUB/NAND/XOR)
// and the immediate/unary family (ADDI/INC/DEC/NEG). Every instruction
// loads A1/A2 from the two operand sources, strobes AO (and, for every op
// other than addition, the AOPL/AOPH op-select lines) into the
// destination register.
//
// Transcribed from original_source/src/assembler/instructions.py.
func aluEntries() []Entry {
	return []Entry{
		{
			Mnemonic: "ADD",
			Arity:    2,
			Target:   0b01_00_00_00,
			Mask:     0b11_11_00_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b1100, i))) }),
				step1(func(i byte) ControlWord { return A2I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return AO.Or(registerIn(maskedField(0b1100, i))) }),
			},
		},
		{
			Mnemonic: "SUB",
			Arity:    2,
			Target:   0b01_01_00_00,
			Mask:     0b11_11_00_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b1100, i))) }),
				step1(func(i byte) ControlWord { return A2I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return OrAll(AO, AOPL, registerIn(maskedField(0b1100, i))) }),
			},
		},
		{
			Mnemonic: "NAND",
			Arity:    2,
			Target:   0b01_10_00_00,
			Mask:     0b11_11_00_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b1100, i))) }),
				step1(func(i byte) ControlWord { return A2I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return OrAll(AO, AOPH, registerIn(maskedField(0b1100, i))) }),
			},
		},
		{
			Mnemonic: "XOR",
			Arity:    2,
			Target:   0b01_11_00_00,
			Mask:     0b11_11_00_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b1100, i))) }),
				step1(func(i byte) ControlWord { return A2I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return OrAll(AO, AOPL, AOPH, registerIn(maskedField(0b1100, i))) }),
			},
		},
		{
			Mnemonic: "ADDI",
			Arity:    2,
			Target:   0b10_00_00_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step0(MO.Or(A2I)),
				step1(func(i byte) ControlWord { return OrAll(IPA, A1I, registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return AO.Or(registerIn(maskedField(0b11, i))) }),
			},
		},
		{
			Mnemonic: "INC",
			Arity:    1,
			Target:   0b10_00_01_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step0(ONEO.Or(A2I)),
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return AO.Or(registerIn(maskedField(0b11, i))) }),
			},
		},
		{
			// DEC resolves spec §9 Open Question 1: the destination register
			// field is the instruction's own low 2 bits, same as every other
			// one-register instruction — no stray identifier, see DESIGN.md.
			Mnemonic: "DEC",
			Arity:    1,
			Target:   0b10_00_10_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step0(ONEO.Or(A2I)),
				step1(func(i byte) ControlWord { return A1I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return OrAll(AO, AOPL, registerIn(maskedField(0b11, i))) }),
			},
		},
		{
			Mnemonic: "NEG",
			Arity:    1,
			Target:   0b10_00_11_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step0(A1I),
				step1(func(i byte) ControlWord { return A2I.Or(registerOut(maskedField(0b11, i))) }),
				step1(func(i byte) ControlWord { return OrAll(AO, CI, AOPL, registerIn(maskedField(0b11, i))) }),
			},
		},
	}
}
