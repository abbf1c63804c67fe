package isa

// moveEntries covers register-to-register moves and the memreg-mediated
// memory access family: MV, MEMR/MEMW, MSRL/MSRH, LI, ZERO, and the
// return-address/memreg transfer quartet RTWL/RTWH/RTRL/RTRH.
//
// Transcribed from original_source/src/assembler/instructions.py; step
// generators are the literal lambdas from that file, normalized to StepGen
// via step0/step1 instead of runtime arity inspection.
func moveEntries() []Entry {
	return []Entry{
		{
			Mnemonic: "MV",
			Arity:    2,
			Target:   0b00_00_00_00,
			Mask:     0b11_11_00_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return registerOut(maskedField(0b11, i)).Or(registerIn(maskedField(0b1100, i)))
				}),
			},
		},
		{
			Mnemonic: "MEMR",
			Arity:    1,
			Target:   0b00_01_00_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return OrAll(MIS, MO, registerIn(maskedField(0b11, i)))
				}),
			},
		},
		{
			Mnemonic: "MEMW",
			Arity:    1,
			Target:   0b00_01_01_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return OrAll(MIS, MI, registerOut(maskedField(0b11, i)))
				}),
			},
		},
		{
			Mnemonic: "MSRL",
			Arity:    1,
			Target:   0b00_01_10_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return WME.Or(registerOut(maskedField(0b11, i)))
				}),
			},
		},
		{
			Mnemonic: "MSRH",
			Arity:    1,
			Target:   0b00_01_11_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return OrAll(WME, WMS, registerOut(maskedField(0b11, i)))
				}),
			},
		},
		{
			Mnemonic: "LI",
			Arity:    2,
			Target:   0b00_10_00_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return MO.Or(registerIn(maskedField(0b11, i)))
				}),
				step0(IPA),
			},
		},
		{
			// original_source's ZERO left the bus undriven and relied on it
			// floating to zero; spec §6 names bit 22 (ZO, "zero source") as
			// a real hardware line, so ZERO asserts it explicitly alongside the
			// destination register's input lines rather than leaving the bus
			// state implicit.
			Mnemonic: "ZERO",
			Arity:    1,
			Target:   0b00_10_01_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord {
					return ZO.Or(registerIn(maskedField(0b11, i)))
				}),
			},
		},
		{
			Mnemonic: "RTWL",
			Arity:    0,
			Target:   0b00_10_11_00,
			Mask:     0b11_11_11_11,
			Steps:    []StepGen{step0(OrAll(MIS, MI, RETE))},
		},
		{
			Mnemonic: "RTWH",
			Arity:    0,
			Target:   0b00_10_11_01,
			Mask:     0b11_11_11_11,
			Steps:    []StepGen{step0(OrAll(MIS, MI, RETE, RETS))},
		},
		{
			Mnemonic: "RTRL",
			Arity:    0,
			Target:   0b00_10_11_10,
			Mask:     0b11_11_11_11,
			Steps:    []StepGen{step0(OrAll(MIS, MO, RETE, RETI))},
		},
		{
			Mnemonic: "RTRH",
			Arity:    0,
			Target:   0b00_10_11_11,
			Mask:     0b11_11_11_11,
			Steps:    []StepGen{step0(OrAll(MIS, MO, RETE, RETI, RETS))},
		},
	}
}
