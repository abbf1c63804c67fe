package isa

// stackEntries covers the stack-pointer setters, the PUSH/PULL/PEEK family
// that moves bytes through memreg at the SP, the SPOF offset-into-memreg
// helper the compiler's calling convention relies on, and HLT, whose target
// and full mask of 0xFF make 0xFF the only opcode byte that decodes to it.
//
// Transcribed from original_source/src/assembler/instructions.py.
func stackEntries() []Entry {
	return []Entry{
		{
			Mnemonic: "SPSL",
			Arity:    1,
			Target:   0b11_11_00_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return OrAll(SPE, SPI, registerOut(maskedField(0b11, i))) }),
			},
		},
		{
			Mnemonic: "SPSH",
			Arity:    1,
			Target:   0b11_11_01_00,
			Mask:     0b11_11_11_00,
			Steps: []StepGen{
				step1(func(i byte) ControlWord { return OrAll(SPE, SPI, SPS, registerOut(maskedField(0b11, i))) }),
			},
		},
		{
			Mnemonic: "PUSH",
			Arity:    0,
			Target:   0b11_11_10_00,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(OrAll(SPE, A1I, WME)),
				step0(ONEO.Or(A2I)),
				step0(OrAll(AO, AOPL, SPE, SPI)),
				func(_ byte, f Flags) ControlWord {
					if f.Has(A2G1) {
						return ControlWord{}
					}
					return A2I
				},
				step0(OrAll(SPE, SPS, A1I, WME, WMS)),
				step0(OrAll(AO, AOPL, SPE, SPI, SPS)),
			},
		},
		{
			Mnemonic: "PULL",
			Arity:    0,
			Target:   0b11_11_10_01,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(SPE.Or(A1I)),
				step0(ONEO.Or(A2I)),
				step0(OrAll(AO, SPE, SPI, WME)),
				func(_ byte, f Flags) ControlWord {
					if f.Has(CO) {
						return ControlWord{}
					}
					return A2I
				},
				step0(OrAll(SPE, SPS, A1I)),
				step0(OrAll(AO, SPE, SPI, SPS, WME, WMS)),
			},
		},
		{
			Mnemonic: "PEEK",
			Arity:    0,
			Target:   0b11_11_10_10,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(SPE.Or(WME)),
				step0(OrAll(SPE, SPS, WME, WMS)),
			},
		},
		{
			Mnemonic: "SPOF",
			Arity:    1,
			Target:   0b11_11_10_11,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(MO.Or(A1I)),
				step0(OrAll(IPA, SPE, A2I)),
				step0(AO.Or(WME)),
				func(_ byte, f Flags) ControlWord {
					if f.Has(CO) {
						return ONEO.Or(A2I)
					}
					return A2I
				},
				step0(OrAll(SPE, SPS, A1I)),
				step0(OrAll(AO, WME, WMS)),
			},
		},
		{
			Mnemonic: "HLT",
			Arity:    0,
			Target:   0b11_11_11_11,
			Mask:     0b11_11_11_11,
			Steps:    []StepGen{step0(HLT)},
		},
	}
}
