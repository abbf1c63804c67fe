package isa

// controlEntries covers unconditional control flow: the two-step absolute
// jump-target latch (PJMP), committing that latch into IP (JMP), the
// call/return pair (JAL/RET) that additionally latches the return address.
//
// Transcribed from original_source/src/assembler/instructions.py.
func controlEntries() []Entry {
	return []Entry{
		{
			Mnemonic: "PJMP",
			Arity:    2,
			Target:   0b11_00_00_00,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(OrAll(MO, JMPE, JMPI, JMPS)),
				step0(IPA),
				step0(OrAll(MO, JMPE, JMPI)),
				step0(IPA),
			},
		},
		{
			Mnemonic: "JMP",
			Arity:    0,
			Target:   0b11_00_00_01,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(JMPE.Or(IPE)),
				step0(OrAll(JMPE, JMPS, IPE, IPS)),
			},
		},
		{
			Mnemonic: "JAL",
			Arity:    0,
			Target:   0b11_00_00_10,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(OrAll(IPE, IPO, RETE, RETI)),
				step0(OrAll(IPE, IPO, IPS, RETE, RETI, RETS)),
				step0(JMPE.Or(IPE)),
				step0(OrAll(JMPE, JMPS, IPE, IPS)),
			},
		},
		{
			Mnemonic: "RET",
			Arity:    0,
			Target:   0b11_00_00_11,
			Mask:     0b11_11_11_11,
			Steps: []StepGen{
				step0(RETE.Or(IPE)),
				step0(OrAll(RETE, RETS, IPE, IPS)),
			},
		},
	}
}
